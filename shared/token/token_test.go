package token_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookit/shared/token"
)

func TestNew(t *testing.T) {
	seen := make(map[string]struct{})

	for range 500 {
		value, err := token.New()
		require.NoError(t, err)

		assert.Len(t, value, 43)
		assert.Equal(t, url.PathEscape(value), value)
		assert.True(t, token.Valid(value))

		_, duplicate := seen[value]
		assert.False(t, duplicate)

		seen[value] = struct{}{}
	}
}

func TestValid(t *testing.T) {
	assert.False(t, token.Valid(""))
	assert.False(t, token.Valid("short"))
	assert.False(t, token.Valid("!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!"))
}
