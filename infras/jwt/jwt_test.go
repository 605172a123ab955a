package jwt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookit/config"
	"bookit/infras/jwt"
)

func newService() jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "bookit"
	cfg.JWT.AccessSecret = "secret"
	cfg.JWT.AccessExpireMin = 5

	return jwt.New(cfg)
}

func TestIssueAndValidate(t *testing.T) {
	svc := newService()

	token, err := svc.Issue("user-1", "staff@example.com", "admin", []string{"store-a"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, []string{"store-a"}, claims.Stores)
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	other := &config.Config{}
	other.JWT.AccessSecret = "other"
	other.JWT.AccessExpireMin = 5

	token, err := jwt.New(other).Issue("user-1", "", "admin", nil)
	require.NoError(t, err)

	_, err = newService().ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "secret"
	cfg.JWT.AccessExpireMin = -1

	token, err := jwt.New(cfg).Issue("user-1", "", "admin", nil)
	require.NoError(t, err)

	_, err = jwt.New(cfg).ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestValidateTokenMissingRole(t *testing.T) {
	svc := newService()

	token, err := svc.Issue("user-1", "", "", nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.Error(t, err)
}
