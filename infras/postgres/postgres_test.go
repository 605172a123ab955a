package postgres_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookit/config"
	"bookit/infras/postgres"
)

func TestEndpointDSN(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "test_"
	cfg.DB.Postgres.Write.Host = "db.internal"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Username = "bookit"
	cfg.DB.Postgres.Write.Password = "p@ss:word"
	cfg.DB.Postgres.Write.Name = "bookit"
	cfg.DB.Postgres.Write.SSLMode = "disable"
	cfg.DB.Postgres.Write.Timezone = "Asia/Jakarta"

	dsn := postgres.WriteEndpoint(cfg).DSN(url.Values{"x-migrations-table": {"schema_migrations"}})

	parsed, err := url.Parse(dsn)
	require.NoError(t, err)

	password, _ := parsed.User.Password()

	assert.Equal(t, "postgres", parsed.Scheme)
	assert.Equal(t, "db.internal:5432", parsed.Host)
	assert.Equal(t, "/test_bookit", parsed.Path)
	assert.Equal(t, "bookit", parsed.User.Username())
	assert.Equal(t, "p@ss:word", password)
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
	assert.Equal(t, "Asia/Jakarta", parsed.Query().Get("timezone"))
	assert.Equal(t, "schema_migrations", parsed.Query().Get("x-migrations-table"))
}

func TestReadEndpointWithoutOptions(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Read.Host = "replica"
	cfg.DB.Postgres.Read.Port = "6432"
	cfg.DB.Postgres.Read.Name = "bookit"

	parsed, err := url.Parse(postgres.ReadEndpoint(cfg).DSN(nil))
	require.NoError(t, err)

	assert.Equal(t, "replica:6432", parsed.Host)
	assert.Empty(t, parsed.RawQuery)
}
