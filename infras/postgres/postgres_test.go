package postgres_test

import (
	"net/url"
	"testing"

	"rentdesk/config"
	"rentdesk/infras/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := postgres.DSN("rent", "p@ss/word", "db.local", "5432", "rentdesk", "disable",
		map[string]string{"x-migrations-table": "schema_migrations"})

	parsed, err := url.Parse(dsn)
	require.NoError(t, err)

	password, _ := parsed.User.Password()

	assert.Equal(t, "postgres", parsed.Scheme)
	assert.Equal(t, "rent", parsed.User.Username())
	assert.Equal(t, "p@ss/word", password)
	assert.Equal(t, "db.local:5432", parsed.Host)
	assert.Equal(t, "/rentdesk", parsed.Path)
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
	assert.Equal(t, "schema_migrations", parsed.Query().Get("x-migrations-table"))
}

func TestDBName(t *testing.T) {
	cfg := config.Config{}
	assert.Equal(t, "rentdesk", postgres.DBName(cfg, "rentdesk"))

	cfg.DB.Postgres.Prefix = "staging_"
	assert.Equal(t, "staging_rentdesk", postgres.DBName(cfg, "rentdesk"))
}
