package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 30*time.Minute, cfg.Upstream.CatalogTTL)
	assert.Equal(t, 10*time.Minute, cfg.Upstream.NewItemsTTL)
	assert.Equal(t, 5*time.Minute, cfg.Upstream.ShopTTL)
	assert.Equal(t, int64(10000), cfg.Ledger.InitialBalance)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("UPSTREAM_SHOP_TTL", "1m")
	t.Setenv("LEDGER_INITIAL_BALANCE", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, time.Minute, cfg.Upstream.ShopTTL)
	assert.Equal(t, int64(500), cfg.Ledger.InitialBalance)
}

func TestLoad_RejectsNegativeBalance(t *testing.T) {
	t.Setenv("LEDGER_INITIAL_BALANCE", "-1")

	_, err := Load()
	assert.Error(t, err)
}

func TestDSNs(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, Name: "store", User: "u", Password: "p", SSLMode: "disable"}

	assert.Equal(t, "postgres://u:p@db:5432/store?sslmode=disable", d.PostgresDSN())
	assert.Equal(t, "u:p@tcp(db:5432)/store?parseTime=true", d.MySQLDSN())

	s := ServerConfig{Host: "127.0.0.1", Port: 80}
	assert.Equal(t, "127.0.0.1:80", s.Address())
}

func TestDatabaseConfig_DSNByType(t *testing.T) {
	d := DatabaseConfig{Path: "./data/store.db", Host: "db", Port: 3306, Name: "store", User: "u", Password: "p", SSLMode: "disable"}

	d.Type = "sqlite"
	assert.Equal(t, "./data/store.db", d.DSN())

	d.Type = "mysql"
	assert.Equal(t, d.MySQLDSN(), d.DSN())

	d.Type = "postgresql"
	assert.Equal(t, d.PostgresDSN(), d.DSN())
}
