package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BRIDGES_DATA", "BRIDGES_ADDR", "LOG_LEVEL",
		"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_SERVICE",
		"DB_USERNAME", "DB_PASSWORD", "DB_WALLET_LOCATION", "DB_PATH",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "conf", "bridges.yaml")

	cfg := DefaultConfig()
	cfg.DataFile = "ontario.csv"
	cfg.Database.Driver = "oracle"
	cfg.Database.Username = "admin"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BRIDGES_DATA", "/srv/bridges.csv")
	t.Setenv("DB_DRIVER", "oracle")
	t.Setenv("DB_HOST", "adb.example.com")
	t.Setenv("LOG_LEVEL", "debug")

	path := filepath.Join(t.TempDir(), "bridges.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_file: file.csv\ndatabase:\n  host: filehost\n  port: \"1522\"\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/bridges.csv", cfg.DataFile)
	assert.Equal(t, "oracle", cfg.Database.Driver)
	assert.Equal(t, "adb.example.com", cfg.Database.Host)
	assert.Equal(t, "1522", cfg.Database.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		given    DBConfig
		expected string
		wantErr  bool
	}{
		{
			name:     "sqlite",
			given:    DBConfig{Driver: "sqlite", Path: "data/bridges.db"},
			expected: "data/bridges.db",
		},
		{
			name:     "oracle",
			given:    DBConfig{Driver: "oracle", Host: "db", Port: "1522", Service: "svc_high", Username: "admin", Password: "p@ss"},
			expected: "oracle://admin:p%40ss@db:1522/svc_high?ssl=true",
		},
		{
			name:     "oracle wallet",
			given:    DBConfig{Driver: "oracle", Host: "db", Port: "1522", Service: "svc", Username: "admin", Password: "pw", WalletLocation: "/opt/wallet"},
			expected: "oracle://admin:pw@db:1522/svc?ssl=true&wallet_location=%2Fopt%2Fwallet",
		},
		{name: "empty sqlite path", given: DBConfig{Driver: "sqlite"}, wantErr: true},
		{name: "unknown driver", given: DBConfig{Driver: "mysql"}, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dsn, err := test.given.DSN()
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, dsn)
		})
	}
}
