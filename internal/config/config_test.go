package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load(nil, envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.RunAddr)
	assert.Equal(t, "", cfg.GRPCAddr)
	assert.Equal(t, "", cfg.DatabaseDSN)
	assert.Equal(t, "default_jwt_secret", cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.CookieTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "lenient", cfg.BodyPolicy)
	assert.False(t, cfg.CompensateWrites)
	assert.Equal(t, "memory", cfg.StoreKind())
}

func TestLoad_Flags(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load([]string{
		"-a", "9090",
		"-g", "localhost:3200",
		"-f", filepath.Join(dir, "data", "storage.jsonl"),
		"-cookie-ttl", "2h",
		"-compensate",
		"-body-policy", "strict",
	}, envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.RunAddr)
	assert.Equal(t, "localhost:3200", cfg.GRPCAddr)
	assert.Equal(t, 2*time.Hour, cfg.CookieTTL)
	assert.True(t, cfg.CompensateWrites)
	assert.Equal(t, "strict", cfg.BodyPolicy)
	assert.Equal(t, "file", cfg.StoreKind())
	assert.DirExists(t, filepath.Join(dir, "data"))
}

func TestLoad_EnvOverridesFlags(t *testing.T) {
	cfg, err := Load([]string{"-a", ":9090", "-d", "postgres://flag"}, envFrom(map[string]string{
		"SERVER_ADDRESS":    ":7070",
		"COMPENSATE_WRITES": "true",
		"LOG_LEVEL":         "DEBUG",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.RunAddr)
	assert.Equal(t, "postgres://flag", cfg.DatabaseDSN)
	assert.True(t, cfg.CompensateWrites)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "sql", cfg.StoreKind())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "linkvault.yaml")
	content := "server_address: \":6060\"\ntrusted_subnet: 10.0.0.0/8\ncookie_ttl: 30m\njwt_secret: from-file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Run("file values over defaults", func(t *testing.T) {
		cfg, err := Load([]string{"-c", path}, envFrom(nil))
		require.NoError(t, err)
		assert.Equal(t, ":6060", cfg.RunAddr)
		assert.Equal(t, "10.0.0.0/8", cfg.TrustedSubnet)
		assert.Equal(t, 30*time.Minute, cfg.CookieTTL)
		assert.Equal(t, path, cfg.ConfigFile)
	})

	t.Run("flags over file", func(t *testing.T) {
		cfg, err := Load([]string{"-c", path, "-j", "from-flag"}, envFrom(nil))
		require.NoError(t, err)
		assert.Equal(t, "from-flag", cfg.JWTSecret)
		assert.Equal(t, ":6060", cfg.RunAddr)
	})

	t.Run("CONFIG env", func(t *testing.T) {
		cfg, err := Load(nil, envFrom(map[string]string{"CONFIG": path}))
		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.JWTSecret)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load([]string{"-c", filepath.Join(dir, "absent.yaml")}, envFrom(nil))
		assert.Error(t, err)
	})
}

func TestLoad_BadFlag(t *testing.T) {
	_, err := Load([]string{"-unknown"}, envFrom(nil))
	assert.Error(t, err)
}

func TestLoad_BadgerDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")
	cfg, err := Load(nil, envFrom(map[string]string{"BADGER_PATH": dir}))
	require.NoError(t, err)
	assert.Equal(t, "badger", cfg.StoreKind())
	assert.DirExists(t, dir)
}

func TestNormalizeAddr(t *testing.T) {
	tests := []struct {
		name     string
		address  string
		expected string
	}{
		{"Port without colon", "9090", ":9090"},
		{"Port with colon", ":9090", ":9090"},
		{"Full address", "localhost:9090", "localhost:9090"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeAddr(tt.address))
		})
	}
}
