package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SECRET_KEY", "DATABASE_PATH", "DATABASE_URL", "PORT", "GO_ENV"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "development", cfg.GoEnv)
	assert.Equal(t, "agrichem.db", cfg.DatabasePath)
	assert.Equal(t, "5000", cfg.Port)
	assert.NotEmpty(t, cfg.SecretKey)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadTestingProfile(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("GO_ENV", "testing")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "test_agrichem.db", cfg.DatabasePath,
		"Testing profile writes to its own database file")
	assert.True(t, cfg.IsTest())
}

func TestLoadProductionProfile(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("GO_ENV", "production")
	t.Setenv("DATABASE_URL", "postgresql://app:app@db:5432/agrichem?sslmode=disable")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgresql://app:app@db:5432/agrichem?sslmode=disable", cfg.DatabaseURL)
}

func TestEnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DATABASE_PATH", "/tmp/custom.db")
	t.Setenv("PORT", "9090")
	t.Setenv("SECRET_KEY", "super-secret")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", cfg.DatabasePath)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "super-secret", cfg.SecretKey)
}

func TestGetSetConfig(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	cfg := &Config{GoEnv: "testing"}
	SetConfig(cfg)
	assert.Same(t, cfg, GetConfig())
}

func TestConnectDatabaseRequiresConfig(t *testing.T) {
	originalCfg := GetConfig()
	originalDB := GetDB()
	defer func() {
		SetConfig(originalCfg)
		SetDB(originalDB)
	}()

	SetConfig(nil)
	err := ConnectDatabase()
	assert.Error(t, err, "Connecting without loaded configuration must fail")
}

func TestConnectDatabaseInMemory(t *testing.T) {
	originalCfg := GetConfig()
	originalDB := GetDB()
	defer func() {
		SetConfig(originalCfg)
		SetDB(originalDB)
	}()

	SetConfig(&Config{DatabasePath: ":memory:"})
	err := ConnectDatabase()
	assert.NoError(t, err)
	assert.NotNil(t, GetDB())
}
