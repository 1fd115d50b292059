package config

import (
	"testing"
	"time"
)

const (
	testActivationKey = "activation-key-32-bytes-long-ok!"
	testAuthKey       = "auth-token-key-32-bytes-long-ok!"
)

func setRequiredKeys(t *testing.T) {
	t.Helper()
	t.Setenv("ACTIVATION_TOKEN_KEY", testActivationKey)
	t.Setenv("AUTH_TOKEN_KEY", testAuthKey)
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredKeys(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if !cfg.Server.IsDevelopment() {
		t.Error("expected default env to be dev")
	}
	if cfg.Auth.TokenTTL != 15*time.Minute {
		t.Errorf("expected default token TTL of 15m, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Database.DBName != "fitness" {
		t.Errorf("expected default db name fitness, got %s", cfg.Database.DBName)
	}
}

func TestLoad_RejectsShortActivationKey(t *testing.T) {
	t.Setenv("ACTIVATION_TOKEN_KEY", "too-short")
	t.Setenv("AUTH_TOKEN_KEY", testAuthKey)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for short activation key")
	}
}

func TestLoad_RejectsIdenticalKeys(t *testing.T) {
	t.Setenv("ACTIVATION_TOKEN_KEY", testAuthKey)
	t.Setenv("AUTH_TOKEN_KEY", testAuthKey)

	if _, err := Load(); err == nil {
		t.Fatal("expected error when both token keys are identical")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredKeys(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TOKEN_TTL", "600")
	t.Setenv("TRUSTED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTL != 10*time.Minute {
		t.Errorf("expected token TTL of 10m, got %s", cfg.Auth.TokenTTL)
	}
	if len(cfg.Server.TrustedOrigins) != 2 {
		t.Errorf("expected 2 trusted origins, got %d", len(cfg.Server.TrustedOrigins))
	}
}

func TestDatabaseConnectionString(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: "5433", User: "u", Password: "p", DBName: "fitness", SSLMode: "require",
	}

	got := c.ConnectionString()
	want := "host=db port=5433 user=u password=p dbname=fitness sslmode=require"
	if got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}
