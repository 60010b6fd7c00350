package configs

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ENVIRONMENT", "PORT", "LOG_LEVEL", "ALLOWED_ORIGINS", "JWT_SECRET", "TOKEN_TTL", "DATABASE_URL"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDevelopmentDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if !cfg.IsDevelopment() {
		t.Fatalf("environment = %q, want development", cfg.Environment)
	}
	if cfg.Port != 5000 {
		t.Errorf("port = %d, want 5000", cfg.Port)
	}
	if cfg.JWTSecret == "" || cfg.DatabaseDSN == "" {
		t.Error("development defaults for secret and DSN should be set")
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("token ttl = %s", cfg.TokenTTL)
	}
	if len(cfg.AllowedOrigins) != 0 {
		t.Errorf("allowed origins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigParsesValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "8081")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_URL", "postgres://db/shinesmile")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("TOKEN_TTL", "2h")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Port != 8081 || cfg.JWTSecret != "s3cret" || cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://a.example" || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("allowed origins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"PORT": "abc"}},
		{"privileged port", map[string]string{"PORT": "80"}},
		{"bad ttl", map[string]string{"TOKEN_TTL": "forever"}},
		{"negative ttl", map[string]string{"TOKEN_TTL": "-1h"}},
		{"production without secret", map[string]string{"ENVIRONMENT": "production", "DATABASE_URL": "postgres://x"}},
		{"production without database", map[string]string{"ENVIRONMENT": "production", "JWT_SECRET": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
