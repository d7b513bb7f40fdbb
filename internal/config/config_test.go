package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Ensure no env vars interfere
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("BACKEND_BASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Server defaults
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 30s", cfg.Server.ReadTimeout)
	}
	if !cfg.Server.AllowCredentials {
		t.Errorf("Server.AllowCredentials = %v, want true", cfg.Server.AllowCredentials)
	}

	// Backend defaults
	if cfg.Backend.BaseURL != "http://localhost:9000" {
		t.Errorf("Backend.BaseURL = %q, want http://localhost:9000", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 15*time.Second {
		t.Errorf("Backend.Timeout = %v, want 15s", cfg.Backend.Timeout)
	}
	if cfg.Backend.MaxIdleConns != 50 {
		t.Errorf("Backend.MaxIdleConns = %d, want 50", cfg.Backend.MaxIdleConns)
	}

	// Mailbox defaults
	if cfg.Mailbox.Enabled {
		t.Error("Mailbox.Enabled should default to false")
	}

	// Log defaults
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want json", cfg.Log.Format)
	}

	// Worker defaults
	if cfg.Worker.GeneralPoolSize != 100 {
		t.Errorf("Worker.GeneralPoolSize = %d, want 100", cfg.Worker.GeneralPoolSize)
	}
	if cfg.Worker.BackendPoolSize != 50 {
		t.Errorf("Worker.BackendPoolSize = %d, want 50", cfg.Worker.BackendPoolSize)
	}
	if cfg.Worker.ComposeConcurrency != 16 {
		t.Errorf("Worker.ComposeConcurrency = %d, want 16", cfg.Worker.ComposeConcurrency)
	}

	// Security: signing key is auto-generated when unset
	if len(cfg.Security.APISigningKey) < 32 {
		t.Errorf("APISigningKey length = %d, want >= 32", len(cfg.Security.APISigningKey))
	}

	// Health defaults
	if cfg.Health.ProbeInterval != 30*time.Second {
		t.Errorf("Health.ProbeInterval = %v, want 30s", cfg.Health.ProbeInterval)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://crm.internal:8081")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend.BaseURL != "http://crm.internal:8081" {
		t.Errorf("Backend.BaseURL = %q, want env override", cfg.Backend.BaseURL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty backend url", func(c *Config) { c.Backend.BaseURL = "" }, true},
		{"mailbox enabled without url", func(c *Config) {
			c.Mailbox.Enabled = true
			c.Mailbox.BaseURL = ""
		}, true},
		{"short signing key", func(c *Config) { c.Security.APISigningKey = "short" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Backend:  BackendConfig{BaseURL: "http://localhost:9000"},
				Security: SecurityConfig{APISigningKey: "0123456789abcdef0123456789abcdef"},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
