package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
  max_body_bytes: 65536
auth:
  api_key: "test-key-123"
tailscale:
  enabled: false
  hostname: "gymlog"
  state_dir: "/var/lib/gymlog/tsnet"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.MaxBodyBytes != 65536 {
		t.Errorf("server.max_body_bytes = %d, want 65536", cfg.Server.MaxBodyBytes)
	}
	if cfg.Auth.APIKey != "test-key-123" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "test-key-123")
	}
	if cfg.Tailscale.Hostname != "gymlog" {
		t.Errorf("tailscale.hostname = %q, want %q", cfg.Tailscale.Hostname, "gymlog")
	}
	if got := cfg.Server.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8080", got)
	}
}

// TestEnvOverride verifies that GYMLOG_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("GYMLOG_SERVER_PORT", "9999")
	t.Setenv("GYMLOG_AUTH_API_KEY", "env-key")
	t.Setenv("GYMLOG_TS_ENABLED", "true")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Auth.APIKey != "env-key" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "env-key")
	}
	if !cfg.Tailscale.Enabled {
		t.Error("tailscale.enabled = false, want true")
	}
	// Unchanged fields should keep YAML values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
}

// TestDefaultMaxBodyBytes verifies the upload cap defaults when omitted.
func TestDefaultMaxBodyBytes(t *testing.T) {
	cfg, err := Load(writeTemp(t, "server:\n  port: 8080\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("server.max_body_bytes = %d, want %d", cfg.Server.MaxBodyBytes, DefaultMaxBodyBytes)
	}
	if cfg.Auth.APIKey != "" {
		t.Errorf("auth.api_key = %q, want empty", cfg.Auth.APIKey)
	}
}

// TestValidationMissingPort verifies that a plain listener needs a port.
func TestValidationMissingPort(t *testing.T) {
	_, err := Load(writeTemp(t, "server:\n  host: \"0.0.0.0\"\n"))
	if err == nil {
		t.Fatal("expected validation error for missing port")
	}
}

// TestValidationTailscaleWithoutPort verifies tsnet mode does not need a port
// but does need a hostname.
func TestValidationTailscaleWithoutPort(t *testing.T) {
	if _, err := Load(writeTemp(t, "tailscale:\n  enabled: true\n  hostname: gymlog\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Load(writeTemp(t, "tailscale:\n  enabled: true\n")); err == nil {
		t.Fatal("expected validation error for missing tailscale.hostname")
	}
}

// TestValidationNegativeBodyLimit verifies a negative cap is rejected.
func TestValidationNegativeBodyLimit(t *testing.T) {
	_, err := Load(writeTemp(t, "server:\n  port: 8080\n  max_body_bytes: -1\n"))
	if err == nil {
		t.Fatal("expected validation error for negative max_body_bytes")
	}
}

// TestLoadMissingFile verifies that a missing config file returns a clear error.
func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
