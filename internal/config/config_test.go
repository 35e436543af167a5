package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "HOST", "SMTP_HOST", "SMTP_FROM", "SMTP_USER", "ADMIN_USER", "ADMIN_PASS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPServer.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.HTTPServer.Port)
	}
	if cfg.HTTPServer.Addr() != ":3000" {
		t.Errorf("expected addr :3000, got %q", cfg.HTTPServer.Addr())
	}
	if cfg.SMTP.Enabled() {
		t.Error("expected SMTP to be disabled without SMTP_HOST")
	}
	if cfg.SMTP.Port != 587 {
		t.Errorf("expected default SMTP port 587, got %d", cfg.SMTP.Port)
	}
	if cfg.Admin.User != "admin" {
		t.Errorf("expected default admin user, got %q", cfg.Admin.User)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("ADMIN_USER", "root")
	t.Setenv("ADMIN_PASS", "s3cret")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_SECURE", "true")
	t.Setenv("SMTP_USER", "mailer@example.com")
	t.Setenv("SMTP_FROM", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPServer.Port != 8081 {
		t.Errorf("expected port 8081, got %d", cfg.HTTPServer.Port)
	}
	if cfg.Admin.User != "root" || cfg.Admin.Pass != "s3cret" {
		t.Errorf("unexpected admin credentials: %+v", cfg.Admin)
	}
	if !cfg.SMTP.Enabled() || !cfg.SMTP.Secure || cfg.SMTP.Port != 465 {
		t.Errorf("unexpected smtp config: %+v", cfg.SMTP)
	}
	if cfg.SMTP.Sender() != "mailer@example.com" {
		t.Errorf("expected sender to fall back to SMTP_USER, got %q", cfg.SMTP.Sender())
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "70000")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")
	t.Setenv("SMTP_FROM", "")
	os.Unsetenv("SMTP_FROM")

	path := filepath.Join(t.TempDir(), "local.yaml")
	content := `env: prod
storage_path: /tmp/site.db
http_server:
  port: 9090
smtp:
  from: site@example.com
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Env != "prod" {
		t.Errorf("expected env prod, got %q", cfg.Env)
	}
	if cfg.HTTPServer.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTPServer.Port)
	}
	if cfg.SMTP.Sender() != "site@example.com" {
		t.Errorf("expected sender from yaml, got %q", cfg.SMTP.Sender())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
