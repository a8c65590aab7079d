package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"OSRS_SERVER_PORT", "OSRS_DATABASE_URL", "OSRS_HTTP_TIMEOUT", "OSRS_ALLOWED_ORIGINS", "OSRS_NGROK"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.HTTPTimeout != 0 {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.HiscoreURL != "https://secure.runescape.com/m=hiscore_oldschool" {
		t.Errorf("HiscoreURL = %q", cfg.HiscoreURL)
	}
	if len(cfg.AllowedOrigins) != 3 || cfg.AllowedOrigins[0] != "tauri://localhost" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	for _, k := range []string{"OSRS_SERVER_PORT", "OSRS_HTTP_TIMEOUT", "OSRS_ALLOWED_ORIGINS", "OSRS_NGROK"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("OSRS_SERVER_PORT", "9000")

	path := filepath.Join(t.TempDir(), ".env")
	content := "OSRS_SERVER_PORT=7000\nOSRS_HTTP_TIMEOUT=5s\nOSRS_ALLOWED_ORIGINS=http://a.test,http://b.test\nOSRS_NGROK=true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("OSRS_HTTP_TIMEOUT")
		os.Unsetenv("OSRS_ALLOWED_ORIGINS")
		os.Unsetenv("OSRS_NGROK")
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerPort != "9000" {
		t.Errorf("ServerPort = %q, environment must win over .env", cfg.ServerPort)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"http://a.test", "http://b.test"}) {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if !cfg.Ngrok {
		t.Error("Ngrok = false")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("OSRS_HTTP_TIMEOUT", "soon")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("expected an error for an unparsable duration")
	}
}
