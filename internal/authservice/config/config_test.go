package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if cfg.EndpointAddr != ":8081" {
		t.Errorf("EndpointAddr = %q", cfg.EndpointAddr)
	}
	if cfg.TokenValidityDuration != 24*time.Hour {
		t.Errorf("TokenValidityDuration = %v", cfg.TokenValidityDuration)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d", cfg.BcryptCost)
	}
}

func TestParseJson_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"endpoint_addr": ":9091", "token_validity_duration": "30m", "bcrypt_cost": 4}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"authserver", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	if cfg.EndpointAddr != ":9091" {
		t.Errorf("EndpointAddr = %q", cfg.EndpointAddr)
	}
	if cfg.TokenValidityDuration != 30*time.Minute {
		t.Errorf("TokenValidityDuration = %v", cfg.TokenValidityDuration)
	}
	if cfg.BcryptCost != 4 {
		t.Errorf("BcryptCost = %d", cfg.BcryptCost)
	}
	// untouched fields keep their defaults
	if cfg.SecretKey != "secretKey" {
		t.Errorf("SecretKey = %q", cfg.SecretKey)
	}
}

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"authserver", "-a", ":7000", "-t", "15", "-o", "https://app.example.com"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	if cfg.EndpointAddr != ":7000" {
		t.Errorf("EndpointAddr = %q", cfg.EndpointAddr)
	}
	if cfg.TokenValidityDuration != 15*time.Minute {
		t.Errorf("TokenValidityDuration = %v", cfg.TokenValidityDuration)
	}
	if cfg.CORSAllowedOrigin != "https://app.example.com" {
		t.Errorf("CORSAllowedOrigin = %q", cfg.CORSAllowedOrigin)
	}
}
