package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestLoad_TokenTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL", "45m")

	cfg := Load()
	if cfg.TokenTTL != 45*time.Minute {
		t.Fatalf("TokenTTL: got %v want %v", cfg.TokenTTL, 45*time.Minute)
	}
}

func TestLoad_TokenTTLDefault(t *testing.T) {
	t.Setenv("TOKEN_TTL", "")

	cfg := Load()
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("TokenTTL: got %v want %v", cfg.TokenTTL, 24*time.Hour)
	}
}

func TestLoad_MalformedTokenTTLWarnsAndDefaults(t *testing.T) {
	t.Setenv("TOKEN_TTL", "one-day")

	var buf bytes.Buffer
	old := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = old }()

	cfg := Load()
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("TokenTTL: got %v want %v", cfg.TokenTTL, 24*time.Hour)
	}
	if !bytes.Contains(buf.Bytes(), []byte("TOKEN_TTL")) {
		t.Fatalf("expected a warning naming TOKEN_TTL, got %q", buf.String())
	}
}
