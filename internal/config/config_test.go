package config

import "testing"

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestFromEnvAppliesOverrides(t *testing.T) {
	t.Setenv("TICK_RATE", "30")
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("MSGPACK_ENABLED", "true")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TickRate != 30 {
		t.Fatalf("expected tick rate 30, got %d", cfg.TickRate)
	}
	if cfg.ListenAddr != ":9090" {
		t.Fatalf("expected listen addr :9090, got %q", cfg.ListenAddr)
	}
	if !cfg.MsgpackEnabled {
		t.Fatal("expected msgpack enabled")
	}
}

func TestFromEnvRejectsMalformedInt(t *testing.T) {
	t.Setenv("TICK_RATE", "not-a-number")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for malformed TICK_RATE")
	}
}

func TestValidateRejectsNonPositiveTickRate(t *testing.T) {
	cfg := Default()
	cfg.TickRate = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for zero tick rate")
	}
}

func TestFromEnvAppliesLogFilePath(t *testing.T) {
	t.Setenv("LOG_FILE_PATH", "/tmp/match.log")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogFilePath != "/tmp/match.log" {
		t.Fatalf("expected log file path /tmp/match.log, got %q", cfg.LogFilePath)
	}
}

func TestValidateRejectsEmptyResumeTokenKey(t *testing.T) {
	cfg := Default()
	cfg.ResumeTokenKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for empty resume token key")
	}
}
