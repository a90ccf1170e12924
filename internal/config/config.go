// Package config resolves runtime tunables for the match server from the
// environment, following the same os.Getenv-at-startup convention the
// logging and hub configuration already use.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config collects every tunable the server reads at startup (§6, plus the
// domain additions for resumable sessions and the binary wire codec).
type Config struct {
	ListenAddr string

	TickRate        int
	CommandCapacity int
	PerActorLimit   int
	WarningStep     int
	CatchupMaxTicks int

	MatchIdleTimeout time.Duration
	ResumeTokenTTL   time.Duration
	ResumeTokenKey   string

	MsgpackEnabled bool
	EnablePprof    bool

	LogFilePath string
}

// Default returns the baseline configuration before environment overrides.
func Default() Config {
	return Config{
		ListenAddr:       ":8080",
		TickRate:         60,
		CommandCapacity:  256,
		PerActorLimit:    8,
		WarningStep:      64,
		CatchupMaxTicks:  5,
		MatchIdleTimeout: 30 * time.Second,
		ResumeTokenTTL:   5 * time.Minute,
		ResumeTokenKey:   "dev-insecure-resume-key",
		MsgpackEnabled:   false,
		EnablePprof:      false,
	}
}

// FromEnv resolves Config starting from Default and applying any recognized
// environment variable overrides. Malformed values are reported through the
// returned error rather than silently ignored.
func FromEnv() (Config, error) {
	cfg := Default()

	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if err := overrideInt(&cfg.TickRate, "TICK_RATE"); err != nil {
		return cfg, err
	}
	if err := overrideInt(&cfg.CommandCapacity, "COMMAND_CAPACITY"); err != nil {
		return cfg, err
	}
	if err := overrideInt(&cfg.PerActorLimit, "PER_ACTOR_LIMIT"); err != nil {
		return cfg, err
	}
	if err := overrideInt(&cfg.WarningStep, "WARNING_STEP"); err != nil {
		return cfg, err
	}
	if err := overrideInt(&cfg.CatchupMaxTicks, "CATCHUP_MAX_TICKS"); err != nil {
		return cfg, err
	}
	if err := overrideDuration(&cfg.MatchIdleTimeout, "MATCH_IDLE_TIMEOUT"); err != nil {
		return cfg, err
	}
	if err := overrideDuration(&cfg.ResumeTokenTTL, "RESUME_TOKEN_TTL"); err != nil {
		return cfg, err
	}
	if v := os.Getenv("RESUME_TOKEN_KEY"); v != "" {
		cfg.ResumeTokenKey = v
	}
	if err := overrideBool(&cfg.MsgpackEnabled, "MSGPACK_ENABLED"); err != nil {
		return cfg, err
	}
	if err := overrideBool(&cfg.EnablePprof, "ENABLE_PPROF_TRACE"); err != nil {
		return cfg, err
	}
	if v := os.Getenv("LOG_FILE_PATH"); v != "" {
		cfg.LogFilePath = v
	}

	return cfg, cfg.Validate()
}

// Validate rejects configurations that would make the simulation incoherent.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("config: TICK_RATE must be positive, got %d", c.TickRate)
	}
	if c.CommandCapacity <= 0 {
		return fmt.Errorf("config: COMMAND_CAPACITY must be positive, got %d", c.CommandCapacity)
	}
	if c.ResumeTokenKey == "" {
		return fmt.Errorf("config: RESUME_TOKEN_KEY must not be empty")
	}
	return nil
}

func overrideInt(dst *int, key string) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("config: invalid %s=%q: %w", key, raw, err)
	}
	*dst = value
	return nil
}

func overrideBool(dst *bool, key string) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("config: invalid %s=%q: %w", key, raw, err)
	}
	*dst = value
	return nil
}

func overrideDuration(dst *time.Duration, key string) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: invalid %s=%q: %w", key, raw, err)
	}
	*dst = value
	return nil
}
