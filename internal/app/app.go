// Package app wires the match server's top-level dependencies: logging,
// the match registry, and the HTTP/websocket surface.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"goalline/server/internal/config"
	"goalline/server/internal/matchsvc"
	servernet "goalline/server/internal/net"
	"goalline/server/internal/net/resume"
	"goalline/server/internal/observability"
	"goalline/server/internal/sim"
	"goalline/server/internal/telemetry"
	"goalline/server/logging"
	loggingSinks "goalline/server/logging/sinks"
)

// RunConfig lets callers (tests, alternate entrypoints) override the
// logger the rest of app.Run builds on top of.
type RunConfig struct {
	Logger telemetry.Logger
}

const shutdownGrace = 5 * time.Second

// Run builds the logging router, match registry, and HTTP handler from
// cfg, then serves until ctx is cancelled or ListenAndServe fails.
func Run(ctx context.Context, cfg config.Config, runCfg RunConfig) error {
	telemetryLogger := runCfg.Logger
	if telemetryLogger == nil {
		telemetryLogger = telemetry.WrapLogger(log.Default())
	}

	logConfig := logging.DefaultConfig()
	namedSinks := []logging.NamedSink{
		{Name: "console", Sink: loggingSinks.NewConsoleSink(os.Stdout, logConfig.Console)},
	}
	if cfg.LogFilePath != "" {
		logConfig.EnabledSinks = append(logConfig.EnabledSinks, "jsonlines")
		logConfig.JSON.FilePath = cfg.LogFilePath
		file, ferr := os.OpenFile(cfg.LogFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if ferr != nil {
			return fmt.Errorf("failed to open log file %q: %w", cfg.LogFilePath, ferr)
		}
		namedSinks = append(namedSinks, logging.NamedSink{Name: "jsonlines", Sink: loggingSinks.NewJSONLinesSink(file)})
	}

	router, err := logging.NewRouter(logging.SystemClock{}, logConfig, namedSinks)
	if err != nil {
		return fmt.Errorf("failed to construct logging router: %w", err)
	}
	defer func() {
		if cerr := router.Close(ctx); cerr != nil {
			telemetryLogger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	routerLog := &routerLogger{router: router}

	deps := sim.Deps{
		Logger:  routerLog,
		Metrics: telemetry.WrapMetrics(&logging.Metrics{}),
		Clock:   telemetry.WrapClock(logging.SystemClock{}),
	}
	loopCfg := sim.LoopConfig{
		TickRate:        cfg.TickRate,
		CatchupMaxTicks: cfg.CatchupMaxTicks,
		CommandCapacity: cfg.CommandCapacity,
		PerActorLimit:   cfg.PerActorLimit,
		WarningStep:     cfg.WarningStep,
	}

	registry := matchsvc.NewRegistry(deps, loopCfg)
	registry.IdleTimeout = cfg.MatchIdleTimeout
	resumeIssuer := resume.NewIssuer(cfg.ResumeTokenKey, cfg.ResumeTokenTTL)

	handler := servernet.NewHandler(servernet.HandlerConfig{
		Registry:       registry,
		Resume:         resumeIssuer,
		Logger:         routerLog,
		MsgpackEnabled: cfg.MsgpackEnabled,
		Observability:  observability.Config{EnablePprofTrace: cfg.EnablePprof},
	})

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	routerLog.Printf("server listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// routerLogger adapts the event-shaped logging.Router onto the
// Printf-shaped telemetry.Logger the match loop and net handlers log
// through, since neither knows how to build a structured logging.Event.
type routerLogger struct {
	router *logging.Router
}

func (l *routerLogger) Printf(format string, args ...any) {
	if l == nil || l.router == nil {
		return
	}
	l.router.Publish(context.Background(), logging.Event{
		Type:     "app.log",
		Severity: logging.SeverityInfo,
		Category: logging.CategorySystem,
		Payload:  fmt.Sprintf(format, args...),
	})
}
