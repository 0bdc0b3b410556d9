package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"travelchat/internal/config"
	"travelchat/internal/conversation"
	"travelchat/internal/log"
	"travelchat/internal/telemetry"
	"travelchat/internal/webhook"
)

type appConfig struct {
	serverURL   string
	senderID    string
	logFile     string
	logLevel    string
	metricsAddr string
	title       string
	altScreen   bool

	resolved config.Config
}

// parseFlags overlays command-line flags on the environment-derived config.
func parseFlags(base config.Config, args []string) (appConfig, error) {
	fs := flag.NewFlagSet("travelchat-tui", flag.ContinueOnError)
	cfg := appConfig{}
	fs.StringVar(&cfg.serverURL, "url", base.ServerURL, "Dialogue server base URL (env "+config.EnvServerURL+")")
	fs.StringVar(&cfg.senderID, "sender-id", base.SenderID, "Sender id sent with every message (env "+config.EnvSenderID+")")
	fs.StringVar(&cfg.logFile, "log-file", base.LogFile, "Write structured logs to this file; empty discards them (env "+config.EnvLogFile+")")
	fs.StringVar(&cfg.logLevel, "log-level", base.LogLevel, "Log level (env "+config.EnvLogLevel+")")
	fs.StringVar(&cfg.metricsAddr, "metrics-addr", base.MetricsAddr, "Serve /metrics and /healthz on this address; empty disables (env "+config.EnvMetricsAddr+")")
	fs.StringVar(&cfg.title, "title", base.Title, "Header title (env "+config.EnvTitle+")")
	fs.BoolVar(&cfg.altScreen, "alt-screen", true, "Use alternate screen buffer")
	if err := fs.Parse(args); err != nil {
		return appConfig{}, err
	}

	resolved := base
	resolved.ServerURL = cfg.serverURL
	resolved.SenderID = cfg.senderID
	resolved.LogFile = cfg.logFile
	resolved.LogLevel = cfg.logLevel
	resolved.MetricsAddr = cfg.metricsAddr
	resolved.Title = cfg.title
	flagKeys := map[string]string{
		"url":          config.EnvServerURL,
		"sender-id":    config.EnvSenderID,
		"log-file":     config.EnvLogFile,
		"log-level":    config.EnvLogLevel,
		"metrics-addr": config.EnvMetricsAddr,
		"title":        config.EnvTitle,
	}
	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			resolved.SetSource(key, config.SourceFlag)
		}
	})
	resolved, err := resolved.Normalize()
	if err != nil {
		return appConfig{}, err
	}

	cfg.serverURL = resolved.ServerURL
	cfg.senderID = resolved.SenderID
	cfg.logFile = resolved.LogFile
	cfg.logLevel = resolved.LogLevel
	cfg.metricsAddr = resolved.MetricsAddr
	cfg.title = resolved.Title
	cfg.resolved = resolved
	return cfg, nil
}

func openLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func run(args []string) error {
	base, err := config.Load()
	if err != nil {
		return err
	}
	cfg, err := parseFlags(base, args)
	if err != nil {
		return err
	}

	out, closeLog, err := openLogOutput(cfg.logFile)
	if err != nil {
		return err
	}
	defer closeLog()
	log.Configure(log.Config{Level: cfg.logLevel, Output: out, Service: "travelchat-tui"})
	logger := log.WithComponent("tui")
	cfg.resolved.LogSources(log.WithComponent("config"))

	if cfg.metricsAddr != "" {
		srv, err := telemetry.Start(cfg.metricsAddr, nil)
		if err != nil {
			return fmt.Errorf("start telemetry listener: %w", err)
		}
		defer func() {
			if err := srv.Shutdown(context.Background()); err != nil {
				logger.Warn().Err(err).Msg("telemetry shutdown")
			}
		}()
	}

	client := webhook.New(cfg.serverURL)
	session := conversation.NewController(client, cfg.senderID)
	logger.Info().
		Str(log.FieldBaseURL, cfg.serverURL).
		Str(log.FieldSessionID, session.SessionID()).
		Msg("session started")

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if cfg.altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(newModel(cfg, session), opts...)
	if _, err := p.Run(); err != nil {
		return err
	}
	snap := session.Snapshot()
	logger.Info().
		Int("turns", snap.Turns).
		Int(log.FieldEntries, len(snap.Entries)).
		Msg("session ended")
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "travelchat-tui: %v\n", err)
		os.Exit(1)
	}
}
