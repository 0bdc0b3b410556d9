package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"travelchat/internal/config"
)

func baseConfig() config.Config {
	return config.Config{
		ServerURL: config.DefaultServerURL,
		SenderID:  config.DefaultSenderID,
		LogLevel:  config.DefaultLogLevel,
		Title:     config.DefaultTitle,
		Sources:   map[string]config.Source{config.EnvServerURL: config.SourceDefault},
	}
}

func TestParseFlagsDefaults(t *testing.T) {
	cfg, err := parseFlags(baseConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.serverURL != "http://localhost:5005" {
		t.Fatalf("unexpected server url %q", cfg.serverURL)
	}
	if cfg.senderID != "user" {
		t.Fatalf("unexpected sender %q", cfg.senderID)
	}
	if !cfg.altScreen {
		t.Fatalf("expected alt screen by default")
	}
	if cfg.resolved.Sources[config.EnvServerURL] != config.SourceDefault {
		t.Fatalf("expected default source, got %q", cfg.resolved.Sources[config.EnvServerURL])
	}
}

func TestParseFlagsOverrideEnvironment(t *testing.T) {
	cfg, err := parseFlags(baseConfig(), []string{
		"--url", "https://rasa.example.com/",
		"--sender-id", "traveller",
		"--title", "Trip Desk",
		"--alt-screen=false",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.serverURL != "https://rasa.example.com" {
		t.Fatalf("expected trimmed url, got %q", cfg.serverURL)
	}
	if cfg.senderID != "traveller" || cfg.title != "Trip Desk" || cfg.altScreen {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.resolved.Sources[config.EnvServerURL] != config.SourceFlag {
		t.Fatalf("expected flag source for url")
	}
}

func TestParseFlagsRejectsBadURL(t *testing.T) {
	_, err := parseFlags(baseConfig(), []string{"--url", "localhost:5005"})
	if !errors.Is(err, config.ErrInvalidServerURL) {
		t.Fatalf("expected ErrInvalidServerURL, got %v", err)
	}
}

func TestParseFlagsHelp(t *testing.T) {
	_, err := parseFlags(baseConfig(), []string{"-h"})
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
}

func TestOpenLogOutput(t *testing.T) {
	w, closeFn, err := openLogOutput("")
	if err != nil || w == nil {
		t.Fatalf("expected discard writer, got %v %v", w, err)
	}
	closeFn()

	path := filepath.Join(t.TempDir(), "chat.log")
	w, closeFn, err = openLogOutput(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := w.Write([]byte("line\n")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	closeFn()
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "line\n" {
		t.Fatalf("unexpected log content %q (%v)", data, err)
	}
}
