// Package config resolves the travelchat runtime settings from an optional
// .env file, the environment and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	EnvServerURL   = "RASA_SERVER_URL"
	EnvSenderID    = "TRAVELCHAT_SENDER_ID"
	EnvLogFile     = "TRAVELCHAT_LOG_FILE"
	EnvLogLevel    = "LOG_LEVEL"
	EnvMetricsAddr = "TRAVELCHAT_METRICS_ADDR"
	EnvTitle       = "TRAVELCHAT_TITLE"

	DefaultServerURL = "http://localhost:5005"
	DefaultSenderID  = "user"
	DefaultLogLevel  = "info"
	DefaultTitle     = "Travel Assistant"
)

var ErrInvalidServerURL = errors.New("config: invalid server url")

// Source says where a setting came from.
type Source string

const (
	SourceDefault     Source = "default"
	SourceEnvironment Source = "environment"
	SourceFlag        Source = "flag"
)

type Config struct {
	ServerURL   string
	SenderID    string
	LogFile     string
	LogLevel    string
	MetricsAddr string
	Title       string

	// Sources maps each environment key to where its value came from.
	Sources map[string]Source
}

// Load reads .env (if present) and the environment. Values already set in
// the environment win over .env entries.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	sources := map[string]Source{}
	cfg := Config{
		ServerURL:   envOr(sources, EnvServerURL, DefaultServerURL),
		SenderID:    envOr(sources, EnvSenderID, DefaultSenderID),
		LogFile:     envOr(sources, EnvLogFile, ""),
		LogLevel:    envOr(sources, EnvLogLevel, DefaultLogLevel),
		MetricsAddr: envOr(sources, EnvMetricsAddr, ""),
		Title:       envOr(sources, EnvTitle, DefaultTitle),
		Sources:     sources,
	}
	return cfg.Normalize()
}

// SetSource records that key was supplied by src.
func (c *Config) SetSource(key string, src Source) {
	if c.Sources == nil {
		c.Sources = map[string]Source{}
	}
	c.Sources[key] = src
}

// LogSources writes one debug line per setting.
func (c Config) LogSources(logger zerolog.Logger) {
	values := map[string]string{
		EnvServerURL:   c.ServerURL,
		EnvSenderID:    c.SenderID,
		EnvLogFile:     c.LogFile,
		EnvLogLevel:    c.LogLevel,
		EnvMetricsAddr: c.MetricsAddr,
		EnvTitle:       c.Title,
	}
	for _, key := range []string{EnvServerURL, EnvSenderID, EnvLogFile, EnvLogLevel, EnvMetricsAddr, EnvTitle} {
		src, ok := c.Sources[key]
		if !ok {
			src = SourceDefault
		}
		logger.Debug().
			Str("key", key).
			Str("value", values[key]).
			Str("source", string(src)).
			Msg("resolved setting")
	}
}

// Normalize validates the config and returns a cleaned copy. It is applied
// again after command-line flags are overlaid.
func (c Config) Normalize() (Config, error) {
	base, err := NormalizeServerURL(c.ServerURL)
	if err != nil {
		return c, err
	}
	c.ServerURL = base
	c.SenderID = strings.TrimSpace(c.SenderID)
	if c.SenderID == "" {
		c.SenderID = DefaultSenderID
	}
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.LogFile = strings.TrimSpace(c.LogFile)
	c.MetricsAddr = strings.TrimSpace(c.MetricsAddr)
	return c, nil
}

// NormalizeServerURL trims the value and any trailing slash, falling back to
// DefaultServerURL when empty. Only absolute http(s) URLs are accepted.
func NormalizeServerURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultServerURL
	}
	trimmed = strings.TrimRight(trimmed, "/")
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidServerURL, raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: %q: scheme must be http or https", ErrInvalidServerURL, raw)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("%w: %q: missing host", ErrInvalidServerURL, raw)
	}
	return trimmed, nil
}

func envOr(sources map[string]Source, key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		sources[key] = SourceDefault
		return fallback
	}
	sources[key] = SourceEnvironment
	return value
}
