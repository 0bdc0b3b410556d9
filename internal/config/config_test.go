package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvServerURL, EnvSenderID, EnvLogFile, EnvLogLevel, EnvMetricsAddr, EnvTitle} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultServerURL, cfg.ServerURL)
	assert.Equal(t, DefaultSenderID, cfg.SenderID)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultTitle, cfg.Title)
	assert.Empty(t, cfg.LogFile)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvServerURL, "https://bot.example.com/ ")
	t.Setenv(EnvSenderID, "traveller-7")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvMetricsAddr, "127.0.0.1:9091")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://bot.example.com", cfg.ServerURL)
	assert.Equal(t, "traveller-7", cfg.SenderID)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:9091", cfg.MetricsAddr)
}

func TestNormalizeServerURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "empty uses default", in: "", want: DefaultServerURL},
		{name: "trailing slashes trimmed", in: "http://rasa:5005//", want: "http://rasa:5005"},
		{name: "path kept", in: "https://host/bot", want: "https://host/bot"},
		{name: "missing scheme", in: "localhost:5005", wantErr: true},
		{name: "ftp rejected", in: "ftp://host", wantErr: true},
		{name: "no host", in: "http://", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeServerURL(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidServerURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeFillsBlanks(t *testing.T) {
	cfg, err := Config{ServerURL: "http://x:1", SenderID: "  ", Title: ""}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, DefaultSenderID, cfg.SenderID)
	assert.Equal(t, DefaultTitle, cfg.Title)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoadReadsDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv(EnvServerURL))
	require.NoError(t, os.Unsetenv(EnvTitle))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte(EnvServerURL+"=http://from-dotenv:5005\n"+EnvTitle+"=Trip Bot\n"), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		_ = os.Unsetenv(EnvServerURL)
		_ = os.Unsetenv(EnvTitle)
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv:5005", cfg.ServerURL)
	assert.Equal(t, "Trip Bot", cfg.Title)
}

func TestFromEnvRecordsSources(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSenderID, "abc")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, SourceEnvironment, cfg.Sources[EnvSenderID])
	assert.Equal(t, SourceDefault, cfg.Sources[EnvServerURL])

	cfg.SetSource(EnvServerURL, SourceFlag)
	assert.Equal(t, SourceFlag, cfg.Sources[EnvServerURL])
}

func TestLogSources(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	require.NoError(t, err)

	var buf bytes.Buffer
	cfg.LogSources(zerolog.New(&buf).Level(zerolog.DebugLevel))
	out := buf.String()
	assert.Equal(t, 6, strings.Count(out, "resolved setting"))
	assert.Contains(t, out, `"value":"http://localhost:5005"`)
}
