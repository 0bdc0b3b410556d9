package log

import (
	"bytes"
	"encoding/json"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetForTest(t *testing.T) {
	t.Helper()
	once = sync.Once{}
	base = zerolog.Logger{}
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() {
		once = sync.Once{}
		zerolog.SetGlobalLevel(prev)
	})
}

func TestConfigureWritesComponentAndService(t *testing.T) {
	resetForTest(t)
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "travelchat-test"})

	l := WithComponent("webhook")
	l.Info().Str(FieldTurnID, "t-1").Msg("hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "travelchat-test", rec[FieldService])
	assert.Equal(t, "webhook", rec[FieldComponent])
	assert.Equal(t, "t-1", rec[FieldTurnID])
	assert.Equal(t, "hello", rec["message"])
}

func TestConfigureOnlyOnce(t *testing.T) {
	resetForTest(t)
	var first, second bytes.Buffer
	Configure(Config{Output: &first})
	Configure(Config{Output: &second})

	l := Base()
	l.Info().Msg("x")
	assert.NotZero(t, first.Len())
	assert.Zero(t, second.Len())
}

func TestConfigureLevelFiltersDebug(t *testing.T) {
	resetForTest(t)
	var buf bytes.Buffer
	Configure(Config{Level: "warn", Output: &buf})

	l := Base()
	l.Debug().Msg("hidden")
	l.Info().Msg("hidden too")
	assert.Zero(t, buf.Len())
}

func TestConfigureInvalidLevelFallsBackToInfo(t *testing.T) {
	resetForTest(t)
	var buf bytes.Buffer
	Configure(Config{Level: "loud", Output: &buf})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
