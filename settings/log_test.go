package settings_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/plus3/boringgame/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restoreGlobalLevel resets the process-wide level changed by NewLogger.
func restoreGlobalLevel(t *testing.T) {
	level := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(level) })
}

func TestNewLoggerJSON(t *testing.T) {
	restoreGlobalLevel(t)

	var buf bytes.Buffer
	logger, err := settings.LogSettings{Level: "warn"}.NewLogger(&buf)
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Str("entity", "player").Msg("shown")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "shown", event["message"])
	assert.Equal(t, "warn", event["level"])
	assert.Equal(t, "player", event["entity"])

	runID, ok := event["run_id"].(string)
	require.True(t, ok)
	_, err = uuid.Parse(runID)
	assert.NoError(t, err)
}

func TestNewLoggerPretty(t *testing.T) {
	restoreGlobalLevel(t)

	var buf bytes.Buffer
	logger, err := settings.LogSettings{Level: "debug", Pretty: true}.NewLogger(&buf)
	require.NoError(t, err)

	logger.Debug().Msg("spawned")
	assert.Contains(t, buf.String(), "spawned")
	assert.Contains(t, buf.String(), "run_id=")
}

func TestApplyLevelChangesExistingLogger(t *testing.T) {
	restoreGlobalLevel(t)

	var buf bytes.Buffer
	logger, err := settings.LogSettings{Level: "info"}.NewLogger(&buf)
	require.NoError(t, err)

	logger.Debug().Msg("before reload")
	assert.Empty(t, buf.String())

	reloaded, err := settings.Parse([]byte("log: {level: debug, pretty: false}"))
	require.NoError(t, err)
	require.NoError(t, reloaded.Log.ApplyLevel())

	logger.Debug().Msg("after reload")
	assert.Contains(t, buf.String(), "after reload")
	assert.NotContains(t, buf.String(), "before reload")

	buf.Reset()
	require.NoError(t, settings.LogSettings{Level: "error"}.ApplyLevel())
	logger.Warn().Msg("quiet")
	assert.Empty(t, buf.String())
}

func TestNewLoggerRejectsLevel(t *testing.T) {
	restoreGlobalLevel(t)

	_, err := settings.LogSettings{Level: "chatty"}.NewLogger(&bytes.Buffer{})
	assert.Error(t, err)
}
