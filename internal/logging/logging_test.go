package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestJsonLogsAreStructured(t *testing.T) {
	t.Parallel()

	out := bytes.NewBuffer(nil)
	logger, err := CreateLogger(zerolog.InfoLevel, "json", out)
	require.NoError(t, err)

	logger.Warn().Str("cache", "transport").Msg("cache opened")

	entry := map[string]any{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "cache opened", entry["message"])
	require.Equal(t, "transport", entry["cache"])
	require.Contains(t, entry, "time")
	require.Contains(t, entry, "caller")
}

func TestConsoleLogsAreHumanReadable(t *testing.T) {
	t.Parallel()

	out := bytes.NewBuffer(nil)
	logger, err := CreateLogger(zerolog.InfoLevel, "console", out)
	require.NoError(t, err)

	logger.Warn().Msg("cache opened")

	require.NotEqual(t, byte('{'), out.Bytes()[0])
	require.Contains(t, out.String(), "WRN")
	require.Contains(t, out.String(), "cache opened")
}

func TestLoggerHonorsTheConfiguredLevel(t *testing.T) {
	t.Parallel()

	out := bytes.NewBuffer(nil)
	logger, err := CreateLogger(zerolog.WarnLevel, "json", out)
	require.NoError(t, err)

	logger.Info().Msg("too quiet")
	require.Empty(t, out.String())

	logger.Warn().Msg("loud enough")
	require.Contains(t, out.String(), "loud enough")
}

func TestRejectsUnknownLogFormats(t *testing.T) {
	t.Parallel()

	logger, err := CreateLogger(zerolog.InfoLevel, "xml", bytes.NewBuffer(nil))
	require.ErrorIs(t, err, ErrInvalidLogFormat)
	require.Equal(t, zerolog.Logger{}, logger)
}
