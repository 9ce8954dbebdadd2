package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"otmane/userbook/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, logger.ParseLevel("debug"))
	require.Equal(t, zerolog.WarnLevel, logger.ParseLevel(" WARN "))
	require.Equal(t, zerolog.ErrorLevel, logger.ParseLevel("error"))
	require.Equal(t, zerolog.InfoLevel, logger.ParseLevel("info"))
	require.Equal(t, zerolog.InfoLevel, logger.ParseLevel("verbose"))
}

func TestInitWithWriterJSON(t *testing.T) {
	previousLogger, previousLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = previousLogger
		zerolog.SetGlobalLevel(previousLevel)
	})

	var buf bytes.Buffer
	logger.InitWithWriter(&buf, "warn", "json")

	log.Info().Msg("dropped")
	log.Warn().Str("id", "42").Msg("kept")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "kept", entry["message"])
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "42", entry["id"])
	require.Contains(t, entry, "time")
}
