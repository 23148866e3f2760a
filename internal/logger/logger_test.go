package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", false)

	log.Info().Msg("dropped")
	require.Zero(t, buf.Len())

	log.Warn().Str("image", "1_a.png").Msg("could not delete image")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "warn", line["level"])
	require.Equal(t, "catalog", line["service"])
	require.Equal(t, "1_a.png", line["image"])
	require.Equal(t, "could not delete image", line["message"])
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "loud", false)

	log.Debug().Msg("dropped")
	require.Zero(t, buf.Len())

	log.Info().Msg("kept")
	require.NotZero(t, buf.Len())
}

func TestNew_Pretty(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", true)

	log.Info().Msg("listening")
	require.Contains(t, buf.String(), "listening")
	require.False(t, json.Valid(buf.Bytes()))
}
