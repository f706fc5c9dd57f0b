package logging

import (
	"bytes"
	"errors"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, LevelInfo)

	logger.Info("fees saved", "match_id", "m-1", "players", 14, "error", errors.New("boom"))
	require.NoError(t, logger.Sync())

	var line map[string]any
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "fees saved", line["msg"])
	require.Equal(t, "m-1", line["match_id"])
	require.EqualValues(t, 14, line["players"])
	require.Equal(t, "boom", line["error"])
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, LevelWarn)

	logger.Info("hidden")
	logger.Debug("hidden too")
	require.Zero(t, buf.Len())

	logger.Warn("visible")
	require.Contains(t, buf.String(), "visible")
}

func TestLogger_OddArgsAndNilReceiver(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, LevelInfo).With("component", "audit")

	logger.Info("dangling", "orphan")
	require.Contains(t, buf.String(), `"orphan":null`)
	require.Contains(t, buf.String(), `"component":"audit"`)

	var nilLogger *Logger
	require.NotPanics(t, func() { nilLogger.Info("noop") })
}
