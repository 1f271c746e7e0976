package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRecorder(t *testing.T) {
	logger, rec := NewLogRecorder(nil)

	logger.With(slog.String("component", "engine")).Warn("subject skipped", slog.Int("row", 4))
	logger.Info("run complete")

	require.Len(t, rec.Records(), 2)

	r, ok := rec.Find("skipped")
	require.True(t, ok)
	assert.Equal(t, slog.LevelWarn, r.Level)
	assert.Equal(t, "engine", r.Attrs["component"])
	assert.EqualValues(t, 4, r.Attrs["row"])

	assert.Len(t, rec.AtLevel(slog.LevelInfo), 1)
	_, ok = rec.Find("missing")
	assert.False(t, ok)

	rec.Reset()
	assert.Empty(t, rec.Records())
}

func TestWorkedExample(t *testing.T) {
	records := WorkedExample()
	require.Len(t, records, 3)
	for _, r := range records {
		assert.True(t, r.Class.IsValid(), r.ProjectName)
		assert.Equal(t, r.Class.Label(), r.ClassLabel)
	}
}
