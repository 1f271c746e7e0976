package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	base := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere")

	p := NewPaths(base, PathsConfig{DataDir: "data", ReportsDir: abs, LogsDir: "logs"})

	assert.Equal(t, filepath.Join(base, "data"), p.DataDir)
	assert.Equal(t, abs, p.ReportsDir)
	assert.Equal(t, filepath.Join(base, "logs"), p.LogsDir)
	assert.Equal(t, filepath.Join(abs, "out.xlsx"), p.GetReportPath("out.xlsx"))
	assert.Equal(t, filepath.Join(base, "data", "in.csv"), p.GetDataPath("in.csv"))
	assert.Equal(t, filepath.Join(base, "logs", "app.log"), p.GetLogPath("app.log"))
}

func TestPaths_EnsureDirectories(t *testing.T) {
	base := t.TempDir()
	p := NewPaths(base, Default().Paths)

	require.NoError(t, p.EnsureDirectories())
	assert.True(t, FileExists(p.DataDir))
	assert.True(t, FileExists(p.ReportsDir))
	assert.True(t, FileExists(p.LogsDir))
	assert.False(t, FileExists(filepath.Join(base, "missing")))
}

func TestGetPaths(t *testing.T) {
	p, err := GetPaths(Default().Paths)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(p.BaseDir))
	assert.True(t, strings.HasPrefix(p.DataDir, p.BaseDir))
}

func TestReportFileName(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	assert.Equal(t, "comparison_20250314_092653_0f8fad5b.xlsx",
		ReportFileName("0f8fad5b-d9cb-469f-a165-70867728950e", at))
	assert.Equal(t, "comparison_20250314_092653_abc.xlsx", ReportFileName("abc", at))
}
