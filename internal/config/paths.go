package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Paths contains the resolved application directories
type Paths struct {
	BaseDir    string
	DataDir    string
	ReportsDir string
	LogsDir    string
	// KeepReports is the saved report retention count; 0 keeps all
	KeepReports int
}

// GetPaths resolves the configured directories against the executable
// directory. Absolute configured paths are used as-is.
func GetPaths(cfg PathsConfig) (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return NewPaths(filepath.Dir(exe), cfg), nil
}

// NewPaths resolves the configured directories against baseDir
func NewPaths(baseDir string, cfg PathsConfig) *Paths {
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}

	return &Paths{
		BaseDir:    baseDir,
		DataDir:    resolve(cfg.DataDir),
		ReportsDir: resolve(cfg.ReportsDir),
		LogsDir:    resolve(cfg.LogsDir),

		KeepReports: cfg.KeepReports,
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// GetReportPath returns the path for a generated report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetDataPath returns the path for an input data file
func (p *Paths) GetDataPath(filename string) string {
	return filepath.Join(p.DataDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// ReportFileName returns the results workbook name for a run
func ReportFileName(runID string, at time.Time) string {
	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("comparison_%s_%s.xlsx", at.Format("20060102_150405"), short)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
