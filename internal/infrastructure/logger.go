package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"hotelcomp/internal/config"
)

// process holds the logger installed by InitializeLogger and the log file
// it writes to, if any
var process struct {
	mu     sync.Mutex
	logger *slog.Logger
	file   *os.File
}

// InitializeLogger builds the process logger from cfg and installs it as
// the slog default. Once a logger is installed later calls return it
// unchanged; a failed call installs nothing.
func InitializeLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	process.mu.Lock()
	defer process.mu.Unlock()

	if process.logger != nil {
		return process.logger, nil
	}

	w, file, err := logWriter(cfg)
	if err != nil {
		return nil, err
	}

	process.logger = NewLogger(cfg, w)
	process.file = file
	slog.SetDefault(process.logger)
	return process.logger, nil
}

// GetLogger returns the process logger, or slog's default before
// InitializeLogger has run
func GetLogger() *slog.Logger {
	process.mu.Lock()
	defer process.mu.Unlock()

	if process.logger == nil {
		return slog.Default()
	}
	return process.logger
}

// NewLogger builds a logger writing to w: JSON unless cfg asks for text,
// with trace ids from the context added to every record
func NewLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: cfg.Development,
		Level:     parseLogLevel(cfg.Level),
	}

	var handler slog.Handler = slog.NewJSONHandler(w, opts)
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(&traceHandler{Handler: handler})
}

// logWriter resolves the output mode. "file" and "both" also return the
// opened file so it can be closed on shutdown.
func logWriter(cfg config.LoggingConfig) (io.Writer, *os.File, error) {
	mode := strings.ToLower(cfg.Output)
	if mode != "file" && mode != "both" {
		return os.Stdout, nil, nil
	}

	file, err := openLogFile(cfg.FilePath)
	if err != nil {
		return nil, nil, err
	}
	if mode == "both" {
		return io.MultiWriter(os.Stdout, file), file, nil
	}
	return file, file, nil
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return file, nil
}

// CloseLogFile closes the process log file, if one is open
func CloseLogFile() error {
	process.mu.Lock()
	defer process.mu.Unlock()

	if process.file == nil {
		return nil
	}
	err := process.file.Close()
	process.file = nil
	return err
}

// ResetLoggerForTesting closes the log file and uninstalls the logger
func ResetLoggerForTesting() {
	_ = CloseLogFile()

	process.mu.Lock()
	process.logger = nil
	process.mu.Unlock()
}

// traceHandler adds trace_id to each record. The request trace id set by
// the RequestID middleware wins over the active span's trace id.
type traceHandler struct {
	slog.Handler
}

func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	traceID := GetTraceID(ctx)
	if traceID == "" {
		traceID = TraceIDFromContext(ctx)
	}
	if traceID != "" {
		r.AddAttrs(slog.String("trace_id", traceID))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithGroup(name)}
}

// parseLogLevel maps a config level name to a slog level; unknown names
// mean info
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
