package mti1

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
)

// OperationLogger records one structured line per encode/decode/
// inspect call into a daily-rotating file, the way the teacher's
// packet logger (src/log.go, log_init) wrote one CSV line per
// received packet into a daily-named file. Unlike the pure codec
// pipelines in encode.go/decode.go, this type is only ever driven
// from the CLI layer (cmd/mti1) — the codec itself stays free of any
// logging side effect, per §5's "no shared mutable state" guarantee.
type OperationLogger struct {
	mu      sync.Mutex
	dir     string
	pattern *strftime.Strftime

	currentName string
	logger      *log.Logger
	file        *os.File
}

// NewOperationLogger creates a logger that writes daily files under
// dir, named by the given strftime pattern (e.g. "mti1-%Y%m%d.log").
func NewOperationLogger(dir, namePattern string) (*OperationLogger, error) {
	pattern, err := strftime.New(namePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid operation log name pattern %q: %w", namePattern, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating operation log directory %q: %w", dir, err)
	}
	return &OperationLogger{dir: dir, pattern: pattern}, nil
}

// ensureOpen opens (or rotates to) today's log file.
func (l *OperationLogger) ensureOpen(now time.Time) error {
	name := l.pattern.FormatString(now)
	if name == l.currentName && l.file != nil {
		return nil
	}
	if l.file != nil {
		_ = l.file.Close()
	}
	path := filepath.Join(l.dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening operation log file %q: %w", path, err)
	}
	l.file = f
	l.currentName = name
	l.logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	return nil
}

// LogEncode records a completed (or failed) Encode call.
func (l *OperationLogger) LogEncode(input EncodeInput, result EncodeResult, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ensureErr := l.ensureOpen(time.Now()); ensureErr != nil {
		return
	}
	if err != nil {
		l.logger.Error("encode failed", "mesh_kind", input.MeshKind, "dtype", input.DType, "error", err)
		return
	}
	l.logger.Info("encode",
		"tile_id", result.Header.TileID,
		"mesh_kind", result.Header.MeshKind,
		"dtype", result.Header.DType,
		"compression", result.Header.Compression,
		"bytes", len(result.Bytes),
		"payload_crc32", result.Header.Checksum.PayloadCRC32Hex(),
		"header_crc32", result.Header.Checksum.HeaderCRC32Hex(),
	)
}

// LogDecode records a completed (or failed) Decode call.
func (l *OperationLogger) LogDecode(result DecodeResult, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ensureErr := l.ensureOpen(time.Now()); ensureErr != nil {
		return
	}
	if err != nil {
		l.logger.Error("decode failed", "error", err)
		return
	}
	l.logger.Info("decode",
		"tile_id", result.Header.TileID,
		"mesh_kind", result.Header.MeshKind,
		"dtype", result.Header.DType,
		"values", len(result.Values),
	)
}

// LogInspect records a completed (or failed) Inspect call.
func (l *OperationLogger) LogInspect(result InspectResult, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ensureErr := l.ensureOpen(time.Now()); ensureErr != nil {
		return
	}
	if err != nil {
		l.logger.Error("inspect failed", "error", err)
		return
	}
	l.logger.Info("inspect",
		"tile_id", result.Header.TileID,
		"mesh_kind", result.Header.MeshKind,
		"payload_length", result.PayloadLength,
	)
}

// Close releases the underlying file handle, if any is open.
func (l *OperationLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
