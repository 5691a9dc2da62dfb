package logging

import (
	"log/slog"
	"strings"
)

// Writer is an io.Writer implementation that forwards subprocess output to slog.
// Each write is logged as one or more lines tagged with the stream name
// (typically "stdout" or "stderr").
type Writer struct {
	logger *slog.Logger
	stream string
}

// NewWriter constructs a Writer bound to the provided logger and stream name.
func NewWriter(logger *slog.Logger, stream string) *Writer {
	return &Writer{logger: logger, stream: stream}
}

// Write logs the given bytes line by line at info level.
func (w *Writer) Write(p []byte) (int, error) {
	if w.logger != nil {
		for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
			if line != "" {
				w.logger.Info("rmapi output", "stream", w.stream, "line", line)
			}
		}
	}
	return len(p), nil
}
