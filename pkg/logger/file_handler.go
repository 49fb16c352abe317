package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	fileQueueSize = 1024
	fileFlushTick = time.Second
)

// FileHandler is an slog.Handler that appends formatted records to a log
// file from a background goroutine. Writes are fire-and-forget: a full
// queue drops the record and a write failure is silently discarded, so the
// logging caller is never blocked and never sees an error.
type FileHandler struct {
	path  string
	queue chan string
	done  chan struct{}
	attrs []slog.Attr
}

// NewFileHandler starts the background writer for path. Parent directories
// are created on first write. Call Close to flush.
func NewFileHandler(path string) *FileHandler {
	h := &FileHandler{
		path:  path,
		queue: make(chan string, fileQueueSize),
		done:  make(chan struct{}),
	}
	go h.writeLoop()
	return h
}

func (h *FileHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *FileHandler) Handle(_ context.Context, r slog.Record) error {
	line := fmt.Sprintf("[%s] [%s] %s", r.Time.Format("2006-01-02 15:04:05"), r.Level, r.Message)
	for _, a := range h.attrs {
		line += fmt.Sprintf(" %s=%v", a.Key, a.Value.Any())
	}
	r.Attrs(func(a slog.Attr) bool {
		line += fmt.Sprintf(" %s=%v", a.Key, a.Value.Any())
		return true
	})

	// Non-blocking enqueue: drop if the queue is full.
	select {
	case h.queue <- line:
	default:
	}
	return nil
}

func (h *FileHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(merged, h.attrs)
	copy(merged[len(h.attrs):], attrs)
	return &FileHandler{path: h.path, queue: h.queue, done: h.done, attrs: merged}
}

func (h *FileHandler) WithGroup(string) slog.Handler { return h }

func (h *FileHandler) writeLoop() {
	ticker := time.NewTicker(fileFlushTick)
	defer ticker.Stop()

	var pending []string

	flush := func() {
		if len(pending) == 0 {
			return
		}
		h.append(pending)
		pending = pending[:0]
	}

	for {
		select {
		case line := <-h.queue:
			pending = append(pending, line)
		case <-ticker.C:
			flush()
		case <-h.done:
			for len(h.queue) > 0 {
				pending = append(pending, <-h.queue)
			}
			flush()
			return
		}
	}
}

// append writes lines to the log file, ignoring every failure.
func (h *FileHandler) append(lines []string) {
	_ = os.MkdirAll(filepath.Dir(h.path), 0o755)
	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	for _, line := range lines {
		_, _ = f.WriteString(line + "\n")
	}
}

// Close flushes pending lines and stops the background writer.
// Safe to call multiple times.
func (h *FileHandler) Close() {
	select {
	case <-h.done:
	default:
		close(h.done)
	}
}
