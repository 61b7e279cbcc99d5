package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"
)

// AsyncHook đẩy log entry qua channel cho một goroutine ghi riêng,
// để request handling không phải chờ file I/O. Nhận nhiều writer
// (file + stdout) và ghi tuần tự vào từng writer.
type AsyncHook struct {
	writers []io.Writer
	entries chan *logrus.Entry
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

// NewAsyncHookWithWriters tạo async hook với buffer bufferSize entry (mặc định 1000).
func NewAsyncHookWithWriters(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	h := &AsyncHook{
		writers: writers,
		entries: make(chan *logrus.Entry, bufferSize),
	}
	h.wg.Add(1)
	go h.drain()
	return h
}

// Levels đăng ký hook cho mọi level.
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// formatEntry render entry bằng formatter của logger, fallback entry.String().
func formatEntry(entry *logrus.Entry) ([]byte, error) {
	if entry.Logger.Formatter != nil {
		return entry.Logger.Formatter.Format(entry)
	}
	line, err := entry.String()
	if err != nil {
		return nil, err
	}
	return []byte(line), nil
}

// Fire không bao giờ block: entry vào channel, channel đầy thì bỏ entry.
// Sau khi Close, entry được ghi đồng bộ trực tiếp (đường tắt lúc shutdown).
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()

	if closed {
		data, err := formatEntry(entry)
		if err != nil {
			return err
		}
		for _, w := range h.writers {
			_, _ = w.Write(data)
		}
		return nil
	}

	select {
	case h.entries <- entry:
	default:
		// Channel đầy: mất log còn hơn chặn request
	}
	return nil
}

// drain chạy trong goroutine riêng, ghi lần lượt các entry đã buffer.
func (h *AsyncHook) drain() {
	defer h.wg.Done()
	for entry := range h.entries {
		h.writeEntry(entry)
	}
}

func (h *AsyncHook) writeEntry(entry *logrus.Entry) {
	defer func() {
		if r := recover(); r != nil {
			// Không log qua logrus ở đây được (vòng lặp); stderr là đủ
			fmt.Fprintf(os.Stderr, "[LOGGER PANIC] Logger goroutine panic recovered: %v\n", r)
			debug.PrintStack()
		}
	}()

	// FilterHook đánh dấu entry bị loại bằng field "_filtered"
	if filtered, ok := entry.Data["_filtered"].(bool); ok && filtered {
		return
	}
	if _, ok := entry.Data["_filtered"]; ok {
		entry = entry.Dup()
		delete(entry.Data, "_filtered")
	}

	data, err := formatEntry(entry)
	if err != nil {
		return
	}
	for _, w := range h.writers {
		_, _ = w.Write(data)
	}
}

// Close đóng channel và đợi goroutine ghi nốt các entry còn buffer.
func (h *AsyncHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	h.mu.Unlock()

	close(h.entries)
	h.wg.Wait()
	return nil
}
