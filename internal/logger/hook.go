package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// AsyncHook buffer log entries và ghi chúng vào các writers trong một goroutine riêng
type AsyncHook struct {
	writers []io.Writer
	entries chan *logrus.Entry
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

// NewAsyncHookWithWriters tạo một async hook mới với nhiều writers
// bufferSize: kích thước buffer cho log entries (mặc định 1000)
func NewAsyncHookWithWriters(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	hook := &AsyncHook{
		writers: writers,
		entries: make(chan *logrus.Entry, bufferSize),
	}

	hook.wg.Add(1)
	go hook.processEntries()

	return hook
}

// Levels trả về các log levels mà hook này xử lý
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire không block: channel đầy thì bỏ entry
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	if filtered, ok := entry.Data[filteredKey].(bool); ok && filtered {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		// Hook đã đóng, ghi trực tiếp (fallback)
		h.write(entry)
		return nil
	}

	select {
	case h.entries <- entry:
	default:
	}
	return nil
}

// processEntries xử lý log entries, có recover để goroutine logger không làm crash server
func (h *AsyncHook) processEntries() {
	defer h.wg.Done()

	for entry := range h.entries {
		func() {
			defer func() {
				if r := recover(); r != nil {
					// Không thể dùng logger ở đây vì sẽ tạo vòng lặp
					fmt.Fprintf(os.Stderr, "[LOGGER PANIC] %v\n", r)
					debug.PrintStack()
				}
			}()
			h.write(entry)
		}()
	}
}

func (h *AsyncHook) write(entry *logrus.Entry) {
	var data []byte
	var err error
	if entry.Logger != nil && entry.Logger.Formatter != nil {
		data, err = entry.Logger.Formatter.Format(entry)
	} else {
		var line string
		line, err = entry.String()
		data = []byte(line)
	}
	if err != nil {
		return
	}
	for _, w := range h.writers {
		_, _ = w.Write(data)
	}
}

// Close đóng hook và đợi tất cả entries được xử lý xong
func (h *AsyncHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.entries)
	h.mu.Unlock()

	h.wg.Wait()
	return nil
}

const filteredKey = "_filtered"

// FilterHook đánh dấu các entry không thuộc module được phép.
// Entry không có field "module" luôn được giữ lại.
type FilterHook struct {
	allowed map[string]bool
}

// NewFilterHook nhận danh sách module dạng "auth,catalog" hoặc "*"
func NewFilterHook(modules string) *FilterHook {
	hook := &FilterHook{allowed: map[string]bool{}}
	for _, m := range strings.Split(modules, ",") {
		if m = strings.TrimSpace(m); m != "" {
			hook.allowed[m] = true
		}
	}
	return hook
}

func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *FilterHook) Fire(entry *logrus.Entry) error {
	if len(h.allowed) == 0 || h.allowed["*"] {
		return nil
	}
	// Luôn giữ lại lỗi
	if entry.Level <= logrus.ErrorLevel {
		return nil
	}
	module, ok := entry.Data["module"].(string)
	if ok && !h.allowed[module] {
		entry.Data[filteredKey] = true
	}
	return nil
}
