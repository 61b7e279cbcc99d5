package logger

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// filterSet là một danh sách giá trị cho phép, lookup không phân biệt hoa thường.
// Set rỗng hoặc chứa "*" nghĩa là cho phép tất cả.
type filterSet map[string]bool

// newFilterSet parse chuỗi "value1,value2" (hoặc "*") thành filterSet.
func newFilterSet(raw string) filterSet {
	set := make(filterSet)
	if raw == "" || raw == "*" {
		set["*"] = true
		return set
	}
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			set[strings.ToLower(v)] = true
		}
	}
	return set
}

// active báo set này có thực sự lọc gì không.
func (s filterSet) active() bool {
	return len(s) > 0 && !s["*"]
}

// allows kiểm tra value có trong set không (so sánh lowercase).
func (s filterSet) allows(value string) bool {
	return s[strings.ToLower(value)]
}

// allowsPrefix như allows nhưng chấp nhận cả prefix match (dùng cho endpoint).
func (s filterSet) allowsPrefix(value string) bool {
	lower := strings.ToLower(value)
	for allowed := range s {
		if allowed == "*" || lower == allowed || strings.HasPrefix(lower, allowed) {
			return true
		}
	}
	return false
}

// FilterHook lọc log entry theo module (video, like...), endpoint
// (/api/v1/videos), HTTP method và log level, đọc từ LogConfig.
type FilterHook struct {
	modules   filterSet
	endpoints filterSet
	methods   filterSet
	logTypes  filterSet

	mu sync.RWMutex
}

// NewFilterHook tạo filter hook từ config.
func NewFilterHook(cfg *LogConfig) *FilterHook {
	h := &FilterHook{}
	h.UpdateFilters(cfg)
	return h
}

// UpdateFilters nạp lại tiêu chí lọc từ config, gọi được lúc runtime.
func (h *FilterHook) UpdateFilters(cfg *LogConfig) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.modules = newFilterSet(cfg.FilterModules)
	h.endpoints = newFilterSet(cfg.FilterEndpoints)
	h.methods = newFilterSet(cfg.FilterMethods)
	h.logTypes = newFilterSet(cfg.FilterLogTypes)
}

// Levels đăng ký hook cho mọi level.
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đánh dấu entry không qua được filter bằng field "_filtered";
// AsyncHook đọc field này và bỏ qua entry thay vì ghi ra writer.
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.logTypes.active() && !h.logTypes.allows(entry.Level.String()) {
		entry.Data["_filtered"] = true
		return nil
	}

	if h.modules.active() {
		if module, ok := entry.Data["module"].(string); ok && module != "" && !h.modules.allows(module) {
			entry.Data["_filtered"] = true
			return nil
		}
	}

	if h.endpoints.active() {
		endpoint, ok := entry.Data["endpoint"].(string)
		if !ok || endpoint == "" {
			endpoint, ok = entry.Data["path"].(string)
		}
		if ok && endpoint != "" && !h.endpoints.allowsPrefix(endpoint) {
			entry.Data["_filtered"] = true
			return nil
		}
	}

	if h.methods.active() {
		if method, ok := entry.Data["method"].(string); ok && method != "" && !h.methods.allows(method) {
			entry.Data["_filtered"] = true
			return nil
		}
	}

	return nil
}
