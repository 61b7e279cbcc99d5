package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	loggers   = make(map[string]*logrus.Logger)
	loggersMu sync.Mutex

	config *LogConfig

	// rootDir là gốc project, dùng để resolve đường dẫn logs tương đối
	rootDir string
)

// Init chuẩn bị hệ thống log: xác định gốc project và tạo thư mục logs.
// cfg nil → dùng DefaultConfig.
func Init(cfg *LogConfig) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	config = cfg

	if err := initRootDir(); err != nil {
		return fmt.Errorf("failed to initialize root directory: %w", err)
	}

	if err := os.MkdirAll(getLogPath(), 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	return nil
}

// looksLikeProjectRoot nhận diện gốc project qua sự tồn tại của logs/ hoặc config/.
func looksLikeProjectRoot(dir string) bool {
	for _, marker := range []string{"logs", "config"} {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// initRootDir xác định gốc project theo thứ tự ưu tiên:
// biến môi trường LOG_ROOT_DIR → vị trí binary → đi ngược từ working directory.
func initRootDir() error {
	if rootDir != "" {
		return nil
	}

	if env := os.Getenv("LOG_ROOT_DIR"); env != "" {
		if resolved, err := filepath.EvalSymlinks(env); err == nil {
			rootDir = resolved
		} else {
			rootDir = env
		}
		return nil
	}

	// Binary thường nằm ở <root>/cmd/server/server; symlink phải được
	// resolve trước (systemd hay chạy qua symlink)
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		candidate := filepath.Dir(filepath.Dir(filepath.Dir(exe)))
		if looksLikeProjectRoot(candidate) {
			rootDir = candidate
			return nil
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("could not get executable or working directory: %v", err)
	}
	dir := wd
	for i := 0; i < 5; i++ {
		if looksLikeProjectRoot(dir) {
			rootDir = dir
			return nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	rootDir = wd
	return nil
}

func getLogPath() string {
	if filepath.IsAbs(config.LogPath) {
		return config.LogPath
	}
	return filepath.Join(rootDir, config.LogPath)
}

// GetLogger trả về logger theo tên (app, audit, error), tạo lazily lần đầu gọi.
func GetLogger(name string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if config == nil {
		if err := Init(nil); err != nil {
			panic(fmt.Sprintf("Failed to initialize logger: %v", err))
		}
	}

	if lg, ok := loggers[name]; ok {
		return lg
	}
	lg := createLogger(name)
	loggers[name] = lg
	return lg
}

func newFormatter() logrus.Formatter {
	if config.Format == "json" {
		return &logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyFunc:  "function",
				logrus.FieldKeyFile:  "file",
			},
		}
	}
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			parts := strings.Split(f.Function, ".")
			return parts[len(parts)-1], fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
		},
	}
}

func createLogger(name string) *logrus.Logger {
	lg := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	lg.SetLevel(level)
	lg.SetFormatter(newFormatter())
	lg.SetReportCaller(true)

	var writers []io.Writer
	if config.Output == "file" || config.Output == "both" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   getLogFilePath(name),
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		})
	}
	if config.Output == "stdout" || config.Output == "both" {
		writers = append(writers, os.Stdout)
	}

	// FilterHook đứng trước AsyncHook: lọc entry trước khi vào queue
	lg.AddHook(NewFilterHook(config))

	// Toàn bộ writer đi qua async hook để file I/O chậm không chặn request.
	// Output phải là Discard, nếu không entry bị ghi hai lần.
	if len(writers) > 0 {
		lg.AddHook(NewAsyncHookWithWriters(writers, 1000))
		lg.SetOutput(io.Discard)
	}

	lg = lg.WithField("service", name).Logger

	lg.WithFields(logrus.Fields{
		"log_file": getLogFilePath(name),
		"level":    lg.GetLevel().String(),
		"format":   config.Format,
		"output":   config.Output,
	}).Info("Logger initialized successfully")

	return lg
}

func getLogFilePath(name string) string {
	var filename string
	switch name {
	case "app":
		filename = config.AppFile
	case "audit":
		filename = config.AuditFile
	case "error":
		filename = config.ErrorFile
	default:
		filename = fmt.Sprintf("%s.log", name)
	}
	return filepath.Join(getLogPath(), filename)
}

// GetAppLogger trả về logger chính của ứng dụng.
func GetAppLogger() *logrus.Logger {
	return GetLogger("app")
}

// GetAuditLogger trả về logger ghi audit trail.
func GetAuditLogger() *logrus.Logger {
	return GetLogger("audit")
}

// GetErrorLogger trả về logger riêng cho lỗi.
func GetErrorLogger() *logrus.Logger {
	return GetLogger("error")
}
