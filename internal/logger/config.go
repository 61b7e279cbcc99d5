package logger

import (
	"os"
	"strconv"
	"strings"
)

// LogConfig gom toàn bộ cấu hình của hệ thống log.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`   // trace, debug, info, warn, error, fatal
	Format string `env:"LOG_FORMAT" envDefault:"text"`  // json, text
	Output string `env:"LOG_OUTPUT" envDefault:"both"`  // file, stdout, both

	// Rotation (lumberjack)
	MaxSize    int  `env:"LOG_MAX_SIZE" envDefault:"100"`  // MB mỗi file
	MaxBackups int  `env:"LOG_MAX_BACKUPS" envDefault:"7"` // số file cũ giữ lại
	MaxAge     int  `env:"LOG_MAX_AGE" envDefault:"7"`     // số ngày giữ lại
	Compress   bool `env:"LOG_COMPRESS" envDefault:"true"`

	LogPath   string `env:"LOG_PATH" envDefault:"./logs"`
	AppFile   string `env:"LOG_APP_FILE" envDefault:"app.log"`
	AuditFile string `env:"LOG_AUDIT_FILE" envDefault:"audit.log"`
	ErrorFile string `env:"LOG_ERROR_FILE" envDefault:"error.log"`

	// Filter: danh sách cách nhau dấu phẩy, "*" hoặc rỗng = không lọc
	FilterModules   string `env:"LOG_FILTER_MODULES" envDefault:"*"`
	FilterEndpoints string `env:"LOG_FILTER_ENDPOINTS" envDefault:"*"`
	FilterMethods   string `env:"LOG_FILTER_METHODS" envDefault:"*"`
	FilterLogTypes  string `env:"LOG_FILTER_LOG_TYPES" envDefault:"*"`
}

func overrideStr(dst *string, key string, lower bool) {
	if v := os.Getenv(key); v != "" {
		if lower {
			v = strings.ToLower(v)
		}
		*dst = v
	}
}

func overrideInt(dst *int, key string, min int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= min {
			*dst = n
		}
	}
}

func overrideBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// DefaultConfig dựng cấu hình theo GO_ENV rồi cho environment variables ghi đè.
// Development log debug dạng text; các môi trường khác log info dạng json.
func DefaultConfig() *LogConfig {
	cfg := &LogConfig{
		Level:           "info",
		Format:          "text",
		Output:          "both",
		MaxSize:         100,
		MaxBackups:      7,
		MaxAge:          7,
		Compress:        true,
		LogPath:         "./logs",
		AppFile:         "app.log",
		AuditFile:       "audit.log",
		ErrorFile:       "error.log",
		FilterModules:   "*",
		FilterEndpoints: "*",
		FilterMethods:   "*",
		FilterLogTypes:  "*",
	}

	env := os.Getenv("GO_ENV")
	if env == "" || env == "development" {
		cfg.Level = "debug"
	} else {
		cfg.Format = "json"
	}

	overrideStr(&cfg.Level, "LOG_LEVEL", true)
	overrideStr(&cfg.Format, "LOG_FORMAT", true)
	overrideStr(&cfg.Output, "LOG_OUTPUT", true)

	overrideInt(&cfg.MaxSize, "LOG_MAX_SIZE", 1)
	overrideInt(&cfg.MaxBackups, "LOG_MAX_BACKUPS", 0)
	overrideInt(&cfg.MaxAge, "LOG_MAX_AGE", 1)
	overrideBool(&cfg.Compress, "LOG_COMPRESS")

	overrideStr(&cfg.LogPath, "LOG_PATH", false)
	overrideStr(&cfg.AppFile, "LOG_APP_FILE", false)
	overrideStr(&cfg.AuditFile, "LOG_AUDIT_FILE", false)
	overrideStr(&cfg.ErrorFile, "LOG_ERROR_FILE", false)

	overrideStr(&cfg.FilterModules, "LOG_FILTER_MODULES", false)
	overrideStr(&cfg.FilterEndpoints, "LOG_FILTER_ENDPOINTS", false)
	overrideStr(&cfg.FilterMethods, "LOG_FILTER_METHODS", false)
	overrideStr(&cfg.FilterLogTypes, "LOG_FILTER_LOG_TYPES", false)

	return cfg
}
