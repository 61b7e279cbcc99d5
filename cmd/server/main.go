package main

import (
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v3"

	"video_tube/internal/global"
	"video_tube/internal/logger"
)

// initLogger dựng hệ thống log trước mọi thứ khác; cấu hình đọc từ
// environment variables, lỗi ở đây thì không chạy tiếp được.
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// resolveFromProjectRoot đổi đường dẫn tương đối thành tuyệt đối tính từ
// gốc dự án (thư mục chứa config/env), để chạy được từ bất kỳ working directory nào.
func resolveFromProjectRoot(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	dir, err := os.Getwd()
	if err != nil {
		return path
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "config", "env")); err == nil {
			return filepath.Join(dir, path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return path
		}
		dir = parent
	}
}

// serveTLS chạy server HTTPS với cert/key từ config.
func serveTLS(app *fiber.App, address string) {
	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig

	certPath := resolveFromProjectRoot(cfg.TLSCertFile)
	keyPath := resolveFromProjectRoot(cfg.TLSKeyFile)

	if _, err := os.Stat(certPath); os.IsNotExist(err) {
		log.Fatalf("TLS certificate file not found: %s (resolved from: %s)", certPath, cfg.TLSCertFile)
	}
	if _, err := os.Stat(keyPath); os.IsNotExist(err) {
		log.Fatalf("TLS key file not found: %s (resolved from: %s)", keyPath, cfg.TLSKeyFile)
	}

	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		log.Fatalf("Error loading TLS certificate: %v", err)
	}

	ln, err := net.Listen("tcp", address)
	if err != nil {
		log.Fatalf("Error creating listener: %v", err)
	}
	tlsListener := tls.NewListener(ln, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	})

	log.WithFields(map[string]interface{}{
		"address": address,
		"cert":    certPath,
		"key":     keyPath,
	}).Info("Starting server with HTTPS/TLS")

	if err := app.Listener(tlsListener); err != nil {
		log.Fatalf("Error in Fiber Listener with TLS: %v", err)
	}
}

// main_thread dựng Fiber app và block phục vụ request.
func main_thread() {
	log := logger.GetAppLogger()

	app, err := InitFiberApp()
	if err != nil {
		log.Fatalf("Error setting up routes: %v", err)
	}

	cfg := global.MongoDB_ServerConfig
	log.Info("Starting Fiber server...")

	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		serveTLS(app, cfg.Address)
		return
	}

	log.WithFields(map[string]interface{}{
		"address":  cfg.Address,
		"protocol": "HTTP",
	}).Info("Starting server with HTTP")

	if err := app.Listen(cfg.Address, fiber.ListenConfig{}); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

func main() {
	initLogger()

	// Config, kết nối MongoDB, validator
	InitGlobal()

	// Đăng ký collection vào registry dùng chung
	InitRegistry()

	main_thread()
}
