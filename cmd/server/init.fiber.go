package main

import (
	"fmt"
	"strings"
	"time"

	"video_tube/internal/common"
	"video_tube/internal/global"
	"video_tube/internal/logger"

	apirouter "video_tube/internal/api/router"

	commentrouter "video_tube/internal/api/comment/router"
	healthcheckrouter "video_tube/internal/api/healthcheck/router"
	likerouter "video_tube/internal/api/like/router"
	playlistrouter "video_tube/internal/api/playlist/router"
	subscriptionrouter "video_tube/internal/api/subscription/router"
	tweetrouter "video_tube/internal/api/tweet/router"
	userrouter "video_tube/internal/api/user/router"
	videorouter "video_tube/internal/api/video/router"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

// healthcheckPrefix được miễn rate limit và recover middleware.
const healthcheckPrefix = "/api/v1/healthcheck"

// isTLSHandshakeError nhận diện client gửi HTTPS vào server HTTP:
// TLS ClientHello mở đầu bằng 0x16 0x03 0x01 và fasthttp báo lỗi parse method.
func isTLSHandshakeError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "unsupported http request method") &&
		(strings.Contains(msg, "\\x16\\x03\\x01") ||
			strings.Contains(msg, "\x16\x03\x01") ||
			strings.Contains(msg, "error when reading request headers"))
}

// fiberErrorHandler dựng response lỗi thống nhất {code, message, status}
// cho các lỗi thoát ra khỏi handler (404 route, body quá lớn, lỗi parse...).
func fiberErrorHandler(c fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal Server Error"
	errorCode := common.ErrCodeInternalServer.Code

	if e, ok := err.(*fiber.Error); ok {
		status = e.Code
		message = e.Message
		switch status {
		case fiber.StatusBadRequest:
			errorCode = common.ErrCodeValidationInput.Code
		case fiber.StatusUnauthorized:
			errorCode = common.ErrCodeAuthToken.Code
		case fiber.StatusForbidden:
			errorCode = common.ErrCodeAuthOwnership.Code
		case fiber.StatusNotFound, fiber.StatusConflict:
			errorCode = common.ErrCodeDatabaseQuery.Code
		}
	}

	// HTTPS vào server HTTP xảy ra thường xuyên khi dev quên đổi URL;
	// không log, chỉ hướng dẫn client
	if isTLSHandshakeError(err) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    common.ErrCodeValidationInput.Code,
			"message": "Server chỉ hỗ trợ HTTP. Vui lòng sử dụng http:// thay vì https://",
			"status":  "error",
			"details": fiber.Map{
				"protocol":   "HTTP only",
				"suggestion": "Sử dụng URL: http://localhost" + global.MongoDB_ServerConfig.Address,
			},
		})
	}

	logger.WithRequest(c).WithFields(map[string]interface{}{
		"code":      status,
		"errorCode": errorCode,
		"message":   message,
	}).Error("Request error")

	return c.Status(status).JSON(fiber.Map{
		"code":    errorCode,
		"message": message,
		"status":  "error",
	})
}

// corsAllowOrigins tách danh sách origin từ config. "*" giữ nguyên (dev mode).
func corsAllowOrigins() []string {
	raw := global.MongoDB_ServerConfig.CORS_Origins
	if raw == "*" {
		return []string{"*"}
	}
	origins := strings.Split(raw, ",")
	for i, o := range origins {
		origins[i] = strings.TrimSpace(o)
	}
	return origins
}

// useRateLimiter gắn limiter theo IP nếu config bật. Healthcheck và
// preflight OPTIONS không bị giới hạn.
func useRateLimiter(app *fiber.App) {
	cfg := global.MongoDB_ServerConfig
	if !cfg.RateLimit_Enabled || cfg.RateLimit_Max <= 0 {
		logger.GetAppLogger().Info("Rate limiting disabled")
		return
	}

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit_Max,
		Expiration: time.Duration(cfg.RateLimit_Window) * time.Second,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":    common.ErrCodeBusinessOperation.Code,
				"message": "Quá nhiều yêu cầu, vui lòng thử lại sau",
				"status":  "error",
			})
		},
		Next: func(c fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), healthcheckPrefix) || c.Method() == "OPTIONS"
		},
	}))
	logger.GetAppLogger().Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
}

// InitFiberApp dựng Fiber app: cấu hình server, middleware stack và routes.
func InitFiberApp() (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:       "VideoTube API",
		ServerHeader:  "VideoTube API",
		StrictRouting: true, // /foo và /foo/ là hai route khác nhau
		CaseSensitive: true,
		UnescapePath:  true,

		BodyLimit:       10 * 1024 * 1024,
		Concurrency:     256 * 1024,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,

		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,

		ErrorHandler: fiberErrorHandler,
	})

	// Request ID: gắn ID duy nhất cho mỗi request để trace qua log
	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return fmt.Sprintf("%d", time.Now().UnixNano())
		},
	}))

	// CORS đặt sớm để preflight không lọt vào các middleware phía sau
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsAllowOrigins(),
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Request-ID",
			"X-Requested-With",
		},
		AllowCredentials: global.MongoDB_ServerConfig.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "Content-Range", "X-Request-ID"},
		MaxAge:           24 * 60 * 60,
	}))

	// Security headers
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	useRateLimiter(app)

	// Recover: panic trong handler thành response 500, kèm log stack trace
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithFields(map[string]interface{}{
				"panic":   e,
				"headers": c.GetReqHeaders(),
				"body":    string(c.Body()),
			}).Error("Panic recovered")

			c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"code":    fiber.StatusInternalServerError,
				"message": "Internal Server Error",
				"error":   fmt.Sprintf("%v", e),
				"time":    time.Now().Format(time.RFC3339),
			})
		},
		Next: func(c fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), healthcheckPrefix)
		},
	}))

	// Đăng ký route của từng domain qua Register của domain đó
	err := apirouter.SetupRoutes(app,
		healthcheckrouter.Register,
		userrouter.Register,
		videorouter.Register,
		commentrouter.Register,
		likerouter.Register,
		tweetrouter.Register,
		playlistrouter.Register,
		subscriptionrouter.Register,
	)
	if err != nil {
		return nil, err
	}

	return app, nil
}
