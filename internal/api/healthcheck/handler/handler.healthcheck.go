// Package healthcheckhdl - Handler kiểm tra sức khỏe hệ thống.
package healthcheckhdl

import (
	"context"
	"time"

	basehdl "video_tube/internal/api/base/handler"
	"video_tube/internal/common"
	"video_tube/internal/global"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthCheckHandler trả lời endpoint healthcheck.
type HealthCheckHandler struct{}

// NewHealthCheckHandler tạo HealthCheckHandler mới.
func NewHealthCheckHandler() *HealthCheckHandler {
	return &HealthCheckHandler{}
}

// HandleHealthCheck xử lý GET /healthcheck/.
// Ping MongoDB với timeout ngắn; DB không trả lời → 503.
func (h *HealthCheckHandler) HandleHealthCheck(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	if err := global.MongoDB_Session.Ping(ctx, readpref.Primary()); err != nil {
		return basehdl.JSONResponse(c, common.StatusServiceUnavailable, fiber.Map{
			"code":    common.ErrCodeDatabaseConnection.Code,
			"message": "Không kết nối được cơ sở dữ liệu",
			"status":  "error",
		})
	}

	return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": "Everything is O.K",
		"data":    fiber.Map{"uptime": time.Since(startTime).String()},
		"status":  "success",
	})
}

var startTime = time.Now()
