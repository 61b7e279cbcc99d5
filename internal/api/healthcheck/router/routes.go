// Package router đăng ký route healthcheck.
package router

import (
	"github.com/gofiber/fiber/v3"

	healthcheckhdl "video_tube/internal/api/healthcheck/handler"
	apirouter "video_tube/internal/api/router"
)

// Register đăng ký route healthcheck lên v1, không qua auth.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	healthHandler := healthcheckhdl.NewHealthCheckHandler()
	apirouter.RegisterRouteWithMiddleware(v1, "/healthcheck", "GET", "/", nil, healthHandler.HandleHealthCheck)
	return nil
}
