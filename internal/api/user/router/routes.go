// Package router đăng ký các route thuộc domain User.
package router

import (
	"github.com/gofiber/fiber/v3"

	"video_tube/internal/api/middleware"
	apirouter "video_tube/internal/api/router"
	userhdl "video_tube/internal/api/user/handler"
)

// Register đăng ký route người dùng lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	userHandler := userhdl.NewUserHandler()
	r.RegisterCRUDRoutes(v1, "/users", userHandler, apirouter.ReadOnlyConfig)

	requireAuth := middleware.RequireAuth()
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "GET", "/watch-history", []fiber.Handler{requireAuth}, userHandler.HandleGetWatchHistory)

	return nil
}
