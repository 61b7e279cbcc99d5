// Package router đăng ký các route thuộc domain Video.
package router

import (
	"github.com/gofiber/fiber/v3"

	"video_tube/internal/api/middleware"
	apirouter "video_tube/internal/api/router"
	videohdl "video_tube/internal/api/video/handler"
)

// Register đăng ký route video lên v1.
// Các route tĩnh (CRUD chung) phải đăng ký trước các route wildcard /:id.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	videoHandler := videohdl.NewVideoHandler()
	r.RegisterCRUDRoutes(v1, "/videos", videoHandler, apirouter.ReadOnlyConfig)

	requireAuth := middleware.RequireAuth()
	optionalAuth := middleware.OptionalAuth()

	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "GET", "/", []fiber.Handler{optionalAuth}, videoHandler.HandleListVideos)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "POST", "/", []fiber.Handler{requireAuth}, videoHandler.HandlePublishVideo)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "GET", "/:id", []fiber.Handler{optionalAuth}, videoHandler.HandleGetVideoById)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "PUT", "/:id", []fiber.Handler{requireAuth}, videoHandler.HandleUpdateVideo)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "DELETE", "/:id", []fiber.Handler{requireAuth}, videoHandler.HandleDeleteVideo)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "PATCH", "/:id/toggle-publish", []fiber.Handler{requireAuth}, videoHandler.HandleTogglePublish)

	return nil
}
