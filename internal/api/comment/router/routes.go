// Package router đăng ký các route thuộc domain Comment.
package router

import (
	"github.com/gofiber/fiber/v3"

	commenthdl "video_tube/internal/api/comment/handler"
	"video_tube/internal/api/middleware"
	apirouter "video_tube/internal/api/router"
)

// Register đăng ký route bình luận lên v1.
// Route gắn với video nằm dưới /videos/:videoId/comments, thao tác trực tiếp nằm dưới /comments.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	commentHandler := commenthdl.NewCommentHandler()
	r.RegisterCRUDRoutes(v1, "/comments", commentHandler, apirouter.ReadOnlyConfig)

	requireAuth := middleware.RequireAuth()
	optionalAuth := middleware.OptionalAuth()

	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "GET", "/:videoId/comments", []fiber.Handler{optionalAuth}, commentHandler.HandleGetVideoComments)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "POST", "/:videoId/comments", []fiber.Handler{requireAuth}, commentHandler.HandleAddComment)
	apirouter.RegisterRouteWithMiddleware(v1, "/comments", "PUT", "/:id", []fiber.Handler{requireAuth}, commentHandler.HandleUpdateComment)
	apirouter.RegisterRouteWithMiddleware(v1, "/comments", "DELETE", "/:id", []fiber.Handler{requireAuth}, commentHandler.HandleDeleteComment)

	return nil
}
