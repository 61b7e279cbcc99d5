// Package router đăng ký các route thuộc domain Like.
package router

import (
	"github.com/gofiber/fiber/v3"

	likehdl "video_tube/internal/api/like/handler"
	"video_tube/internal/api/middleware"
	apirouter "video_tube/internal/api/router"
)

// Register đăng ký route lượt thích lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	likeHandler := likehdl.NewLikeHandler()
	r.RegisterCRUDRoutes(v1, "/likes", likeHandler, apirouter.ReadOnlyConfig)

	requireAuth := middleware.RequireAuth()

	apirouter.RegisterRouteWithMiddleware(v1, "/likes", "POST", "/toggle/video/:videoId", []fiber.Handler{requireAuth}, likeHandler.HandleToggleVideoLike)
	apirouter.RegisterRouteWithMiddleware(v1, "/likes", "POST", "/toggle/comment/:commentId", []fiber.Handler{requireAuth}, likeHandler.HandleToggleCommentLike)
	apirouter.RegisterRouteWithMiddleware(v1, "/likes", "POST", "/toggle/tweet/:tweetId", []fiber.Handler{requireAuth}, likeHandler.HandleToggleTweetLike)
	apirouter.RegisterRouteWithMiddleware(v1, "/likes", "GET", "/videos", []fiber.Handler{requireAuth}, likeHandler.HandleGetLikedVideos)

	return nil
}
