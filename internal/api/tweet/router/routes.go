// Package router đăng ký các route thuộc domain Tweet.
package router

import (
	"github.com/gofiber/fiber/v3"

	"video_tube/internal/api/middleware"
	apirouter "video_tube/internal/api/router"
	tweethdl "video_tube/internal/api/tweet/handler"
)

// Register đăng ký route tweet lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	tweetHandler := tweethdl.NewTweetHandler()
	r.RegisterCRUDRoutes(v1, "/tweets", tweetHandler, apirouter.ReadOnlyConfig)

	requireAuth := middleware.RequireAuth()
	optionalAuth := middleware.OptionalAuth()

	apirouter.RegisterRouteWithMiddleware(v1, "/tweets", "POST", "/", []fiber.Handler{requireAuth}, tweetHandler.HandleCreateTweet)
	apirouter.RegisterRouteWithMiddleware(v1, "/tweets", "PUT", "/:id", []fiber.Handler{requireAuth}, tweetHandler.HandleUpdateTweet)
	apirouter.RegisterRouteWithMiddleware(v1, "/tweets", "DELETE", "/:id", []fiber.Handler{requireAuth}, tweetHandler.HandleDeleteTweet)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "GET", "/:userId/tweets", []fiber.Handler{optionalAuth}, tweetHandler.HandleGetUserTweets)

	return nil
}
