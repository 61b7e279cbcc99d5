// Package router đăng ký các route thuộc domain Subscription.
package router

import (
	"github.com/gofiber/fiber/v3"

	"video_tube/internal/api/middleware"
	apirouter "video_tube/internal/api/router"
	subscriptionhdl "video_tube/internal/api/subscription/handler"
)

// Register đăng ký route đăng ký kênh lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	subscriptionHandler := subscriptionhdl.NewSubscriptionHandler()
	r.RegisterCRUDRoutes(v1, "/subscriptions", subscriptionHandler, apirouter.ReadOnlyConfig)

	requireAuth := middleware.RequireAuth()
	optionalAuth := middleware.OptionalAuth()

	apirouter.RegisterRouteWithMiddleware(v1, "/subscriptions", "POST", "/toggle/:channelId", []fiber.Handler{requireAuth}, subscriptionHandler.HandleToggleSubscription)
	apirouter.RegisterRouteWithMiddleware(v1, "/channels", "GET", "/:channelId/subscribers", []fiber.Handler{optionalAuth}, subscriptionHandler.HandleGetChannelSubscribers)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "GET", "/:subscriberId/subscriptions", []fiber.Handler{optionalAuth}, subscriptionHandler.HandleGetSubscribedChannels)

	return nil
}
