// Package router đăng ký các route thuộc domain Playlist.
package router

import (
	"github.com/gofiber/fiber/v3"

	"video_tube/internal/api/middleware"
	playlisthdl "video_tube/internal/api/playlist/handler"
	apirouter "video_tube/internal/api/router"
)

// Register đăng ký route playlist lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	playlistHandler := playlisthdl.NewPlaylistHandler()
	r.RegisterCRUDRoutes(v1, "/playlists", playlistHandler, apirouter.ReadOnlyConfig)

	requireAuth := middleware.RequireAuth()
	optionalAuth := middleware.OptionalAuth()

	apirouter.RegisterRouteWithMiddleware(v1, "/playlists", "POST", "/", []fiber.Handler{requireAuth}, playlistHandler.HandleCreatePlaylist)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlists", "GET", "/:id", []fiber.Handler{optionalAuth}, playlistHandler.HandleGetPlaylistById)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlists", "PUT", "/:id", []fiber.Handler{requireAuth}, playlistHandler.HandleUpdatePlaylist)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlists", "DELETE", "/:id", []fiber.Handler{requireAuth}, playlistHandler.HandleDeletePlaylist)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlists", "PATCH", "/:playlistId/videos/:videoId", []fiber.Handler{requireAuth}, playlistHandler.HandleAddVideo)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlists", "DELETE", "/:playlistId/videos/:videoId", []fiber.Handler{requireAuth}, playlistHandler.HandleRemoveVideo)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "GET", "/:userId/playlists", []fiber.Handler{optionalAuth}, playlistHandler.HandleGetUserPlaylists)

	return nil
}
