// Package playlisthdl - Handler playlist.
package playlisthdl

import (
	basehdl "video_tube/internal/api/base/handler"
	"video_tube/internal/api/middleware"
	playlistdto "video_tube/internal/api/playlist/dto"
	playlistmodels "video_tube/internal/api/playlist/models"
	playlistsvc "video_tube/internal/api/playlist/service"
	"video_tube/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlaylistHandler xử lý các request liên quan đến playlist.
type PlaylistHandler struct {
	*basehdl.BaseHandler[playlistmodels.Playlist]
	PlaylistService *playlistsvc.PlaylistService
}

// NewPlaylistHandler tạo PlaylistHandler mới.
func NewPlaylistHandler() *PlaylistHandler {
	playlistService := playlistsvc.NewPlaylistService()
	hdl := &PlaylistHandler{PlaylistService: playlistService}
	hdl.BaseHandler = basehdl.NewBaseHandler[playlistmodels.Playlist](playlistService.BaseServiceMongoImpl)
	return hdl
}

// parseParamID đọc và kiểm tra một param dạng ObjectID.
func parseParamID(c fiber.Ctx, param string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(param))
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "ID không hợp lệ", common.StatusBadRequest, nil)
	}
	return id, nil
}

// HandleCreatePlaylist xử lý POST /playlists/.
func (h *PlaylistHandler) HandleCreatePlaylist(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input playlistdto.PlaylistCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		playlist, err := h.PlaylistService.CreatePlaylist(c.Context(), &input, userID)
		h.HandleResponse(c, playlist, err)
		return nil
	})
}

// HandleGetPlaylistById xử lý GET /playlists/:id.
func (h *PlaylistHandler) HandleGetPlaylistById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		playlistID, err := parseParamID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		playlist, err := h.PlaylistService.GetPlaylistById(c.Context(), playlistID)
		h.HandleResponse(c, playlist, err)
		return nil
	})
}

// HandleGetUserPlaylists xử lý GET /users/:userId/playlists.
func (h *PlaylistHandler) HandleGetUserPlaylists(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, err := parseParamID(c, "userId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		playlists, err := h.PlaylistService.GetUserPlaylists(c.Context(), ownerID)
		h.HandleResponse(c, playlists, err)
		return nil
	})
}

// HandleUpdatePlaylist xử lý PUT /playlists/:id.
func (h *PlaylistHandler) HandleUpdatePlaylist(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		playlistID, err := parseParamID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input playlistdto.PlaylistUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		playlist, err := h.PlaylistService.UpdatePlaylist(c.Context(), playlistID, userID, &input)
		h.HandleResponse(c, playlist, err)
		return nil
	})
}

// HandleDeletePlaylist xử lý DELETE /playlists/:id.
func (h *PlaylistHandler) HandleDeletePlaylist(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		playlistID, err := parseParamID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		err = h.PlaylistService.DeletePlaylist(c.Context(), playlistID, userID)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// handleVideoMembership dùng chung cho thêm/gỡ video khỏi playlist.
func (h *PlaylistHandler) handleVideoMembership(c fiber.Ctx, add bool) error {
	return h.SafeHandler(c, func() error {
		playlistID, err := parseParamID(c, "playlistId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		videoID, err := parseParamID(c, "videoId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var playlist *playlistmodels.Playlist
		if add {
			playlist, err = h.PlaylistService.AddVideo(c.Context(), playlistID, videoID, userID)
		} else {
			playlist, err = h.PlaylistService.RemoveVideo(c.Context(), playlistID, videoID, userID)
		}
		h.HandleResponse(c, playlist, err)
		return nil
	})
}

// HandleAddVideo xử lý PATCH /playlists/:playlistId/videos/:videoId.
func (h *PlaylistHandler) HandleAddVideo(c fiber.Ctx) error {
	return h.handleVideoMembership(c, true)
}

// HandleRemoveVideo xử lý DELETE /playlists/:playlistId/videos/:videoId.
func (h *PlaylistHandler) HandleRemoveVideo(c fiber.Ctx) error {
	return h.handleVideoMembership(c, false)
}
