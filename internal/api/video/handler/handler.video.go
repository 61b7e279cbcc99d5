// Package videohdl - Handler video.
package videohdl

import (
	basehdl "video_tube/internal/api/base/handler"
	"video_tube/internal/api/middleware"
	videodto "video_tube/internal/api/video/dto"
	videomodels "video_tube/internal/api/video/models"
	videosvc "video_tube/internal/api/video/service"
	"video_tube/internal/common"
	"video_tube/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VideoHandler xử lý các request liên quan đến video.
type VideoHandler struct {
	*basehdl.BaseHandler[videomodels.Video]
	VideoService *videosvc.VideoService
}

// NewVideoHandler tạo VideoHandler mới.
func NewVideoHandler() *VideoHandler {
	videoService := videosvc.NewVideoService()
	hdl := &VideoHandler{VideoService: videoService}
	hdl.BaseHandler = basehdl.NewBaseHandler[videomodels.Video](videoService.BaseServiceMongoImpl)
	return hdl
}

// parseVideoID đọc và kiểm tra param id dạng ObjectID.
func parseVideoID(c fiber.Ctx, param string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(param))
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "ID video không hợp lệ", common.StatusBadRequest, nil)
	}
	return id, nil
}

// HandlePublishVideo xử lý POST /videos/.
func (h *VideoHandler) HandlePublishVideo(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input videodto.VideoCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		video, err := h.VideoService.PublishVideo(c.Context(), &input, userID)
		h.HandleResponse(c, video, err)
		return nil
	})
}

// HandleGetVideoById xử lý GET /videos/:id.
// Người xem ẩn danh vẫn xem được, isLiked/isSubscribed khi đó là false.
func (h *VideoHandler) HandleGetVideoById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		videoID, err := parseVideoID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		callerID := middleware.GetOptionalUserID(c)
		video, err := h.VideoService.GetVideoById(c.Context(), videoID, callerID)
		h.HandleResponse(c, video, err)
		return nil
	})
}

// HandleListVideos xử lý GET /videos/.
func (h *VideoHandler) HandleListVideos(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var query videodto.VideoListQuery
		if err := c.Bind().Query(&query); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Tham số truy vấn không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		if err := h.ValidateInput(&query); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		callerID := middleware.GetOptionalUserID(c)
		result, err := h.VideoService.ListVideos(c.Context(), &query, callerID)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleUpdateVideo xử lý PUT /videos/:id.
func (h *VideoHandler) HandleUpdateVideo(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		videoID, err := parseVideoID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input videodto.VideoUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		video, err := h.VideoService.UpdateVideo(c.Context(), videoID, userID, &input)
		h.HandleResponse(c, video, err)
		return nil
	})
}

// HandleDeleteVideo xử lý DELETE /videos/:id.
func (h *VideoHandler) HandleDeleteVideo(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		videoID, err := parseVideoID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		err = h.VideoService.DeleteVideo(c.Context(), videoID, userID)
		if err == nil {
			logger.LogAction("video_delete", c, map[string]interface{}{
				"resource_id":   videoID.Hex(),
				"resource_type": "video",
			})
		}
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleTogglePublish xử lý PATCH /videos/:id/toggle-publish.
func (h *VideoHandler) HandleTogglePublish(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		videoID, err := parseVideoID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		video, err := h.VideoService.TogglePublishStatus(c.Context(), videoID, userID)
		if err == nil {
			logger.LogAction("video_toggle_publish", c, map[string]interface{}{
				"resource_id":   videoID.Hex(),
				"resource_type": "video",
			})
		}
		h.HandleResponse(c, video, err)
		return nil
	})
}
