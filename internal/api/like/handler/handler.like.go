// Package likehdl - Handler lượt thích.
package likehdl

import (
	"context"

	basehdl "video_tube/internal/api/base/handler"
	likedto "video_tube/internal/api/like/dto"
	likemodels "video_tube/internal/api/like/models"
	likesvc "video_tube/internal/api/like/service"
	"video_tube/internal/api/middleware"
	"video_tube/internal/common"
	"video_tube/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LikeHandler xử lý các request liên quan đến lượt thích.
type LikeHandler struct {
	*basehdl.BaseHandler[likemodels.Like]
	LikeService *likesvc.LikeService
}

// NewLikeHandler tạo LikeHandler mới.
func NewLikeHandler() *LikeHandler {
	likeService := likesvc.NewLikeService()
	hdl := &LikeHandler{LikeService: likeService}
	hdl.BaseHandler = basehdl.NewBaseHandler[likemodels.Like](likeService.BaseServiceMongoImpl)
	return hdl
}

// handleToggle dùng chung cho cả ba loại đích; targetType đi vào audit log.
func (h *LikeHandler) handleToggle(c fiber.Ctx, param, targetType string, toggleFn func(ctx context.Context, targetID, actor primitive.ObjectID) (bool, error)) error {
	return h.SafeHandler(c, func() error {
		targetID, err := primitive.ObjectIDFromHex(c.Params(param))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "ID không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		isLiked, err := toggleFn(c.Context(), targetID, userID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogAction("like_toggle", c, map[string]interface{}{
			"resource_id":   targetID.Hex(),
			"resource_type": targetType,
			"is_liked":      isLiked,
		})
		h.HandleResponse(c, likedto.ToggleResult{IsLiked: isLiked}, nil)
		return nil
	})
}

// HandleToggleVideoLike xử lý POST /likes/toggle/video/:videoId.
func (h *LikeHandler) HandleToggleVideoLike(c fiber.Ctx) error {
	return h.handleToggle(c, "videoId", "video", h.LikeService.ToggleVideoLike)
}

// HandleToggleCommentLike xử lý POST /likes/toggle/comment/:commentId.
func (h *LikeHandler) HandleToggleCommentLike(c fiber.Ctx) error {
	return h.handleToggle(c, "commentId", "comment", h.LikeService.ToggleCommentLike)
}

// HandleToggleTweetLike xử lý POST /likes/toggle/tweet/:tweetId.
func (h *LikeHandler) HandleToggleTweetLike(c fiber.Ctx) error {
	return h.handleToggle(c, "tweetId", "tweet", h.LikeService.ToggleTweetLike)
}

// HandleGetLikedVideos xử lý GET /likes/videos.
func (h *LikeHandler) HandleGetLikedVideos(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		videos, err := h.LikeService.GetLikedVideos(c.Context(), userID)
		h.HandleResponse(c, videos, err)
		return nil
	})
}
