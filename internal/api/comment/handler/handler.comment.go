// Package commenthdl - Handler bình luận.
package commenthdl

import (
	commentdto "video_tube/internal/api/comment/dto"
	commentmodels "video_tube/internal/api/comment/models"
	commentsvc "video_tube/internal/api/comment/service"
	basehdl "video_tube/internal/api/base/handler"
	"video_tube/internal/api/middleware"
	"video_tube/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentHandler xử lý các request liên quan đến bình luận.
type CommentHandler struct {
	*basehdl.BaseHandler[commentmodels.Comment]
	CommentService *commentsvc.CommentService
}

// NewCommentHandler tạo CommentHandler mới.
func NewCommentHandler() *CommentHandler {
	commentService := commentsvc.NewCommentService()
	hdl := &CommentHandler{CommentService: commentService}
	hdl.BaseHandler = basehdl.NewBaseHandler[commentmodels.Comment](commentService.BaseServiceMongoImpl)
	return hdl
}

// parseObjectID đọc và kiểm tra một param dạng ObjectID.
func parseObjectID(c fiber.Ctx, param string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(param))
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "ID không hợp lệ", common.StatusBadRequest, nil)
	}
	return id, nil
}

// HandleGetVideoComments xử lý GET /videos/:videoId/comments.
func (h *CommentHandler) HandleGetVideoComments(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		videoID, err := parseObjectID(c, "videoId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		callerID := middleware.GetOptionalUserID(c)
		page, limit := h.ParsePagination(c)
		result, err := h.CommentService.GetVideoComments(c.Context(), videoID, callerID, page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleAddComment xử lý POST /videos/:videoId/comments.
func (h *CommentHandler) HandleAddComment(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		videoID, err := parseObjectID(c, "videoId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input commentdto.CommentCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		comment, err := h.CommentService.AddComment(c.Context(), videoID, userID, input.Content)
		h.HandleResponse(c, comment, err)
		return nil
	})
}

// HandleUpdateComment xử lý PUT /comments/:id.
func (h *CommentHandler) HandleUpdateComment(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		commentID, err := parseObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input commentdto.CommentUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		comment, err := h.CommentService.UpdateComment(c.Context(), commentID, userID, input.Content)
		h.HandleResponse(c, comment, err)
		return nil
	})
}

// HandleDeleteComment xử lý DELETE /comments/:id.
func (h *CommentHandler) HandleDeleteComment(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		commentID, err := parseObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		err = h.CommentService.DeleteComment(c.Context(), commentID, userID)
		h.HandleResponse(c, nil, err)
		return nil
	})
}
