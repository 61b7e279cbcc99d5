// Package tweethdl - Handler tweet.
package tweethdl

import (
	basehdl "video_tube/internal/api/base/handler"
	"video_tube/internal/api/middleware"
	tweetdto "video_tube/internal/api/tweet/dto"
	tweetmodels "video_tube/internal/api/tweet/models"
	tweetsvc "video_tube/internal/api/tweet/service"
	"video_tube/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TweetHandler xử lý các request liên quan đến tweet.
type TweetHandler struct {
	*basehdl.BaseHandler[tweetmodels.Tweet]
	TweetService *tweetsvc.TweetService
}

// NewTweetHandler tạo TweetHandler mới.
func NewTweetHandler() *TweetHandler {
	tweetService := tweetsvc.NewTweetService()
	hdl := &TweetHandler{TweetService: tweetService}
	hdl.BaseHandler = basehdl.NewBaseHandler[tweetmodels.Tweet](tweetService.BaseServiceMongoImpl)
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

// HandleCreateTweet xử lý POST /tweets/.
func (h *TweetHandler) HandleCreateTweet(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input tweetdto.TweetCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		tweet, err := h.TweetService.CreateTweet(c.Context(), userID, input.Content)
		h.HandleResponse(c, tweet, err)
		return nil
	})
}

// HandleGetUserTweets xử lý GET /users/:userId/tweets.
func (h *TweetHandler) HandleGetUserTweets(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, err := parseParamID(c, "userId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		callerID := middleware.GetOptionalUserID(c)
		page, limit := h.ParsePagination(c)
		result, err := h.TweetService.GetUserTweets(c.Context(), ownerID, callerID, page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleUpdateTweet xử lý PUT /tweets/:id.
func (h *TweetHandler) HandleUpdateTweet(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		tweetID, err := parseParamID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input tweetdto.TweetUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		tweet, err := h.TweetService.UpdateTweet(c.Context(), tweetID, userID, input.Content)
		h.HandleResponse(c, tweet, err)
		return nil
	})
}

// HandleDeleteTweet xử lý DELETE /tweets/:id.
func (h *TweetHandler) HandleDeleteTweet(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		tweetID, err := parseParamID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		err = h.TweetService.DeleteTweet(c.Context(), tweetID, userID)
		h.HandleResponse(c, nil, err)
		return nil
	})
}
