// Package subscriptionhdl - Handler đăng ký kênh.
package subscriptionhdl

import (
	basehdl "video_tube/internal/api/base/handler"
	"video_tube/internal/api/middleware"
	subdto "video_tube/internal/api/subscription/dto"
	submodels "video_tube/internal/api/subscription/models"
	subscriptionsvc "video_tube/internal/api/subscription/service"
	"video_tube/internal/common"
	"video_tube/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubscriptionHandler xử lý các request liên quan đến đăng ký kênh.
type SubscriptionHandler struct {
	*basehdl.BaseHandler[submodels.Subscription]
	SubscriptionService *subscriptionsvc.SubscriptionService
}

// NewSubscriptionHandler tạo SubscriptionHandler mới.
func NewSubscriptionHandler() *SubscriptionHandler {
	subscriptionService := subscriptionsvc.NewSubscriptionService()
	hdl := &SubscriptionHandler{SubscriptionService: subscriptionService}
	hdl.BaseHandler = basehdl.NewBaseHandler[submodels.Subscription](subscriptionService.BaseServiceMongoImpl)
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

// HandleToggleSubscription xử lý POST /subscriptions/toggle/:channelId.
func (h *SubscriptionHandler) HandleToggleSubscription(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		channelID, err := parseParamID(c, "channelId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		subscribed, err := h.SubscriptionService.ToggleSubscription(c.Context(), channelID, userID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogAction("subscription_toggle", c, map[string]interface{}{
			"resource_id":   channelID.Hex(),
			"resource_type": "channel",
			"subscribed":    subscribed,
		})
		h.HandleResponse(c, subdto.ToggleResult{Subscribed: subscribed}, nil)
		return nil
	})
}

// HandleGetChannelSubscribers xử lý GET /channels/:channelId/subscribers.
func (h *SubscriptionHandler) HandleGetChannelSubscribers(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		channelID, err := parseParamID(c, "channelId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		subscribers, err := h.SubscriptionService.GetChannelSubscribers(c.Context(), channelID)
		h.HandleResponse(c, subscribers, err)
		return nil
	})
}

// HandleGetSubscribedChannels xử lý GET /users/:subscriberId/subscriptions.
func (h *SubscriptionHandler) HandleGetSubscribedChannels(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		subscriberID, err := parseParamID(c, "subscriberId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		channels, err := h.SubscriptionService.GetSubscribedChannels(c.Context(), subscriberID)
		h.HandleResponse(c, channels, err)
		return nil
	})
}
