// Package userhdl - Handler người dùng.
package userhdl

import (
	basehdl "video_tube/internal/api/base/handler"
	"video_tube/internal/api/middleware"
	usermodels "video_tube/internal/api/user/models"
	usersvc "video_tube/internal/api/user/service"

	"github.com/gofiber/fiber/v3"
)

// UserHandler xử lý các request liên quan đến người dùng / kênh.
type UserHandler struct {
	*basehdl.BaseHandler[usermodels.User]
	UserService *usersvc.UserService
}

// NewUserHandler tạo UserHandler mới.
func NewUserHandler() *UserHandler {
	userService := usersvc.NewUserService()
	hdl := &UserHandler{UserService: userService}
	hdl.BaseHandler = basehdl.NewBaseHandler[usermodels.User](userService.BaseServiceMongoImpl)
	return hdl
}

// HandleGetWatchHistory xử lý GET /users/watch-history.
// Trả về danh sách video trong lịch sử xem của người gọi.
func (h *UserHandler) HandleGetWatchHistory(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		history, err := h.UserService.GetWatchHistory(c.Context(), userID)
		h.HandleResponse(c, history, err)
		return nil
	})
}
