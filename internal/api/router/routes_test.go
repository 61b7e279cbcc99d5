// Package router - Test cách gắn middleware vào route.
package router

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

// Middleware của một route không được chặn các route khác cùng prefix:
// POST /videos/ yêu cầu đăng nhập nhưng GET /videos/:id vẫn phải mở
// cho khách vãng lai.
func TestRegisterRouteWithMiddleware_MiddlewareKhongTranPrefix(t *testing.T) {
	app := fiber.New()
	v1 := app.Group("/api/v1")

	reject := func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	ok := func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}

	// Route có auth đăng ký TRƯỚC route công khai, đúng thứ tự trong domain router
	RegisterRouteWithMiddleware(v1, "/videos", "POST", "/", []fiber.Handler{reject}, ok)
	RegisterRouteWithMiddleware(v1, "/videos", "GET", "/:id", nil, ok)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/videos/64f0c0ffee00000000000001", nil))
	if err != nil {
		t.Fatalf("request GET lỗi: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("GET công khai phải trả 200, nhận %d: middleware của POST đã tràn theo prefix", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest("POST", "/api/v1/videos/", nil))
	if err != nil {
		t.Fatalf("request POST lỗi: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("POST có middleware phải trả 401, nhận %d", resp.StatusCode)
	}
}

// Middleware phải nằm trong chain của từng route, không đăng ký thành
// route USE match theo prefix trên mọi method.
func TestRegisterRouteWithMiddleware_KhongSinhRouteUse(t *testing.T) {
	app := fiber.New()
	v1 := app.Group("/api/v1")

	mw := func(c fiber.Ctx) error { return c.Next() }
	handler := func(c fiber.Ctx) error { return nil }

	RegisterRouteWithMiddleware(v1, "/videos", "POST", "/", []fiber.Handler{mw}, handler)

	for _, route := range app.GetRoutes() {
		if route.Method == "USE" {
			t.Errorf("không được có route USE, tìm thấy tại %s", route.Path)
		}
		if route.Method == "POST" && len(route.Handlers) != 2 {
			t.Errorf("route POST phải có chain middleware + handler, nhận %d handler", len(route.Handlers))
		}
	}
}
