package router

import (
	"github.com/gofiber/fiber/v3"

	"video_tube/internal/api/middleware"
)

// LƯU Ý VỀ FIBER V3: KHÔNG gắn middleware route bằng group.Use().
// Use đăng ký route match theo PREFIX trên mọi method, nên RequireAuth của
// một route POST sẽ chặn luôn các GET công khai cùng prefix đăng ký sau nó.
// Middleware phải truyền qua tham số variadic của từng method
// (Get(path, handler, middleware...)) — xem RegisterRouteWithMiddleware.

// CRUDHandler định nghĩa interface cho các handler đọc dữ liệu dùng chung.
// Mutation (publish, update, delete, toggle...) không đi qua interface này:
// từng domain tự đăng ký route riêng để service kiểm tra quyền sở hữu.
type CRUDHandler interface {
	Find(c fiber.Ctx) error
	FindOne(c fiber.Ctx) error
	FindOneById(c fiber.Ctx) error
	FindManyByIds(c fiber.Ctx) error
	FindWithPagination(c fiber.Ctx) error
	CountDocuments(c fiber.Ctx) error
	Distinct(c fiber.Ctx) error
	DocumentExists(c fiber.Ctx) error
}

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// CRUDConfig cấu hình các operation đọc được phép cho mỗi collection
type CRUDConfig struct {
	Find     bool // Find All
	FindOne  bool // Find One
	FindById bool // Find By Id
	FindIds  bool // Find Many By Ids
	Paginate bool // Find With Pagination
	Count    bool // Count Documents
	Distinct bool // Distinct
	Exists   bool // Document Exists
}

// ReadOnlyConfig bật toàn bộ operation đọc. Các domain dùng chung config này.
var ReadOnlyConfig = CRUDConfig{
	Find: true, FindOne: true, FindById: true,
	FindIds: true, Paginate: true,
	Count: true, Distinct: true, Exists: true,
}

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterRouteWithMiddleware đăng ký route kèm middleware ở cấp route.
// Middleware chỉ chạy cho đúng method + path này, không tràn sang các route
// khác cùng prefix. Dùng từ domain router.
//
// Ví dụ sử dụng:
//
//	authMiddleware := middleware.RequireAuth()
//	RegisterRouteWithMiddleware(router, "/videos", "GET", "/history", []fiber.Handler{authMiddleware}, handler)
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := router.Group(prefix)

	switch method {
	case "GET":
		routeGroup.Get(path, handler, middlewares...)
	case "POST":
		routeGroup.Post(path, handler, middlewares...)
	case "PUT":
		routeGroup.Put(path, handler, middlewares...)
	case "PATCH":
		routeGroup.Patch(path, handler, middlewares...)
	case "DELETE":
		routeGroup.Delete(path, handler, middlewares...)
	}
}

// RegisterCRUDRoutes đăng ký các route đọc cho một collection. Dùng từ domain router.
// Tất cả dùng OptionalAuth: khách vãng lai vẫn xem được, caller đăng nhập
// được gắn user vào context để pipeline tính isLiked/isSubscribed.
func (r *Router) RegisterCRUDRoutes(router fiber.Router, prefix string, h CRUDHandler, config CRUDConfig) {
	optionalAuth := middleware.OptionalAuth()

	if config.Find {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find", []fiber.Handler{optionalAuth}, h.Find)
	}
	if config.FindOne {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find-one", []fiber.Handler{optionalAuth}, h.FindOne)
	}
	if config.FindById {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find-by-id/:id", []fiber.Handler{optionalAuth}, h.FindOneById)
	}
	if config.FindIds {
		RegisterRouteWithMiddleware(router, prefix, "POST", "/find-by-ids", []fiber.Handler{optionalAuth}, h.FindManyByIds)
	}
	if config.Paginate {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find-with-pagination", []fiber.Handler{optionalAuth}, h.FindWithPagination)
	}
	if config.Count {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/count", []fiber.Handler{optionalAuth}, h.CountDocuments)
	}
	if config.Distinct {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/distinct/:field", []fiber.Handler{optionalAuth}, h.Distinct)
	}
	if config.Exists {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/exists", []fiber.Handler{optionalAuth}, h.DocumentExists)
	}
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng. Caller truyền lần lượt Register của từng domain để tránh import cycle.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
