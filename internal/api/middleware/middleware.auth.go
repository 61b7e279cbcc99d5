package middleware

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"video_tube/internal/common"
	"video_tube/internal/global"
	"video_tube/internal/logger"
	"video_tube/internal/utility"
)

// AuthManager quản lý xác thực người dùng.
// Giữ tham chiếu tới collection users và cache token đã verify
// để không phải query DB cho mỗi request.
type AuthManager struct {
	userCollection *mongo.Collection
	Cache          *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		authManagerInstance = &AuthManager{
			userCollection: global.RegistryCollections.MustGet(global.MongoDB_ColNames.Users),
			// Cache với thời gian sống 5 phút và thời gian dọn dẹp 10 phút
			Cache: utility.NewCache(5*time.Minute, 10*time.Minute),
		}
	})
	return authManagerInstance
}

// verifyToken kiểm tra chữ ký JWT và trả về user ID trong claims.
// Token đã verify được cache để các request sau không phải parse lại.
func (am *AuthManager) verifyToken(ctx context.Context, token string) (primitive.ObjectID, error) {
	cacheKey := "auth_token:" + token
	if cached, found := am.Cache.Get(cacheKey); found {
		return cached.(primitive.ObjectID), nil
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return []byte(global.MongoDB_ServerConfig.JwtSecret), nil
	})
	if err != nil {
		if vErr, ok := err.(*jwt.ValidationError); ok && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return primitive.NilObjectID, common.ErrTokenExpired
		}
		return primitive.NilObjectID, common.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}

	idStr, ok := claims["id"].(string)
	if !ok || !primitive.IsValidObjectID(idStr) {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}
	userID := utility.String2ObjectID(idStr)

	// Token hợp lệ nhưng user có thể đã bị xóa
	count, err := am.userCollection.CountDocuments(ctx, bson.M{"_id": userID})
	if err != nil {
		return primitive.NilObjectID, common.ConvertMongoError(err)
	}
	if count == 0 {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}

	am.Cache.Set(cacheKey, userID)
	return userID, nil
}

// extractBearerToken lấy token từ header Authorization dạng "Bearer <token>"
func extractBearerToken(c fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", common.ErrTokenMissing
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", common.ErrTokenInvalid
	}

	return parts[1], nil
}

// RequireAuth middleware xác thực bắt buộc cho Fiber.
// Request không có token hợp lệ sẽ bị từ chối với 401.
// User ID được lưu vào c.Locals("user_id") dạng hex string.
func RequireAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, err := extractBearerToken(c)
		if err != nil {
			// Chỉ log khi thiếu token (lỗi quan trọng)
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("[AUTH] Thiếu hoặc sai định dạng Authorization header")
			HandleErrorResponse(c, err)
			return nil
		}

		userID, err := GetAuthManager().verifyToken(c.Context(), token)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("[AUTH] Token không hợp lệ")
			HandleErrorResponse(c, err)
			return nil
		}

		c.Locals("user_id", userID.Hex())
		return c.Next()
	}
}

// OptionalAuth middleware xác thực tùy chọn.
// Nếu có token hợp lệ thì lưu user_id vào context, không có thì vẫn cho qua
// (khách vãng lai xem được nội dung public, các field isLiked/isSubscribed trả về false).
func OptionalAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, err := extractBearerToken(c)
		if err != nil {
			return c.Next()
		}

		userID, err := GetAuthManager().verifyToken(c.Context(), token)
		if err != nil {
			return c.Next()
		}

		c.Locals("user_id", userID.Hex())
		return c.Next()
	}
}

// GetUserIDFromContext lấy user ID đã xác thực từ context.
// Trả về ErrTokenMissing nếu request chưa xác thực.
func GetUserIDFromContext(c fiber.Ctx) (primitive.ObjectID, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok || userIDStr == "" {
		return primitive.NilObjectID, common.ErrTokenMissing
	}
	if !primitive.IsValidObjectID(userIDStr) {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}
	return utility.String2ObjectID(userIDStr), nil
}

// GetOptionalUserID lấy user ID từ context nếu có, trả về NilObjectID nếu request ẩn danh.
// NilObjectID không match bất kỳ document nào nên các phép $in trong pipeline luôn cho false.
func GetOptionalUserID(c fiber.Ctx) primitive.ObjectID {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		return primitive.NilObjectID
	}
	return userID
}
