package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP status code dùng xuyên suốt tầng service và handler.
const (
	StatusOK        = 200
	StatusCreated   = 201
	StatusAccepted  = 202
	StatusNoContent = 204

	StatusBadRequest       = 400
	StatusUnauthorized     = 401
	StatusForbidden        = 403
	StatusNotFound         = 404
	StatusMethodNotAllowed = 405
	StatusConflict         = 409
	StatusTooManyRequests  = 429

	StatusInternalServerError = 500
	StatusNotImplemented      = 501
	StatusServiceUnavailable  = 503
)

// Message chuẩn trả về cho client.
const (
	MsgSuccess = "Thao tác thành công"
	MsgCreated = "Tạo mới thành công"

	MsgBadRequest      = "Yêu cầu không hợp lệ"
	MsgUnauthorized    = "Vui lòng đăng nhập"
	MsgForbidden       = "Không có quyền truy cập"
	MsgNotFound        = "Không tìm thấy tài nguyên"
	MsgConflict        = "Xung đột dữ liệu"
	MsgTooManyRequests = "Quá nhiều yêu cầu"
	MsgInternalError   = "Lỗi hệ thống"

	MsgTokenMissing = "Thiếu token xác thực"
	MsgTokenInvalid = "Token không hợp lệ"
	MsgTokenExpired = "Token đã hết hạn"

	MsgValidationError = "Dữ liệu không hợp lệ"
	MsgDatabaseError   = "Lỗi tương tác với cơ sở dữ liệu"
	MsgInvalidFormat   = "Định dạng dữ liệu không hợp lệ"
)

// ErrorCode phân cấp mã lỗi: Category (Authentication, Database...) →
// SubCategory (Token, Query...) → mã cụ thể (AUTH_001).
type ErrorCode struct {
	Code        string
	Category    string
	SubCategory string
	Description string
}

func newCode(code, category, subCategory, description string) ErrorCode {
	return ErrorCode{Code: code, Category: category, SubCategory: subCategory, Description: description}
}

var (
	// System (SYS_xxx)
	ErrCodeInternalServer = newCode("SYS_001", "System", "Internal", "Lỗi hệ thống nội bộ")

	// Authentication (AUTH_xxx)
	ErrCodeAuth          = newCode("AUTH", "Authentication", "General", "Lỗi xác thực chung")
	ErrCodeAuthToken     = newCode("AUTH_001", "Authentication", "Token", "Lỗi liên quan đến token")
	ErrCodeAuthOwnership = newCode("AUTH_002", "Authentication", "Ownership", "Lỗi quyền sở hữu tài nguyên")

	// Validation (VAL_xxx)
	ErrCodeValidation       = newCode("VAL", "Validation", "General", "Lỗi xác thực dữ liệu chung")
	ErrCodeValidationInput  = newCode("VAL_001", "Validation", "Input", "Lỗi dữ liệu đầu vào")
	ErrCodeValidationFormat = newCode("VAL_002", "Validation", "Format", "Lỗi định dạng dữ liệu")

	// Database (DB_xxx)
	ErrCodeDatabase           = newCode("DB", "Database", "General", "Lỗi cơ sở dữ liệu chung")
	ErrCodeDatabaseConnection = newCode("DB_001", "Database", "Connection", "Lỗi kết nối cơ sở dữ liệu")
	ErrCodeDatabaseQuery      = newCode("DB_002", "Database", "Query", "Lỗi truy vấn dữ liệu")

	// Business (BIZ_xxx)
	ErrCodeBusiness          = newCode("BIZ", "Business", "General", "Lỗi logic nghiệp vụ chung")
	ErrCodeBusinessState     = newCode("BIZ_001", "Business", "State", "Lỗi trạng thái nghiệp vụ")
	ErrCodeBusinessOperation = newCode("BIZ_002", "Business", "Operation", "Lỗi thao tác nghiệp vụ")
)

// Error mang đủ thông tin để handler dựng response: mã lỗi, message,
// HTTP status và chi tiết bổ sung.
type Error struct {
	Code       ErrorCode
	Message    string
	StatusCode int
	Details    any
}

func (e *Error) Error() string {
	return e.Message
}

// Is cho errors.Is so khớp theo cặp (mã lỗi, message).
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if t, ok := target.(*Error); ok {
		return e.Code.Code == t.Code.Code && e.Message == t.Message
	}
	return false
}

// NewError tạo *Error dưới dạng error.
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{Code: code, Message: message, StatusCode: statusCode, Details: details}
}

// Sentinel errors của toàn hệ thống.
var (
	ErrTokenExpired = NewError(ErrCodeAuthToken, "Phiên đăng nhập đã hết hạn", StatusUnauthorized, nil)
	ErrTokenInvalid = NewError(ErrCodeAuthToken, "Token không hợp lệ", StatusUnauthorized, nil)
	ErrTokenMissing = NewError(ErrCodeAuthToken, "Thiếu token xác thực", StatusUnauthorized, nil)
	// ErrNotOwner: tài nguyên tồn tại nhưng người gọi không phải chủ sở hữu.
	// Phân biệt rõ với ErrNotFound (404) để client xử lý đúng.
	ErrNotOwner     = NewError(ErrCodeAuthOwnership, "Chỉ chủ sở hữu mới được thao tác trên tài nguyên này", StatusForbidden, nil)
	ErrUserNotFound = NewError(ErrCodeAuthOwnership, "Không tìm thấy thông tin người dùng", StatusNotFound, nil)

	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Dữ liệu đầu vào không hợp lệ", StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Định dạng dữ liệu không hợp lệ", StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, "Thiếu thông tin bắt buộc", StatusBadRequest, nil)

	ErrNotFound    = NewError(ErrCodeDatabaseQuery, "Không tìm thấy dữ liệu", StatusNotFound, nil)
	ErrDuplicate   = NewError(ErrCodeDatabaseQuery, "Dữ liệu đã tồn tại", StatusConflict, nil)
	ErrConstraint  = NewError(ErrCodeDatabaseQuery, "Vi phạm ràng buộc dữ liệu", StatusBadRequest, nil)
	ErrConnection  = NewError(ErrCodeDatabaseConnection, "Lỗi kết nối cơ sở dữ liệu", StatusServiceUnavailable, nil)
	ErrTransaction = NewError(ErrCodeDatabaseQuery, "Lỗi giao dịch cơ sở dữ liệu", StatusInternalServerError, nil)

	ErrInvalidState     = NewError(ErrCodeBusinessState, "Trạng thái không hợp lệ", StatusBadRequest, nil)
	ErrInvalidOperation = NewError(ErrCodeBusinessOperation, "Thao tác không hợp lệ", StatusBadRequest, nil)
)

// Lỗi MongoDB đã phân loại.
var (
	ErrMongoConnection = NewError(ErrCodeDatabaseConnection, "Lỗi kết nối MongoDB", StatusServiceUnavailable, nil)
	ErrMongoNetwork    = NewError(ErrCodeDatabaseConnection, "Lỗi mạng khi kết nối MongoDB", StatusServiceUnavailable, nil)
	ErrMongoTimeout    = NewError(ErrCodeDatabaseConnection, "Kết nối MongoDB bị timeout", StatusServiceUnavailable, nil)
	ErrMongoAuth       = NewError(ErrCodeAuth, "Lỗi xác thực MongoDB", StatusUnauthorized, nil)
	ErrMongoQuery      = NewError(ErrCodeDatabaseQuery, "Lỗi truy vấn MongoDB", StatusInternalServerError, nil)
	ErrMongoWrite      = NewError(ErrCodeDatabaseQuery, "Lỗi ghi dữ liệu MongoDB", StatusInternalServerError, nil)
	ErrMongoDuplicate  = NewError(ErrCodeDatabaseQuery, "Dữ liệu trùng lặp trong MongoDB", StatusConflict, nil)
	ErrMongoSystem     = NewError(ErrCodeDatabase, "Lỗi hệ thống MongoDB", StatusInternalServerError, nil)
)

// ConvertMongoError quy mọi lỗi từ driver về sentinel tương ứng.
// Lỗi đã là *Error (kể cả ErrNotFound) đi qua nguyên vẹn.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrNotFound) {
		return err
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	// CommandError phân loại theo dải mã lệnh
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch {
		case cmdErr.Code >= 100 && cmdErr.Code < 200:
			return ErrMongoConnection
		case cmdErr.Code >= 200 && cmdErr.Code < 300:
			return ErrMongoAuth
		case cmdErr.Code >= 300 && cmdErr.Code < 400:
			return ErrMongoQuery
		case cmdErr.Code >= 400 && cmdErr.Code < 500:
			return ErrMongoWrite
		case cmdErr.Code >= 500:
			return ErrMongoSystem
		}
	}

	if mongo.IsDuplicateKeyError(err) {
		return ErrMongoDuplicate
	}
	if mongo.IsNetworkError(err) {
		return ErrMongoNetwork
	}
	if mongo.IsTimeout(err) {
		return ErrMongoTimeout
	}

	return NewError(ErrCodeDatabase, MsgDatabaseError, StatusInternalServerError, err)
}
