package common

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestConvertMongoError_NilStaysNil(t *testing.T) {
	if err := ConvertMongoError(nil); err != nil {
		t.Errorf("nil phải giữ nguyên nil, nhận: %v", err)
	}
}

func TestConvertMongoError_AppErrorPassThrough(t *testing.T) {
	if got := ConvertMongoError(ErrNotFound); !errors.Is(got, ErrNotFound) {
		t.Errorf("ErrNotFound phải đi qua nguyên vẹn, nhận: %v", got)
	}
	if got := ConvertMongoError(ErrNotOwner); !errors.Is(got, ErrNotOwner) {
		t.Errorf("lỗi hệ thống đã phân loại phải đi qua nguyên vẹn, nhận: %v", got)
	}
}

func TestConvertMongoError_DuplicateKey(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}},
	}
	got := ConvertMongoError(dup)
	if !errors.Is(got, ErrMongoDuplicate) {
		t.Errorf("lỗi duplicate key phải thành ErrMongoDuplicate, nhận: %v", got)
	}
}

func TestConvertMongoError_UnknownWrapped(t *testing.T) {
	src := fmt.Errorf("lỗi lạ")
	got := ConvertMongoError(src)

	var appErr *Error
	if !errors.As(got, &appErr) {
		t.Fatalf("lỗi không phân loại được phải bọc thành *Error, nhận: %T", got)
	}
	if appErr.StatusCode != StatusInternalServerError {
		t.Errorf("status mặc định phải là 500, nhận: %d", appErr.StatusCode)
	}
}

func TestErrorIs_MatchesByCodeAndMessage(t *testing.T) {
	clone := NewError(ErrCodeDatabaseQuery, "Không tìm thấy dữ liệu", StatusNotFound, nil)
	if !errors.Is(clone, ErrNotFound) {
		t.Error("hai lỗi cùng mã và message phải Is bằng nhau")
	}
	if errors.Is(ErrNotFound, ErrDuplicate) {
		t.Error("lỗi khác message không được Is bằng nhau")
	}
}

func TestSentinelStatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrNotFound, StatusNotFound},
		{ErrNotOwner, StatusForbidden},
		{ErrDuplicate, StatusConflict},
		{ErrUserNotFound, StatusNotFound},
		{ErrTokenMissing, StatusUnauthorized},
		{ErrRequiredField, StatusBadRequest},
	}
	for _, c := range cases {
		var appErr *Error
		if !errors.As(c.err, &appErr) {
			t.Fatalf("sentinel phải là *Error: %v", c.err)
		}
		if appErr.StatusCode != c.want {
			t.Errorf("%q: status %d, muốn %d", appErr.Message, appErr.StatusCode, c.want)
		}
	}
}
