package registry

import (
	"testing"
)

func TestRegister_EmptyNameRejected(t *testing.T) {
	r := NewRegistry[int]()
	if _, err := r.Register("", 1); err == nil {
		t.Error("tên rỗng phải bị từ chối")
	}
}

func TestRegister_OverwriteReportsNotNew(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("videos", 1)
	if err != nil || !isNew {
		t.Fatalf("lần đăng ký đầu phải là item mới, isNew=%v err=%v", isNew, err)
	}

	isNew, err = r.Register("videos", 2)
	if err != nil {
		t.Fatalf("ghi đè không được lỗi: %v", err)
	}
	if isNew {
		t.Error("ghi đè item cũ phải trả isNew=false")
	}

	got, exists := r.Get("videos")
	if !exists || got != 2 {
		t.Errorf("ghi đè phải giữ giá trị mới, nhận %v", got)
	}
}

func TestMustGet_PanicsWhenMissing(t *testing.T) {
	r := NewRegistry[int]()
	defer func() {
		if recover() == nil {
			t.Error("MustGet với tên chưa đăng ký phải panic")
		}
	}()
	r.MustGet("không tồn tại")
}
