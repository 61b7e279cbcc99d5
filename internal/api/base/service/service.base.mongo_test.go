// Package basesvc - Test chuẩn hóa dữ liệu partial update.
package basesvc

import (
	"testing"
)

func TestToUpdateData_PassThroughPointer(t *testing.T) {
	src := &UpdateData{Set: map[string]interface{}{"title": "x"}}
	got, err := ToUpdateData(src)
	if err != nil {
		t.Fatalf("ToUpdateData lỗi: %v", err)
	}
	if got != src {
		t.Error("con trỏ UpdateData phải được trả về nguyên vẹn")
	}
}

func TestToUpdateData_ValueBecomesPointer(t *testing.T) {
	src := UpdateData{Unset: map[string]interface{}{"thumbnail": ""}}
	got, err := ToUpdateData(src)
	if err != nil {
		t.Fatalf("ToUpdateData lỗi: %v", err)
	}
	if got == nil || got.Unset == nil {
		t.Fatal("UpdateData value phải được chuyển thành con trỏ giữ nguyên nội dung")
	}
	if _, ok := got.Unset["thumbnail"]; !ok {
		t.Errorf("Unset mất trường thumbnail: %v", got.Unset)
	}
}

func TestToUpdateData_PlainMapWrappedInSet(t *testing.T) {
	got, err := ToUpdateData(map[string]interface{}{"title": "video mới"})
	if err != nil {
		t.Fatalf("ToUpdateData lỗi: %v", err)
	}
	if got.Set == nil {
		t.Fatal("map thường phải được bọc trong $set")
	}
	if got.Set["title"] != "video mới" {
		t.Errorf("$set mất giá trị: %v", got.Set)
	}
	if got.Unset != nil || got.Push != nil || got.Inc != nil {
		t.Errorf("map thường không được sinh thêm operator khác: %+v", got)
	}
}
