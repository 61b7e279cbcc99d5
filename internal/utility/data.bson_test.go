package utility

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type toMapFixture struct {
	Title string              `bson:"title"`
	Video *primitive.ObjectID `bson:"video,omitempty"`
	Views int64               `bson:"views"`
}

func TestToMap_UsesBsonTags(t *testing.T) {
	id := primitive.NewObjectID()
	m, err := ToMap(toMapFixture{Title: "demo", Video: &id, Views: 10})
	if err != nil {
		t.Fatalf("ToMap lỗi: %v", err)
	}
	if m["title"] != "demo" {
		t.Errorf("key phải theo tag bson, nhận: %v", m)
	}
	if _, ok := m["Title"]; ok {
		t.Error("không được dùng tên field Go làm key")
	}
	if _, ok := m["video"]; !ok {
		t.Errorf("con trỏ khác nil phải có mặt: %v", m)
	}
}

func TestToMap_OmitemptyDropsNilPointer(t *testing.T) {
	// Hành vi này quyết định unique index partial hoạt động đúng:
	// con trỏ nil không được ghi xuống document, $exists không match.
	m, err := ToMap(toMapFixture{Title: "demo"})
	if err != nil {
		t.Fatalf("ToMap lỗi: %v", err)
	}
	if _, ok := m["video"]; ok {
		t.Errorf("con trỏ nil với omitempty phải bị loại khỏi map: %v", m)
	}
}

func TestCustomBsonAddToSetPull_GiuNguyenField(t *testing.T) {
	cb := &CustomBson{}
	videoID := primitive.NewObjectID()

	m, err := cb.AddToSet(bson.M{"videos": videoID})
	if err != nil {
		t.Fatalf("AddToSet lỗi: %v", err)
	}
	fields, ok := m["$addToSet"].(map[string]interface{})
	if !ok {
		t.Fatalf("kết quả phải bọc trong $addToSet: %v", m)
	}
	if fields["videos"] != videoID {
		t.Errorf("field videos phải giữ nguyên giá trị: %v", fields)
	}

	m, err = cb.Pull(bson.M{"videos": videoID})
	if err != nil {
		t.Fatalf("Pull lỗi: %v", err)
	}
	if _, ok := m["$pull"]; !ok {
		t.Errorf("kết quả phải bọc trong $pull: %v", m)
	}
}

func TestCustomBsonSet_WrapsInSetOperator(t *testing.T) {
	cb := &CustomBson{}
	m, err := cb.Set(toMapFixture{Title: "demo"})
	if err != nil {
		t.Fatalf("Set lỗi: %v", err)
	}
	if _, ok := m["$set"]; !ok {
		t.Errorf("kết quả phải được bọc trong $set: %v", m)
	}
	if _, ok := m["$push"]; ok {
		t.Errorf("không được sinh thêm operator khác: %v", m)
	}
}
