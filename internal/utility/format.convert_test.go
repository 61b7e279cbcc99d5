package utility

import (
	"encoding/json"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestP2Int64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
	}{
		{"json.Number", json.Number("42"), 42},
		{"chuỗi số", "123", 123},
		{"chuỗi không phải số", "abc", 0},
		{"int", 7, 7},
		{"int64", int64(-5), -5},
		{"float64 bị cắt phần lẻ", 3.9, 3},
		{"nil", nil, 0},
		{"kiểu không hỗ trợ", []int{1}, 0},
	}
	for _, c := range cases {
		if got := P2Int64(c.input); got != c.want {
			t.Errorf("%s: P2Int64(%v) = %d, muốn %d", c.name, c.input, got, c.want)
		}
	}
}

func TestString2ObjectID(t *testing.T) {
	id := primitive.NewObjectID()
	if got := String2ObjectID(id.Hex()); got != id {
		t.Errorf("hex hợp lệ phải ra đúng ObjectID, nhận %v", got)
	}
	if got := String2ObjectID("không phải hex"); got != primitive.NilObjectID {
		t.Errorf("chuỗi không hợp lệ phải trả NilObjectID, nhận %v", got)
	}
	if got := String2ObjectID(""); got != primitive.NilObjectID {
		t.Errorf("chuỗi rỗng phải trả NilObjectID, nhận %v", got)
	}
}
