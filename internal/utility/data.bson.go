package utility

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// CustomBson dùng để tạo các bản đồ truy vấn bson tùy chỉnh
// ($set, $push, $addToSet, $pull, $unset) từ struct.
type CustomBson struct{}

// BsonWrapper chứa các toán tử cập nhật bson cơ bản.
// Gán struct dữ liệu vào một trường rồi mã hóa thành bson sẽ cho ra
// bản đồ truy vấn tương ứng, ví dụ { $set : {name : "x"} }.
type BsonWrapper struct {
	// Set thay thế giá trị của một trường bằng giá trị cụ thể
	Set interface{} `json:"$set,omitempty" bson:"$set,omitempty"`

	// Unset xóa một trường cụ thể; nếu trường không tồn tại thì không làm gì cả
	Unset interface{} `json:"$unset,omitempty" bson:"$unset,omitempty"`

	// Push thêm một giá trị vào một mảng (cho phép trùng)
	Push interface{} `json:"$push,omitempty" bson:"$push,omitempty"`

	// AddToSet thêm một giá trị vào một mảng trừ khi giá trị đã có
	AddToSet interface{} `json:"$addToSet,omitempty" bson:"$addToSet,omitempty"`

	// Pull loại bỏ mọi phần tử khớp khỏi một mảng; phần tử không có thì không làm gì cả
	Pull interface{} `json:"$pull,omitempty" bson:"$pull,omitempty"`
}

// ToMap chuyển đổi một struct (hoặc con trỏ struct) thành map[string]interface{}
// thông qua bson marshal/unmarshal, giữ đúng tên field theo tag bson.
func ToMap(s interface{}) (map[string]interface{}, error) {
	var stringInterfaceMap map[string]interface{}
	itr, err := bson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("bson marshal failed: %w", err)
	}
	err = bson.Unmarshal(itr, &stringInterfaceMap)
	if err != nil {
		return nil, fmt.Errorf("bson unmarshal failed: %w", err)
	}
	return stringInterfaceMap, nil
}

// Set tạo truy vấn $set từ struct dữ liệu
func (customBson *CustomBson) Set(data interface{}) (map[string]interface{}, error) {
	s := BsonWrapper{Set: data}
	return ToMap(s)
}

// Push tạo truy vấn $push từ struct dữ liệu
func (customBson *CustomBson) Push(data interface{}) (map[string]interface{}, error) {
	s := BsonWrapper{Push: data}
	return ToMap(s)
}

// Unset tạo truy vấn $unset từ struct dữ liệu
func (customBson *CustomBson) Unset(data interface{}) (map[string]interface{}, error) {
	s := BsonWrapper{Unset: data}
	return ToMap(s)
}

// AddToSet tạo truy vấn $addToSet từ struct dữ liệu
func (customBson *CustomBson) AddToSet(data interface{}) (map[string]interface{}, error) {
	s := BsonWrapper{AddToSet: data}
	return ToMap(s)
}

// Pull tạo truy vấn $pull từ struct dữ liệu
func (customBson *CustomBson) Pull(data interface{}) (map[string]interface{}, error) {
	s := BsonWrapper{Pull: data}
	return ToMap(s)
}
