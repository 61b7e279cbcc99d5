// Package models - Comment thuộc domain Comment (comments).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment lưu bình luận trên một video (comments).
// Video và Owner là bất biến sau khi tạo.
type Comment struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Content string             `json:"content" bson:"content"`
	Video   primitive.ObjectID `json:"video" bson:"video" index:"compound:comment_video_created"`
	Owner   primitive.ObjectID `json:"owner" bson:"owner" index:"single"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single,order:-1;compound:comment_video_created"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
