// Package models - Tweet thuộc domain Tweet (tweets).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tweet lưu bài đăng ngắn dạng text của một kênh (tweets).
type Tweet struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Content string             `json:"content" bson:"content"`
	Owner   primitive.ObjectID `json:"owner" bson:"owner" index:"compound:tweet_owner_created"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single,order:-1;compound:tweet_owner_created"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
