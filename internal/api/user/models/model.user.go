// Package models - User thuộc domain User (users).
// Người dùng đồng thời là kênh (channel): subscription và video đều trỏ về _id này.
package models

import (
	basemodels "video_tube/internal/api/base/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User lưu thông tin người dùng / kênh (users).
type User struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Username     string               `json:"username" bson:"username" index:"unique"`
	FullName     string               `json:"fullName" bson:"fullName"`
	Avatar       basemodels.MediaRef  `json:"avatar,omitempty" bson:"avatar,omitempty"`
	CoverImage   basemodels.MediaRef  `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	WatchHistory []primitive.ObjectID `json:"watchHistory,omitempty" bson:"watchHistory,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single,order:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
