// Package models - Video thuộc domain Video (videos).
package models

import (
	basemodels "video_tube/internal/api/base/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video lưu thông tin một video đã publish (videos).
// Owner là bất biến sau khi tạo; views chỉ tăng qua $inc.
type Video struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Title       string              `json:"title" bson:"title"`
	Description string              `json:"description" bson:"description"`
	VideoFile   basemodels.MediaRef `json:"videoFile" bson:"videoFile"`
	Thumbnail   basemodels.MediaRef `json:"thumbnail" bson:"thumbnail"`
	Duration    float64             `json:"duration" bson:"duration"`
	Views       int64               `json:"views" bson:"views"`
	Owner       primitive.ObjectID  `json:"owner" bson:"owner" index:"single;compound:video_owner_published"`
	IsPublished bool                `json:"isPublished" bson:"isPublished" index:"compound:video_owner_published"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single,order:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
