// Package models - Like thuộc domain Like (likes).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like lưu một lượt thích (likes).
// Đúng một trong ba trường Video/Comment/Tweet được set.
// Mỗi loại đích có một unique index partial (chỉ index document có field đích)
// chặn double-like ở tầng lưu trữ. Không dùng sparse: index compound sparse vẫn
// index document chỉ cần MỘT key có mặt, mà likedBy thì luôn có mặt — mọi lượt
// thích sẽ rơi vào cả ba index với key đích null và va unique chéo loại.
type Like struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Video   *primitive.ObjectID `json:"video,omitempty" bson:"video,omitempty" index:"compound:like_video_user_unique,partial"`
	Comment *primitive.ObjectID `json:"comment,omitempty" bson:"comment,omitempty" index:"compound:like_comment_user_unique,partial"`
	Tweet   *primitive.ObjectID `json:"tweet,omitempty" bson:"tweet,omitempty" index:"compound:like_tweet_user_unique,partial"`
	LikedBy primitive.ObjectID  `json:"likedBy" bson:"likedBy" index:"compound:like_video_user_unique;compound:like_comment_user_unique;compound:like_tweet_user_unique"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single,order:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
