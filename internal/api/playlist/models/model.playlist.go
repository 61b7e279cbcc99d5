// Package models - Playlist thuộc domain Playlist (playlists).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Playlist lưu danh sách phát của một người dùng (playlists).
// Videos có ngữ nghĩa tập hợp: thêm bằng $addToSet, gỡ bằng $pull.
type Playlist struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Name        string               `json:"name" bson:"name"`
	Description string               `json:"description" bson:"description"`
	Videos      []primitive.ObjectID `json:"videos" bson:"videos"`
	Owner       primitive.ObjectID   `json:"owner" bson:"owner" index:"single"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single,order:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
