// Package likedto - DTO cho domain Like.
package likedto

// ToggleResult kết quả toggle like.
type ToggleResult struct {
	IsLiked bool `json:"isLiked"`
}
