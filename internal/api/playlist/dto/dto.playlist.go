// Package playlistdto - DTO cho domain Playlist.
package playlistdto

// PlaylistCreateInput dữ liệu tạo playlist mới.
type PlaylistCreateInput struct {
	Name        string `json:"name" validate:"required,not_blank,max=100,no_xss"`
	Description string `json:"description" validate:"required,not_blank,max=1000,no_xss"`
}

// PlaylistUpdateInput dữ liệu cập nhật playlist.
type PlaylistUpdateInput struct {
	Name        string `json:"name,omitempty" validate:"omitempty,not_blank,max=100,no_xss"`
	Description string `json:"description,omitempty" validate:"omitempty,not_blank,max=1000,no_xss"`
}
