// Package videodto - DTO cho domain Video.
package videodto

// MediaRefInput tham chiếu media gửi lên từ client (URL + publicId từ tầng upload).
type MediaRefInput struct {
	URL      string `json:"url" validate:"required,url"`
	PublicID string `json:"publicId,omitempty"`
}

// VideoCreateInput dữ liệu publish video mới.
// File đã được upload ở tầng ngoài, backend chỉ nhận tham chiếu.
type VideoCreateInput struct {
	Title       string         `json:"title" validate:"required,not_blank,max=200,no_xss"`
	Description string         `json:"description" validate:"required,not_blank,max=5000,no_xss"`
	VideoFile   *MediaRefInput `json:"videoFile" validate:"required"`
	Thumbnail   *MediaRefInput `json:"thumbnail" validate:"required"`
	Duration    float64        `json:"duration" validate:"omitempty,min=0"`
}

// VideoUpdateInput dữ liệu cập nhật video (chỉ chủ sở hữu).
type VideoUpdateInput struct {
	Title       string         `json:"title,omitempty" validate:"omitempty,not_blank,max=200,no_xss"`
	Description string         `json:"description,omitempty" validate:"omitempty,not_blank,max=5000,no_xss"`
	Thumbnail   *MediaRefInput `json:"thumbnail,omitempty"`
}

// VideoListQuery tham số truy vấn danh sách video.
type VideoListQuery struct {
	Page     int64  `query:"page" validate:"omitempty,min=1"`
	Limit    int64  `query:"limit" validate:"omitempty,min=1,max=100"`
	Query    string `query:"query" validate:"omitempty,max=200"`
	SortBy   string `query:"sortBy" validate:"omitempty,oneof=createdAt views duration title"`
	SortType string `query:"sortType" validate:"omitempty,oneof=asc desc"`
	UserID   string `query:"userId" validate:"omitempty,len=24,hexadecimal"`
}
