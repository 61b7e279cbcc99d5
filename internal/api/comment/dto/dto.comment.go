// Package commentdto - DTO cho domain Comment.
package commentdto

// CommentCreateInput dữ liệu thêm bình luận vào video.
type CommentCreateInput struct {
	Content string `json:"content" validate:"required,not_blank,max=2000,no_xss"`
}

// CommentUpdateInput dữ liệu sửa nội dung bình luận.
type CommentUpdateInput struct {
	Content string `json:"content" validate:"required,not_blank,max=2000,no_xss"`
}

// CommentListQuery tham số phân trang danh sách bình luận.
type CommentListQuery struct {
	Page  int64 `query:"page" validate:"omitempty,min=1"`
	Limit int64 `query:"limit" validate:"omitempty,min=1,max=100"`
}
