// Package tweetdto - DTO cho domain Tweet.
package tweetdto

// TweetCreateInput dữ liệu tạo tweet mới.
// Content trống hoặc toàn khoảng trắng bị chặn trước khi chạm vào storage.
type TweetCreateInput struct {
	Content string `json:"content" validate:"required,not_blank,max=500,no_xss"`
}

// TweetUpdateInput dữ liệu sửa nội dung tweet.
type TweetUpdateInput struct {
	Content string `json:"content" validate:"required,not_blank,max=500,no_xss"`
}
