package models

// MediaRef tham chiếu tới một file media đã upload trên kho lưu trữ ngoài.
// Hệ thống chỉ giữ URL công khai và publicId để đối chiếu, không quản lý file.
type MediaRef struct {
	URL      string `json:"url" bson:"url"`
	PublicID string `json:"publicId,omitempty" bson:"publicId,omitempty"`
}
