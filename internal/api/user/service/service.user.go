// Package usersvc - Service người dùng (users).
package usersvc

import (
	"context"

	basesvc "video_tube/internal/api/base/service"
	usermodels "video_tube/internal/api/user/models"
	"video_tube/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService xử lý nghiệp vụ người dùng / kênh.
type UserService struct {
	*basesvc.BaseServiceMongoImpl[usermodels.User]
}

// NewUserService tạo UserService mới.
func NewUserService() *UserService {
	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[usermodels.User](
			global.RegistryCollections.MustGet(global.MongoDB_ColNames.Users),
		),
	}
}

// BuildWatchHistoryPipeline dựng pipeline lấy lịch sử xem của một người dùng:
// lookup từng video trong watchHistory kèm thông tin chủ kênh rút gọn.
func BuildWatchHistoryPipeline(userID primitive.ObjectID) []bson.M {
	return []bson.M{
		{"$match": bson.M{"_id": userID}},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Videos,
			"localField":   "watchHistory",
			"foreignField": "_id",
			"as":           "watchHistory",
			"pipeline": []bson.M{
				{"$lookup": bson.M{
					"from":         global.MongoDB_ColNames.Users,
					"localField":   "owner",
					"foreignField": "_id",
					"as":           "owner",
					"pipeline": []bson.M{
						{"$project": bson.M{"username": 1, "fullName": 1, "avatar": 1}},
					},
				}},
				{"$addFields": bson.M{"owner": bson.M{"$first": "$owner"}}},
			},
		}},
		{"$project": bson.M{"watchHistory": 1}},
	}
}

// GetWatchHistory trả về danh sách video trong lịch sử xem của người dùng.
func (s *UserService) GetWatchHistory(ctx context.Context, userID primitive.ObjectID) ([]interface{}, error) {
	results, err := s.Aggregate(ctx, BuildWatchHistoryPipeline(userID))
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		// Người dùng không tồn tại → lịch sử rỗng
		return []interface{}{}, nil
	}
	history, ok := results[0]["watchHistory"].(bson.A)
	if !ok || history == nil {
		return []interface{}{}, nil
	}
	return []interface{}(history), nil
}

// AddToWatchHistory thêm video vào lịch sử xem ($addToSet nên xem lại không nhân đôi).
func (s *UserService) AddToWatchHistory(ctx context.Context, userID, videoID primitive.ObjectID) error {
	filter := bson.M{"_id": userID}
	update := bson.M{"$addToSet": bson.M{"watchHistory": videoID}}
	_, err := s.UpdateOne(ctx, filter, update, nil)
	return err
}
