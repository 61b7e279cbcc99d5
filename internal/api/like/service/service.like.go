// Package likesvc - Service lượt thích (likes).
// Toggle là thao tác nguyên tử: FindOneAndDelete trước, chưa có thì insert;
// unique index hấp thụ race giữa hai request đồng thời.
package likesvc

import (
	"context"
	"errors"

	likemodels "video_tube/internal/api/like/models"
	basesvc "video_tube/internal/api/base/service"
	"video_tube/internal/common"
	"video_tube/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// LikeService xử lý nghiệp vụ lượt thích.
type LikeService struct {
	*basesvc.BaseServiceMongoImpl[likemodels.Like]
	videoColl   *mongo.Collection
	commentColl *mongo.Collection
	tweetColl   *mongo.Collection
}

// NewLikeService tạo LikeService mới.
func NewLikeService() *LikeService {
	return &LikeService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[likemodels.Like](
			global.RegistryCollections.MustGet(global.MongoDB_ColNames.Likes),
		),
		videoColl:   global.RegistryCollections.MustGet(global.MongoDB_ColNames.Videos),
		commentColl: global.RegistryCollections.MustGet(global.MongoDB_ColNames.Comments),
		tweetColl:   global.RegistryCollections.MustGet(global.MongoDB_ColNames.Tweets),
	}
}

// ensureTargetExists kiểm tra đối tượng được like có tồn tại.
func (s *LikeService) ensureTargetExists(ctx context.Context, coll *mongo.Collection, targetID primitive.ObjectID) error {
	count, err := coll.CountDocuments(ctx, bson.M{"_id": targetID})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if count == 0 {
		return common.ErrNotFound
	}
	return nil
}

// BuildToggleFilter dựng filter định danh một lượt thích theo loại đích.
// targetField là "video", "comment" hoặc "tweet".
func BuildToggleFilter(targetField string, targetID, actor primitive.ObjectID) bson.M {
	return bson.M{
		targetField: targetID,
		"likedBy":   actor,
	}
}

// toggle xóa like nếu đã có, chưa có thì tạo mới. Trả về trạng thái sau thao tác.
func (s *LikeService) toggle(ctx context.Context, targetField string, targetID, actor primitive.ObjectID) (bool, error) {
	filter := BuildToggleFilter(targetField, targetID, actor)

	_, err := s.FindOneAndDelete(ctx, filter, nil)
	if err == nil {
		// Đã có like → vừa bỏ like
		return false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return false, err
	}

	doc := likemodels.Like{LikedBy: actor}
	switch targetField {
	case "video":
		doc.Video = &targetID
	case "comment":
		doc.Comment = &targetID
	case "tweet":
		doc.Tweet = &targetID
	}
	if _, err := s.InsertOne(ctx, doc); err != nil {
		// Unique index partial chỉ ràng buộc (đích cùng loại, likedBy),
		// nên E11000 ở đây chắc chắn là request song song cùng đích
		// đã insert trước → coi như đã like
		if errors.Is(err, common.ErrMongoDuplicate) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// ToggleVideoLike toggle like trên video. Video không tồn tại → ErrNotFound.
func (s *LikeService) ToggleVideoLike(ctx context.Context, videoID, actor primitive.ObjectID) (bool, error) {
	if err := s.ensureTargetExists(ctx, s.videoColl, videoID); err != nil {
		return false, err
	}
	return s.toggle(ctx, "video", videoID, actor)
}

// ToggleCommentLike toggle like trên bình luận.
func (s *LikeService) ToggleCommentLike(ctx context.Context, commentID, actor primitive.ObjectID) (bool, error) {
	if err := s.ensureTargetExists(ctx, s.commentColl, commentID); err != nil {
		return false, err
	}
	return s.toggle(ctx, "comment", commentID, actor)
}

// ToggleTweetLike toggle like trên tweet.
func (s *LikeService) ToggleTweetLike(ctx context.Context, tweetID, actor primitive.ObjectID) (bool, error) {
	if err := s.ensureTargetExists(ctx, s.tweetColl, tweetID); err != nil {
		return false, err
	}
	return s.toggle(ctx, "tweet", tweetID, actor)
}

// BuildLikedVideosPipeline dựng pipeline danh sách video người dùng đã thích,
// kèm thông tin chủ kênh của từng video, mới thích trước.
func BuildLikedVideosPipeline(actor primitive.ObjectID) []bson.M {
	return []bson.M{
		{"$match": bson.M{
			"likedBy": actor,
			"video":   bson.M{"$exists": true},
		}},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Videos,
			"localField":   "video",
			"foreignField": "_id",
			"as":           "video",
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
				{"$unwind": "$owner"},
			},
		}},
		{"$unwind": "$video"},
		{"$sort": bson.M{"createdAt": -1}},
		{"$project": bson.M{
			"video":     1,
			"likedBy":   1,
			"createdAt": 1,
		}},
	}
}

// GetLikedVideos trả về danh sách video người gọi đã thích.
func (s *LikeService) GetLikedVideos(ctx context.Context, actor primitive.ObjectID) ([]bson.M, error) {
	return s.Aggregate(ctx, BuildLikedVideosPipeline(actor))
}
