// Package tweetsvc - Service tweet (tweets).
package tweetsvc

import (
	"context"
	"errors"

	basesvc "video_tube/internal/api/base/service"
	tweetmodels "video_tube/internal/api/tweet/models"
	"video_tube/internal/common"
	"video_tube/internal/global"

	basemodels "video_tube/internal/api/base/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TweetService xử lý nghiệp vụ tweet.
type TweetService struct {
	*basesvc.BaseServiceMongoImpl[tweetmodels.Tweet]
	userColl *mongo.Collection
	likeColl *mongo.Collection
}

// NewTweetService tạo TweetService mới.
func NewTweetService() *TweetService {
	return &TweetService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[tweetmodels.Tweet](
			global.RegistryCollections.MustGet(global.MongoDB_ColNames.Tweets),
		),
		userColl: global.RegistryCollections.MustGet(global.MongoDB_ColNames.Users),
		likeColl: global.RegistryCollections.MustGet(global.MongoDB_ColNames.Likes),
	}
}

// CreateTweet tạo tweet mới cho người gọi.
func (s *TweetService) CreateTweet(ctx context.Context, owner primitive.ObjectID, content string) (*tweetmodels.Tweet, error) {
	doc := tweetmodels.Tweet{
		Content: content,
		Owner:   owner,
	}
	tweet, err := s.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

// BuildUserTweetsPipeline dựng pipeline danh sách tweet của một kênh:
// thông tin người đăng, số like và trạng thái isLiked của người gọi.
func BuildUserTweetsPipeline(ownerID, callerID primitive.ObjectID) []bson.M {
	return []bson.M{
		{"$match": bson.M{"owner": ownerID}},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Users,
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "ownerDetails",
			"pipeline": []bson.M{
				{"$project": bson.M{"username": 1, "fullName": 1, "avatar": 1}},
			},
		}},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Likes,
			"localField":   "_id",
			"foreignField": "tweet",
			"as":           "likes",
		}},
		{"$addFields": bson.M{
			"ownerDetails": bson.M{"$first": "$ownerDetails"},
			"likesCount":   bson.M{"$size": "$likes"},
			"isLiked":      bson.M{"$in": bson.A{callerID, "$likes.likedBy"}},
		}},
		{"$sort": bson.M{"createdAt": -1}},
		{"$project": bson.M{
			"content":      1,
			"ownerDetails": 1,
			"likesCount":   1,
			"isLiked":      1,
			"createdAt":    1,
			"updatedAt":    1,
		}},
	}
}

// GetUserTweets trả về tweet của một kênh, phân trang, mới nhất trước.
// Kênh không tồn tại → ErrNotFound.
func (s *TweetService) GetUserTweets(ctx context.Context, ownerID, callerID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[bson.M], error) {
	count, err := s.userColl.CountDocuments(ctx, bson.M{"_id": ownerID})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if count == 0 {
		return nil, common.ErrUserNotFound
	}
	return s.AggregateWithPagination(ctx, BuildUserTweetsPipeline(ownerID, callerID), page, limit)
}

// requireOwnership lấy tweet và kiểm tra quyền chủ sở hữu.
func (s *TweetService) requireOwnership(ctx context.Context, tweetID, callerID primitive.ObjectID) (*tweetmodels.Tweet, error) {
	tweet, err := s.FindOneById(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if tweet.Owner != callerID {
		return nil, common.ErrNotOwner
	}
	return &tweet, nil
}

// UpdateTweet sửa nội dung tweet, chỉ chủ sở hữu.
func (s *TweetService) UpdateTweet(ctx context.Context, tweetID, callerID primitive.ObjectID, content string) (*tweetmodels.Tweet, error) {
	if _, err := s.requireOwnership(ctx, tweetID, callerID); err != nil {
		return nil, err
	}
	updated, err := s.UpdateById(ctx, tweetID, bson.M{"$set": bson.M{"content": content}})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTweet xóa tweet cùng các like của nó trong một transaction.
func (s *TweetService) DeleteTweet(ctx context.Context, tweetID, callerID primitive.ObjectID) error {
	if _, err := s.requireOwnership(ctx, tweetID, callerID); err != nil {
		return err
	}

	session, err := global.MongoDB_Session.StartSession()
	if err != nil {
		return common.ConvertMongoError(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := s.likeColl.DeleteMany(sc, bson.M{"tweet": tweetID}); err != nil {
			return nil, err
		}
		res, err := s.Collection().DeleteOne(sc, bson.M{"_id": tweetID})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, common.ErrNotFound
		}
		return nil, nil
	})
	if err != nil {
		var appErr *common.Error
		if errors.As(err, &appErr) {
			return err
		}
		return common.ConvertMongoError(err)
	}
	return nil
}
