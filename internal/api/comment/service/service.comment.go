// Package commentsvc - Service bình luận (comments).
package commentsvc

import (
	"context"
	"errors"

	commentmodels "video_tube/internal/api/comment/models"
	basesvc "video_tube/internal/api/base/service"
	"video_tube/internal/common"
	"video_tube/internal/global"

	basemodels "video_tube/internal/api/base/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CommentService xử lý nghiệp vụ bình luận.
type CommentService struct {
	*basesvc.BaseServiceMongoImpl[commentmodels.Comment]
	videoColl *mongo.Collection
	likeColl  *mongo.Collection
}

// NewCommentService tạo CommentService mới.
func NewCommentService() *CommentService {
	return &CommentService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[commentmodels.Comment](
			global.RegistryCollections.MustGet(global.MongoDB_ColNames.Comments),
		),
		videoColl: global.RegistryCollections.MustGet(global.MongoDB_ColNames.Videos),
		likeColl:  global.RegistryCollections.MustGet(global.MongoDB_ColNames.Likes),
	}
}

// BuildVideoCommentsPipeline dựng pipeline danh sách bình luận của một video:
// đếm like từng bình luận, thông tin người viết và trạng thái isLiked của người gọi.
func BuildVideoCommentsPipeline(videoID, callerID primitive.ObjectID) []bson.M {
	return []bson.M{
		{"$match": bson.M{"video": videoID}},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Likes,
			"localField":   "_id",
			"foreignField": "comment",
			"as":           "likes",
		}},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Users,
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "owner",
			"pipeline": []bson.M{
				{"$project": bson.M{"username": 1, "fullName": 1, "avatar": 1}},
			},
		}},
		{"$addFields": bson.M{
			"likesCount": bson.M{"$size": "$likes"},
			"owner":      bson.M{"$first": "$owner"},
			"isLiked":    bson.M{"$in": bson.A{callerID, "$likes.likedBy"}},
		}},
		{"$sort": bson.M{"createdAt": -1}},
		{"$project": bson.M{
			"content":    1,
			"owner":      1,
			"likesCount": 1,
			"isLiked":    1,
			"createdAt":  1,
			"updatedAt":  1,
		}},
	}
}

// ensureVideoExists kiểm tra video đích có tồn tại trước khi tạo bản ghi phụ thuộc.
func (s *CommentService) ensureVideoExists(ctx context.Context, videoID primitive.ObjectID) error {
	count, err := s.videoColl.CountDocuments(ctx, bson.M{"_id": videoID})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if count == 0 {
		return common.ErrNotFound
	}
	return nil
}

// GetVideoComments trả về bình luận của video, phân trang, mới nhất trước.
func (s *CommentService) GetVideoComments(ctx context.Context, videoID, callerID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[bson.M], error) {
	if err := s.ensureVideoExists(ctx, videoID); err != nil {
		return nil, err
	}
	return s.AggregateWithPagination(ctx, BuildVideoCommentsPipeline(videoID, callerID), page, limit)
}

// AddComment thêm bình luận vào video. Video không tồn tại → ErrNotFound.
func (s *CommentService) AddComment(ctx context.Context, videoID, owner primitive.ObjectID, content string) (*commentmodels.Comment, error) {
	if err := s.ensureVideoExists(ctx, videoID); err != nil {
		return nil, err
	}
	doc := commentmodels.Comment{
		Content: content,
		Video:   videoID,
		Owner:   owner,
	}
	comment, err := s.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// requireOwnership lấy bình luận và kiểm tra quyền chủ sở hữu.
func (s *CommentService) requireOwnership(ctx context.Context, commentID, callerID primitive.ObjectID) (*commentmodels.Comment, error) {
	comment, err := s.FindOneById(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.Owner != callerID {
		return nil, common.ErrNotOwner
	}
	return &comment, nil
}

// UpdateComment sửa nội dung bình luận, chỉ chủ sở hữu.
func (s *CommentService) UpdateComment(ctx context.Context, commentID, callerID primitive.ObjectID, content string) (*commentmodels.Comment, error) {
	if _, err := s.requireOwnership(ctx, commentID, callerID); err != nil {
		return nil, err
	}
	updated, err := s.UpdateById(ctx, commentID, bson.M{"$set": bson.M{"content": content}})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteComment xóa bình luận cùng các like của nó trong một transaction.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, callerID primitive.ObjectID) error {
	if _, err := s.requireOwnership(ctx, commentID, callerID); err != nil {
		return err
	}

	session, err := global.MongoDB_Session.StartSession()
	if err != nil {
		return common.ConvertMongoError(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := s.likeColl.DeleteMany(sc, bson.M{"comment": commentID}); err != nil {
			return nil, err
		}
		res, err := s.Collection().DeleteOne(sc, bson.M{"_id": commentID})
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
