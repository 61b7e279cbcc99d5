// Package videosvc - Service video (videos).
// Chứa nghiệp vụ publish, truy vấn aggregation và cascade xóa.
package videosvc

import (
	"context"
	"errors"
	"time"

	basesvc "video_tube/internal/api/base/service"
	usersvc "video_tube/internal/api/user/service"
	videodto "video_tube/internal/api/video/dto"
	videomodels "video_tube/internal/api/video/models"
	"video_tube/internal/common"
	"video_tube/internal/global"
	"video_tube/internal/logger"

	basemodels "video_tube/internal/api/base/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VideoService xử lý nghiệp vụ video.
type VideoService struct {
	*basesvc.BaseServiceMongoImpl[videomodels.Video]
	userService *usersvc.UserService
	likeColl    *mongo.Collection
	commentColl *mongo.Collection
}

// NewVideoService tạo VideoService mới.
func NewVideoService() *VideoService {
	return &VideoService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[videomodels.Video](
			global.RegistryCollections.MustGet(global.MongoDB_ColNames.Videos),
		),
		userService: usersvc.NewUserService(),
		likeColl:    global.RegistryCollections.MustGet(global.MongoDB_ColNames.Likes),
		commentColl: global.RegistryCollections.MustGet(global.MongoDB_ColNames.Comments),
	}
}

// toMediaRef chuyển input media sang giá trị lưu trữ.
func toMediaRef(in *videodto.MediaRefInput) basemodels.MediaRef {
	if in == nil {
		return basemodels.MediaRef{}
	}
	return basemodels.MediaRef{URL: in.URL, PublicID: in.PublicID}
}

// PublishVideo tạo video mới với trạng thái đã publish, owner là người gọi.
func (s *VideoService) PublishVideo(ctx context.Context, input *videodto.VideoCreateInput, owner primitive.ObjectID) (*videomodels.Video, error) {
	doc := videomodels.Video{
		Title:       input.Title,
		Description: input.Description,
		VideoFile:   toMediaRef(input.VideoFile),
		Thumbnail:   toMediaRef(input.Thumbnail),
		Duration:    input.Duration,
		Views:       0,
		Owner:       owner,
		IsPublished: true,
	}
	video, err := s.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// BuildVideoByIdPipeline dựng pipeline lấy chi tiết video:
// đếm like, trạng thái isLiked của người gọi, thông tin chủ kênh kèm
// số subscriber và trạng thái isSubscribed.
// callerID là NilObjectID với người xem ẩn danh → isLiked/isSubscribed = false.
func BuildVideoByIdPipeline(videoID, callerID primitive.ObjectID) []bson.M {
	return []bson.M{
		{"$match": bson.M{"_id": videoID}},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Likes,
			"localField":   "_id",
			"foreignField": "video",
			"as":           "likes",
		}},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Users,
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "owner",
			"pipeline": []bson.M{
				{"$lookup": bson.M{
					"from":         global.MongoDB_ColNames.Subscriptions,
					"localField":   "_id",
					"foreignField": "channel",
					"as":           "subscribers",
				}},
				{"$addFields": bson.M{
					"subscribersCount": bson.M{"$size": "$subscribers"},
					"isSubscribed": bson.M{
						"$in": bson.A{callerID, "$subscribers.subscriber"},
					},
				}},
				{"$project": bson.M{
					"username":         1,
					"fullName":         1,
					"avatar":           1,
					"subscribersCount": 1,
					"isSubscribed":     1,
				}},
			},
		}},
		{"$addFields": bson.M{
			"likesCount": bson.M{"$size": "$likes"},
			"owner":      bson.M{"$first": "$owner"},
			"isLiked":    bson.M{"$in": bson.A{callerID, "$likes.likedBy"}},
		}},
		{"$project": bson.M{
			"videoFile":   1,
			"thumbnail":   1,
			"title":       1,
			"description": 1,
			"duration":    1,
			"views":       1,
			"isPublished": 1,
			"owner":       1,
			"likesCount":  1,
			"isLiked":     1,
			"createdAt":   1,
			"updatedAt":   1,
		}},
	}
}

// GetVideoById trả về chi tiết video qua aggregation.
// Chỉ khi lấy thành công mới tăng views và ghi watch history của người gọi.
func (s *VideoService) GetVideoById(ctx context.Context, videoID, callerID primitive.ObjectID) (bson.M, error) {
	results, err := s.Aggregate(ctx, BuildVideoByIdPipeline(videoID, callerID))
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, common.ErrNotFound
	}

	if _, err := s.UpdateOne(ctx, bson.M{"_id": videoID}, bson.M{"$inc": bson.M{"views": 1}}, nil); err != nil {
		logger.GetAppLogger().WithField("videoId", videoID.Hex()).Warnf("Không tăng được lượt xem: %v", err)
	}
	if !callerID.IsZero() {
		if err := s.userService.AddToWatchHistory(ctx, callerID, videoID); err != nil {
			logger.GetAppLogger().WithField("userId", callerID.Hex()).Warnf("Không ghi được watch history: %v", err)
		}
	}

	return results[0], nil
}

// BuildListFilter dựng filter danh sách video từ tham số truy vấn.
// Người gọi chỉ thấy video chưa publish của chính mình.
func BuildListFilter(q *videodto.VideoListQuery, callerID primitive.ObjectID) bson.M {
	filter := bson.M{}

	if q.UserID != "" {
		ownerID, err := primitive.ObjectIDFromHex(q.UserID)
		if err == nil {
			filter["owner"] = ownerID
			if ownerID != callerID {
				filter["isPublished"] = true
			}
		}
	} else {
		filter["isPublished"] = true
	}

	if q.Query != "" {
		pattern := primitive.Regex{Pattern: q.Query, Options: "i"}
		filter["$or"] = []bson.M{
			{"title": pattern},
			{"description": pattern},
		}
	}

	return filter
}

// BuildListSort dựng tiêu chí sắp xếp, mặc định mới nhất trước.
func BuildListSort(q *videodto.VideoListQuery) bson.D {
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	order := -1
	if q.SortType == "asc" {
		order = 1
	}
	return bson.D{{Key: sortBy, Value: order}}
}

// ListVideos trả về danh sách video phân trang theo tham số truy vấn.
func (s *VideoService) ListVideos(ctx context.Context, q *videodto.VideoListQuery, callerID primitive.ObjectID) (*basemodels.PaginateResult[videomodels.Video], error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 10
	}

	filter := BuildListFilter(q, callerID)
	opts := options.Find().SetSort(BuildListSort(q))
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// requireOwnership lấy video và kiểm tra quyền chủ sở hữu.
// Video không tồn tại → ErrNotFound; không phải chủ → ErrNotOwner.
func (s *VideoService) requireOwnership(ctx context.Context, videoID, callerID primitive.ObjectID) (*videomodels.Video, error) {
	video, err := s.FindOneById(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.Owner != callerID {
		return nil, common.ErrNotOwner
	}
	return &video, nil
}

// UpdateVideo cập nhật title/description/thumbnail, chỉ chủ sở hữu.
func (s *VideoService) UpdateVideo(ctx context.Context, videoID, callerID primitive.ObjectID, input *videodto.VideoUpdateInput) (*videomodels.Video, error) {
	if _, err := s.requireOwnership(ctx, videoID, callerID); err != nil {
		return nil, err
	}

	set := bson.M{}
	if input.Title != "" {
		set["title"] = input.Title
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if input.Thumbnail != nil {
		set["thumbnail"] = toMediaRef(input.Thumbnail)
	}
	if len(set) == 0 {
		return nil, common.ErrRequiredField
	}

	updated, err := s.UpdateById(ctx, videoID, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteVideo xóa video cùng toàn bộ like và comment phụ thuộc trong một transaction.
func (s *VideoService) DeleteVideo(ctx context.Context, videoID, callerID primitive.ObjectID) error {
	if _, err := s.requireOwnership(ctx, videoID, callerID); err != nil {
		return err
	}

	session, err := global.MongoDB_Session.StartSession()
	if err != nil {
		return common.ConvertMongoError(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		// Like của video
		if _, err := s.likeColl.DeleteMany(sc, bson.M{"video": videoID}); err != nil {
			return nil, err
		}

		// Comment của video + like của các comment đó
		commentIDs, err := s.commentColl.Distinct(sc, "_id", bson.M{"video": videoID})
		if err != nil {
			return nil, err
		}
		if len(commentIDs) > 0 {
			if _, err := s.likeColl.DeleteMany(sc, bson.M{"comment": bson.M{"$in": commentIDs}}); err != nil {
				return nil, err
			}
			if _, err := s.commentColl.DeleteMany(sc, bson.M{"video": videoID}); err != nil {
				return nil, err
			}
		}

		res, err := s.Collection().DeleteOne(sc, bson.M{"_id": videoID})
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

	logger.GetAppLogger().WithField("videoId", videoID.Hex()).Info("Đã xóa video và dữ liệu phụ thuộc")
	return nil
}

// TogglePublishStatus đảo trạng thái isPublished bằng pipeline update nguyên tử.
func (s *VideoService) TogglePublishStatus(ctx context.Context, videoID, callerID primitive.ObjectID) (*videomodels.Video, error) {
	if _, err := s.requireOwnership(ctx, videoID, callerID); err != nil {
		return nil, err
	}

	update := bson.A{
		bson.M{"$set": bson.M{
			"isPublished": bson.M{"$not": "$isPublished"},
			"updatedAt":   time.Now().UnixMilli(),
		}},
	}
	result := s.Collection().FindOneAndUpdate(ctx, bson.M{"_id": videoID, "owner": callerID}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	var video videomodels.Video
	if err := result.Decode(&video); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.ErrNotFound
		}
		return nil, common.ConvertMongoError(err)
	}
	return &video, nil
}
