// Package playlistsvc - Service playlist (playlists).
package playlistsvc

import (
	"context"

	basesvc "video_tube/internal/api/base/service"
	playlistdto "video_tube/internal/api/playlist/dto"
	playlistmodels "video_tube/internal/api/playlist/models"
	"video_tube/internal/common"
	"video_tube/internal/global"
	"video_tube/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// customBson dựng map toán tử cập nhật ($addToSet, $pull) qua bson tag.
var customBson = &utility.CustomBson{}

// PlaylistService xử lý nghiệp vụ playlist.
type PlaylistService struct {
	*basesvc.BaseServiceMongoImpl[playlistmodels.Playlist]
	videoColl *mongo.Collection
}

// NewPlaylistService tạo PlaylistService mới.
func NewPlaylistService() *PlaylistService {
	return &PlaylistService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[playlistmodels.Playlist](
			global.RegistryCollections.MustGet(global.MongoDB_ColNames.Playlists),
		),
		videoColl: global.RegistryCollections.MustGet(global.MongoDB_ColNames.Videos),
	}
}

// CreatePlaylist tạo playlist mới cho người gọi.
func (s *PlaylistService) CreatePlaylist(ctx context.Context, input *playlistdto.PlaylistCreateInput, owner primitive.ObjectID) (*playlistmodels.Playlist, error) {
	doc := playlistmodels.Playlist{
		Name:        input.Name,
		Description: input.Description,
		Videos:      []primitive.ObjectID{},
		Owner:       owner,
	}
	playlist, err := s.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// videosLookupStages là phần lookup video dùng chung cho các pipeline playlist.
// Chỉ video đã publish được tính vào totalVideos/totalViews.
func videosLookupStages() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Videos,
			"localField":   "videos",
			"foreignField": "_id",
			"as":           "videos",
			"pipeline": []bson.M{
				{"$match": bson.M{"isPublished": true}},
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
		// $sum trên mảng rỗng trả 0, không bao giờ null
		{"$addFields": bson.M{
			"totalVideos": bson.M{"$size": "$videos"},
			"totalViews":  bson.M{"$sum": "$videos.views"},
		}},
	}
}

// BuildPlaylistByIdPipeline dựng pipeline chi tiết một playlist.
func BuildPlaylistByIdPipeline(playlistID primitive.ObjectID) []bson.M {
	pipeline := []bson.M{
		{"$match": bson.M{"_id": playlistID}},
	}
	pipeline = append(pipeline, videosLookupStages()...)
	pipeline = append(pipeline,
		bson.M{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Users,
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "owner",
			"pipeline": []bson.M{
				{"$project": bson.M{"username": 1, "fullName": 1, "avatar": 1}},
			},
		}},
		bson.M{"$addFields": bson.M{"owner": bson.M{"$first": "$owner"}}},
		bson.M{"$project": bson.M{
			"name":        1,
			"description": 1,
			"videos":      1,
			"owner":       1,
			"totalVideos": 1,
			"totalViews":  1,
			"createdAt":   1,
			"updatedAt":   1,
		}},
	)
	return pipeline
}

// BuildUserPlaylistsPipeline dựng pipeline danh sách playlist của một người dùng.
func BuildUserPlaylistsPipeline(ownerID primitive.ObjectID) []bson.M {
	pipeline := []bson.M{
		{"$match": bson.M{"owner": ownerID}},
	}
	pipeline = append(pipeline, videosLookupStages()...)
	pipeline = append(pipeline,
		bson.M{"$sort": bson.M{"updatedAt": -1}},
		bson.M{"$project": bson.M{
			"name":        1,
			"description": 1,
			"totalVideos": 1,
			"totalViews":  1,
			"createdAt":   1,
			"updatedAt":   1,
		}},
	)
	return pipeline
}

// GetPlaylistById trả về chi tiết playlist qua aggregation.
func (s *PlaylistService) GetPlaylistById(ctx context.Context, playlistID primitive.ObjectID) (bson.M, error) {
	results, err := s.Aggregate(ctx, BuildPlaylistByIdPipeline(playlistID))
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, common.ErrNotFound
	}
	return results[0], nil
}

// GetUserPlaylists trả về danh sách playlist của một người dùng.
func (s *PlaylistService) GetUserPlaylists(ctx context.Context, ownerID primitive.ObjectID) ([]bson.M, error) {
	return s.Aggregate(ctx, BuildUserPlaylistsPipeline(ownerID))
}

// requireOwnership lấy playlist và kiểm tra quyền chủ sở hữu.
func (s *PlaylistService) requireOwnership(ctx context.Context, playlistID, callerID primitive.ObjectID) (*playlistmodels.Playlist, error) {
	playlist, err := s.FindOneById(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.Owner != callerID {
		return nil, common.ErrNotOwner
	}
	return &playlist, nil
}

// UpdatePlaylist cập nhật name/description, chỉ chủ sở hữu.
func (s *PlaylistService) UpdatePlaylist(ctx context.Context, playlistID, callerID primitive.ObjectID, input *playlistdto.PlaylistUpdateInput) (*playlistmodels.Playlist, error) {
	if _, err := s.requireOwnership(ctx, playlistID, callerID); err != nil {
		return nil, err
	}

	set := bson.M{}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if len(set) == 0 {
		return nil, common.ErrRequiredField
	}

	updated, err := s.UpdateById(ctx, playlistID, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePlaylist xóa playlist, chỉ chủ sở hữu.
// Video trong playlist không bị ảnh hưởng.
func (s *PlaylistService) DeletePlaylist(ctx context.Context, playlistID, callerID primitive.ObjectID) error {
	if _, err := s.requireOwnership(ctx, playlistID, callerID); err != nil {
		return err
	}
	return s.DeleteById(ctx, playlistID)
}

// AddVideo thêm video vào playlist bằng $addToSet (thêm lại video đã có là no-op).
// Playlist phải thuộc người gọi và video phải tồn tại.
func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, videoID, callerID primitive.ObjectID) (*playlistmodels.Playlist, error) {
	if _, err := s.requireOwnership(ctx, playlistID, callerID); err != nil {
		return nil, err
	}
	count, err := s.videoColl.CountDocuments(ctx, bson.M{"_id": videoID})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if count == 0 {
		return nil, common.ErrNotFound
	}

	update, err := customBson.AddToSet(bson.M{"videos": videoID})
	if err != nil {
		return nil, common.ErrInvalidFormat
	}
	updated, err := s.UpdateOne(ctx, bson.M{"_id": playlistID}, update, nil)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveVideo gỡ video khỏi playlist bằng $pull (gỡ video không có trong danh sách vẫn thành công).
func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, callerID primitive.ObjectID) (*playlistmodels.Playlist, error) {
	if _, err := s.requireOwnership(ctx, playlistID, callerID); err != nil {
		return nil, err
	}

	update, err := customBson.Pull(bson.M{"videos": videoID})
	if err != nil {
		return nil, common.ErrInvalidFormat
	}
	updated, err := s.UpdateOne(ctx, bson.M{"_id": playlistID}, update, nil)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
