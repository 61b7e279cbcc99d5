// Package videosvc - Test cổng kiểm tra quyền sở hữu trên mongo giả lập (mtest mock).
package videosvc

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	basesvc "video_tube/internal/api/base/service"
	videodto "video_tube/internal/api/video/dto"
	videomodels "video_tube/internal/api/video/models"
	"video_tube/internal/common"
)

// newMockVideoService dựng VideoService trên collection mock. Các test cổng
// sở hữu dừng trước khi chạm tới like/comment nên không cần các collection đó.
func newMockVideoService(mt *mtest.T) *VideoService {
	return &VideoService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[videomodels.Video](mt.Coll),
	}
}

// videoFindResponse giả lập lệnh find trả về đúng một video.
func videoFindResponse(mt *mtest.T, videoID, owner primitive.ObjectID) bson.D {
	ns := mt.DB.Name() + "." + mt.Coll.Name()
	return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
		{Key: "_id", Value: videoID},
		{Key: "title", Value: "video"},
		{Key: "owner", Value: owner},
	})
}

// emptyFindResponse giả lập lệnh find không có kết quả.
func emptyFindResponse(mt *mtest.T) bson.D {
	ns := mt.DB.Name() + "." + mt.Coll.Name()
	return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch)
}

// Video không tồn tại → ErrNotFound (404), phân biệt với sai chủ sở hữu.
func TestUpdateVideo_KhongTonTaiTraNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("video vắng mặt", func(mt *mtest.T) {
		svc := newMockVideoService(mt)

		mt.AddMockResponses(emptyFindResponse(mt))
		_, err := svc.UpdateVideo(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(),
			&videodto.VideoUpdateInput{Title: "tên mới"})
		if !errors.Is(err, common.ErrNotFound) {
			mt.Errorf("video vắng mặt phải trả ErrNotFound, nhận: %v", err)
		}
	})
}

// Video tồn tại nhưng caller không phải chủ → ErrNotOwner (403),
// không được lẫn thành 404.
func TestUpdateVideo_SaiChuTraNotOwner(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("caller khác owner", func(mt *mtest.T) {
		videoID := primitive.NewObjectID()
		owner := primitive.NewObjectID()
		caller := primitive.NewObjectID()
		svc := newMockVideoService(mt)

		mt.AddMockResponses(videoFindResponse(mt, videoID, owner))
		_, err := svc.UpdateVideo(context.Background(), videoID, caller,
			&videodto.VideoUpdateInput{Title: "tên mới"})
		if !errors.Is(err, common.ErrNotOwner) {
			mt.Errorf("sai chủ sở hữu phải trả ErrNotOwner, nhận: %v", err)
		}
	})
}

// DeleteVideo dùng chung cổng sở hữu: sai chủ phải bị chặn trước khi
// transaction cascade bắt đầu.
func TestDeleteVideo_SaiChuKhongChayCascade(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("caller khác owner", func(mt *mtest.T) {
		videoID := primitive.NewObjectID()
		svc := newMockVideoService(mt)

		mt.AddMockResponses(videoFindResponse(mt, videoID, primitive.NewObjectID()))
		err := svc.DeleteVideo(context.Background(), videoID, primitive.NewObjectID())
		if !errors.Is(err, common.ErrNotOwner) {
			mt.Errorf("sai chủ sở hữu phải trả ErrNotOwner, nhận: %v", err)
		}
	})
}
