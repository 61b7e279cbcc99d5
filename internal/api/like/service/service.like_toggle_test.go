// Package likesvc - Test hành vi toggle trên mongo giả lập (mtest mock).
package likesvc

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	basesvc "video_tube/internal/api/base/service"
	likemodels "video_tube/internal/api/like/models"
	"video_tube/internal/common"
)

// newMockLikeService dựng LikeService trên collection mock của mtest.
// Cả collection like lẫn collection đích dùng chung mt.Coll: mỗi lệnh chỉ
// tiêu thụ đúng một response đã xếp hàng nên không lẫn nhau.
func newMockLikeService(mt *mtest.T) *LikeService {
	return &LikeService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[likemodels.Like](mt.Coll),
		videoColl:            mt.Coll,
		commentColl:          mt.Coll,
		tweetColl:            mt.Coll,
	}
}

// countResponse giả lập kết quả CountDocuments (aggregate $group n).
func countResponse(mt *mtest.T, n int32) bson.D {
	ns := mt.DB.Name() + "." + mt.Coll.Name()
	if n == 0 {
		return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch)
	}
	return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: n}})
}

// famDeleted giả lập findAndModify xóa trúng một lượt thích.
func famDeleted(videoID, actor primitive.ObjectID) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "video", Value: videoID},
		{Key: "likedBy", Value: actor},
	}})
}

// famMissed giả lập findAndModify không tìm thấy document.
func famMissed() bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil})
}

// Toggle hai lần trên cùng đích phải đảo trạng thái rồi trở về ban đầu:
// lần một tạo like (true), lần hai gỡ đúng like đó (false).
func TestToggleVideoLike_HaiLanTroVeTrangThaiDau(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("toggle hai lần", func(mt *mtest.T) {
		videoID := primitive.NewObjectID()
		actor := primitive.NewObjectID()
		svc := newMockLikeService(mt)

		// Lần một: video tồn tại, chưa có like, insert thành công.
		// InsertOne của base service còn FindOne đọc lại document vừa tạo,
		// nên phải xếp thêm một cursor response mang chính like đó.
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(
			countResponse(mt, 1),
			famMissed(),
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "video", Value: videoID},
				{Key: "likedBy", Value: actor},
			}),
		)
		liked, err := svc.ToggleVideoLike(context.Background(), videoID, actor)
		if err != nil {
			mt.Fatalf("toggle lần một lỗi: %v", err)
		}
		if !liked {
			mt.Error("toggle lần một phải trả isLiked=true")
		}

		// Lần hai: video tồn tại, like đã có và bị xóa
		mt.AddMockResponses(
			countResponse(mt, 1),
			famDeleted(videoID, actor),
		)
		liked, err = svc.ToggleVideoLike(context.Background(), videoID, actor)
		if err != nil {
			mt.Fatalf("toggle lần hai lỗi: %v", err)
		}
		if liked {
			mt.Error("toggle lần hai phải trả isLiked=false")
		}
	})
}

// Hai request toggle song song cùng đích: request thua race nhận E11000 từ
// unique index và phải trả isLiked=true thay vì lỗi.
func TestToggleVideoLike_RaceTrungKeyCoiNhuDaLike(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert trùng key", func(mt *mtest.T) {
		svc := newMockLikeService(mt)

		mt.AddMockResponses(
			countResponse(mt, 1),
			famMissed(),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error",
			}),
		)
		liked, err := svc.ToggleVideoLike(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
		if err != nil {
			mt.Fatalf("trùng key trong toggle không được trả lỗi, nhận: %v", err)
		}
		if !liked {
			mt.Error("request thua race phải thấy trạng thái đã like")
		}
	})
}

// Đích không tồn tại → ErrNotFound, không đụng tới collection like.
func TestToggleVideoLike_VideoKhongTonTai(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("video vắng mặt", func(mt *mtest.T) {
		svc := newMockLikeService(mt)

		mt.AddMockResponses(countResponse(mt, 0))
		_, err := svc.ToggleVideoLike(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
		if !errors.Is(err, common.ErrNotFound) {
			mt.Errorf("đích vắng mặt phải trả ErrNotFound, nhận: %v", err)
		}
	})
}
