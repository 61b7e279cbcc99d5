// Package videosvc - Test các hàm dựng filter/sort/pipeline (không cần DB).
package videosvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	videodto "video_tube/internal/api/video/dto"
	"video_tube/internal/global"
)

func init() {
	global.MongoDB_ColNames.Users = "users"
	global.MongoDB_ColNames.Videos = "videos"
	global.MongoDB_ColNames.Likes = "likes"
	global.MongoDB_ColNames.Subscriptions = "subscriptions"
}

func TestBuildListFilter_AnonymousOnlyPublished(t *testing.T) {
	filter := BuildListFilter(&videodto.VideoListQuery{}, primitive.NilObjectID)
	published, ok := filter["isPublished"].(bool)
	if !ok || !published {
		t.Errorf("người xem vãng lai phải bị giới hạn isPublished=true, filter: %v", filter)
	}
	if _, ok := filter["owner"]; ok {
		t.Error("không có userId thì filter không được chứa owner")
	}
}

func TestBuildListFilter_OwnerSeesOwnUnpublished(t *testing.T) {
	owner := primitive.NewObjectID()
	q := &videodto.VideoListQuery{UserID: owner.Hex()}

	filter := BuildListFilter(q, owner)
	if _, ok := filter["isPublished"]; ok {
		t.Errorf("chủ kênh xem kênh của mình không được lọc isPublished, filter: %v", filter)
	}
	if filter["owner"] != owner {
		t.Errorf("filter owner sai: %v", filter["owner"])
	}

	// Người khác xem kênh đó thì chỉ thấy video đã publish
	filter = BuildListFilter(q, primitive.NewObjectID())
	if published, ok := filter["isPublished"].(bool); !ok || !published {
		t.Errorf("người khác xem kênh phải bị giới hạn isPublished=true, filter: %v", filter)
	}
}

func TestBuildListFilter_SearchQueryRegex(t *testing.T) {
	filter := BuildListFilter(&videodto.VideoListQuery{Query: "golang"}, primitive.NilObjectID)
	or, ok := filter["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatalf("filter tìm kiếm phải là $or trên title và description, filter: %v", filter)
	}
	re, ok := or[0]["title"].(primitive.Regex)
	if !ok {
		t.Fatalf("title phải match bằng regex, nhận: %T", or[0]["title"])
	}
	if re.Pattern != "golang" || re.Options != "i" {
		t.Errorf("regex phải case-insensitive với pattern gốc, nhận: %v", re)
	}
	if _, ok := or[1]["description"]; !ok {
		t.Errorf("$or thiếu nhánh description: %v", or)
	}
}

func TestBuildListSort_DefaultNewestFirst(t *testing.T) {
	sort := BuildListSort(&videodto.VideoListQuery{})
	if len(sort) != 1 || sort[0].Key != "createdAt" || sort[0].Value != -1 {
		t.Errorf("sort mặc định phải là createdAt giảm dần, nhận: %v", sort)
	}
}

func TestBuildListSort_ExplicitAscending(t *testing.T) {
	sort := BuildListSort(&videodto.VideoListQuery{SortBy: "views", SortType: "asc"})
	if len(sort) != 1 || sort[0].Key != "views" || sort[0].Value != 1 {
		t.Errorf("sort theo views tăng dần sai: %v", sort)
	}
}

func TestBuildVideoByIdPipeline_MatchesIdFirst(t *testing.T) {
	videoID := primitive.NewObjectID()
	caller := primitive.NewObjectID()

	pipeline := BuildVideoByIdPipeline(videoID, caller)
	if len(pipeline) == 0 {
		t.Fatal("pipeline rỗng")
	}
	match, ok := pipeline[0]["$match"].(bson.M)
	if !ok {
		t.Fatalf("stage đầu phải là $match, nhận: %v", pipeline[0])
	}
	if match["_id"] != videoID {
		t.Errorf("$match phải lọc theo _id video, nhận: %v", match)
	}
}

func TestBuildVideoByIdPipeline_ProjectsOwnerAndLikeState(t *testing.T) {
	pipeline := BuildVideoByIdPipeline(primitive.NewObjectID(), primitive.NewObjectID())

	last := pipeline[len(pipeline)-1]
	project, ok := last["$project"].(bson.M)
	if !ok {
		t.Fatalf("stage cuối phải là $project, nhận: %v", last)
	}
	for _, field := range []string{"owner", "likesCount", "isLiked", "views", "isPublished"} {
		if _, ok := project[field]; !ok {
			t.Errorf("projection thiếu trường %s: %v", field, project)
		}
	}
}

func TestBuildVideoByIdPipeline_AnonymousCallerNeverLiked(t *testing.T) {
	// Caller ẩn danh dùng NilObjectID: $in không bao giờ khớp likedBy thật
	pipeline := BuildVideoByIdPipeline(primitive.NewObjectID(), primitive.NilObjectID)

	var addFields bson.M
	for _, stage := range pipeline {
		if af, ok := stage["$addFields"].(bson.M); ok {
			addFields = af
		}
	}
	if addFields == nil {
		t.Fatal("pipeline thiếu stage $addFields")
	}
	isLiked, ok := addFields["isLiked"].(bson.M)
	if !ok {
		t.Fatalf("isLiked phải là biểu thức $in, nhận: %v", addFields["isLiked"])
	}
	in, ok := isLiked["$in"].(bson.A)
	if !ok || len(in) != 2 {
		t.Fatalf("isLiked.$in sai dạng: %v", isLiked)
	}
	if in[0] != primitive.NilObjectID {
		t.Errorf("caller ẩn danh phải so $in với NilObjectID, nhận: %v", in[0])
	}
}
