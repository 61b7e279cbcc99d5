// Package likesvc - Test filter toggle và pipeline liked videos (không cần DB).
package likesvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"video_tube/internal/global"
)

func init() {
	global.MongoDB_ColNames.Users = "users"
	global.MongoDB_ColNames.Videos = "videos"
	global.MongoDB_ColNames.Likes = "likes"
}

func TestBuildToggleFilter_PerTargetType(t *testing.T) {
	target := primitive.NewObjectID()
	actor := primitive.NewObjectID()

	for _, field := range []string{"video", "comment", "tweet"} {
		filter := BuildToggleFilter(field, target, actor)
		if filter[field] != target {
			t.Errorf("filter thiếu trường đích %s: %v", field, filter)
		}
		if filter["likedBy"] != actor {
			t.Errorf("filter phải định danh theo likedBy: %v", filter)
		}
		if len(filter) != 2 {
			t.Errorf("filter toggle chỉ gồm đích và likedBy, nhận: %v", filter)
		}
	}
}

func TestBuildLikedVideosPipeline_OnlyVideoLikes(t *testing.T) {
	actor := primitive.NewObjectID()

	pipeline := BuildLikedVideosPipeline(actor)
	if len(pipeline) == 0 {
		t.Fatal("pipeline rỗng")
	}
	match, ok := pipeline[0]["$match"].(bson.M)
	if !ok {
		t.Fatalf("stage đầu phải là $match, nhận: %v", pipeline[0])
	}
	if match["likedBy"] != actor {
		t.Errorf("$match phải lọc theo likedBy: %v", match)
	}
	// Like trên comment/tweet không có trường video, phải bị loại
	exists, ok := match["video"].(bson.M)
	if !ok || exists["$exists"] != true {
		t.Errorf("$match phải yêu cầu trường video tồn tại: %v", match)
	}
}

func TestBuildLikedVideosPipeline_SortNewestFirst(t *testing.T) {
	pipeline := BuildLikedVideosPipeline(primitive.NewObjectID())

	var sort bson.M
	for _, stage := range pipeline {
		if s, ok := stage["$sort"].(bson.M); ok {
			sort = s
		}
	}
	if sort == nil {
		t.Fatal("pipeline thiếu stage $sort")
	}
	if sort["createdAt"] != -1 {
		t.Errorf("phải sắp xếp mới thích trước, nhận: %v", sort)
	}
}
