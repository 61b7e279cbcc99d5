// Package commentsvc - Test pipeline danh sách bình luận (không cần DB).
package commentsvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"video_tube/internal/global"
)

func init() {
	global.MongoDB_ColNames.Users = "users"
	global.MongoDB_ColNames.Likes = "likes"
}

func TestBuildVideoCommentsPipeline_MatchesVideo(t *testing.T) {
	videoID := primitive.NewObjectID()

	pipeline := BuildVideoCommentsPipeline(videoID, primitive.NilObjectID)
	if len(pipeline) == 0 {
		t.Fatal("pipeline rỗng")
	}
	match, ok := pipeline[0]["$match"].(bson.M)
	if !ok {
		t.Fatalf("stage đầu phải là $match, nhận: %v", pipeline[0])
	}
	if match["video"] != videoID {
		t.Errorf("$match phải lọc theo video: %v", match)
	}
}

func TestBuildVideoCommentsPipeline_EnrichesLikesAndOwner(t *testing.T) {
	caller := primitive.NewObjectID()

	pipeline := BuildVideoCommentsPipeline(primitive.NewObjectID(), caller)

	var addFields bson.M
	for _, stage := range pipeline {
		if af, ok := stage["$addFields"].(bson.M); ok {
			addFields = af
		}
	}
	if addFields == nil {
		t.Fatal("pipeline thiếu stage $addFields")
	}
	if _, ok := addFields["likesCount"]; !ok {
		t.Errorf("$addFields thiếu likesCount: %v", addFields)
	}
	isLiked, ok := addFields["isLiked"].(bson.M)
	if !ok {
		t.Fatalf("isLiked phải là biểu thức $in, nhận: %v", addFields["isLiked"])
	}
	in, ok := isLiked["$in"].(bson.A)
	if !ok || len(in) != 2 || in[0] != caller {
		t.Errorf("isLiked phải so caller với likes.likedBy: %v", isLiked)
	}
	owner, ok := addFields["owner"].(bson.M)
	if !ok {
		t.Fatalf("owner phải flatten bằng $first, nhận: %v", addFields["owner"])
	}
	if owner["$first"] != "$owner" {
		t.Errorf("owner.$first sai: %v", owner)
	}
}

func TestBuildVideoCommentsPipeline_SortNewestFirst(t *testing.T) {
	pipeline := BuildVideoCommentsPipeline(primitive.NewObjectID(), primitive.NilObjectID)

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
		t.Errorf("bình luận mới phải lên đầu, nhận: %v", sort)
	}
}
