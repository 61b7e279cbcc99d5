// Package tweetsvc - Test pipeline tweet theo kênh (không cần DB).
package tweetsvc

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

func TestBuildUserTweetsPipeline_MatchesOwner(t *testing.T) {
	owner := primitive.NewObjectID()

	pipeline := BuildUserTweetsPipeline(owner, primitive.NilObjectID)
	if len(pipeline) == 0 {
		t.Fatal("pipeline rỗng")
	}
	match, ok := pipeline[0]["$match"].(bson.M)
	if !ok {
		t.Fatalf("stage đầu phải là $match, nhận: %v", pipeline[0])
	}
	if match["owner"] != owner {
		t.Errorf("$match phải lọc theo owner: %v", match)
	}
}

func TestBuildUserTweetsPipeline_ProjectsOwnerDetailsAndLikes(t *testing.T) {
	caller := primitive.NewObjectID()

	pipeline := BuildUserTweetsPipeline(primitive.NewObjectID(), caller)

	last := pipeline[len(pipeline)-1]
	project, ok := last["$project"].(bson.M)
	if !ok {
		t.Fatalf("stage cuối phải là $project, nhận: %v", last)
	}
	for _, field := range []string{"content", "ownerDetails", "likesCount", "isLiked"} {
		if _, ok := project[field]; !ok {
			t.Errorf("projection thiếu trường %s: %v", field, project)
		}
	}

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
	if !ok || len(in) != 2 || in[0] != caller {
		t.Errorf("isLiked phải so caller với likes.likedBy: %v", isLiked)
	}
}
