// Package usersvc - Test pipeline lịch sử xem (không cần DB).
package usersvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"video_tube/internal/global"
)

func init() {
	global.MongoDB_ColNames.Users = "users"
	global.MongoDB_ColNames.Videos = "videos"
}

func TestBuildWatchHistoryPipeline_MatchesUser(t *testing.T) {
	userID := primitive.NewObjectID()

	pipeline := BuildWatchHistoryPipeline(userID)
	if len(pipeline) == 0 {
		t.Fatal("pipeline rỗng")
	}
	match, ok := pipeline[0]["$match"].(bson.M)
	if !ok || match["_id"] != userID {
		t.Fatalf("stage đầu phải $match theo _id user: %v", pipeline[0])
	}
}

func TestBuildWatchHistoryPipeline_LooksUpVideosWithOwner(t *testing.T) {
	pipeline := BuildWatchHistoryPipeline(primitive.NewObjectID())

	var lookup bson.M
	for _, stage := range pipeline {
		if l, ok := stage["$lookup"].(bson.M); ok && l["as"] == "watchHistory" {
			lookup = l
		}
	}
	if lookup == nil {
		t.Fatal("pipeline thiếu $lookup watchHistory")
	}
	if lookup["localField"] != "watchHistory" || lookup["foreignField"] != "_id" {
		t.Errorf("lookup phải nối watchHistory với _id video: %v", lookup)
	}

	inner, ok := lookup["pipeline"].([]bson.M)
	if !ok || len(inner) == 0 {
		t.Fatalf("lookup watchHistory phải có pipeline lồng nạp owner: %v", lookup)
	}
	ownerLookup, ok := inner[0]["$lookup"].(bson.M)
	if !ok || ownerLookup["as"] != "owner" {
		t.Errorf("pipeline lồng phải lookup owner của từng video: %v", inner[0])
	}

	last := pipeline[len(pipeline)-1]
	project, ok := last["$project"].(bson.M)
	if !ok {
		t.Fatalf("stage cuối phải là $project, nhận: %v", last)
	}
	if _, ok := project["watchHistory"]; !ok {
		t.Errorf("projection phải giữ watchHistory: %v", project)
	}
}
