// Package playlistsvc - Test pipeline playlist (không cần DB).
package playlistsvc

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

// tìm stage $lookup lồng video trong pipeline playlist
func findVideosLookup(t *testing.T, pipeline []bson.M) bson.M {
	t.Helper()
	for _, stage := range pipeline {
		if lookup, ok := stage["$lookup"].(bson.M); ok {
			if lookup["as"] == "videos" {
				return lookup
			}
		}
	}
	t.Fatal("pipeline thiếu $lookup videos")
	return nil
}

func TestBuildPlaylistByIdPipeline_CountsOnlyPublished(t *testing.T) {
	playlistID := primitive.NewObjectID()

	pipeline := BuildPlaylistByIdPipeline(playlistID)
	match, ok := pipeline[0]["$match"].(bson.M)
	if !ok || match["_id"] != playlistID {
		t.Fatalf("stage đầu phải $match theo _id playlist: %v", pipeline[0])
	}

	lookup := findVideosLookup(t, pipeline)
	inner, ok := lookup["pipeline"].([]bson.M)
	if !ok || len(inner) == 0 {
		t.Fatalf("$lookup videos phải có pipeline lồng: %v", lookup)
	}
	innerMatch, ok := inner[0]["$match"].(bson.M)
	if !ok || innerMatch["isPublished"] != true {
		t.Errorf("video chưa publish không được tính vào playlist: %v", inner[0])
	}
}

func TestBuildPlaylistByIdPipeline_AggregatesTotals(t *testing.T) {
	pipeline := BuildPlaylistByIdPipeline(primitive.NewObjectID())

	var totals bson.M
	for _, stage := range pipeline {
		if af, ok := stage["$addFields"].(bson.M); ok {
			if _, ok := af["totalVideos"]; ok {
				totals = af
			}
		}
	}
	if totals == nil {
		t.Fatal("pipeline thiếu $addFields totalVideos/totalViews")
	}
	size, ok := totals["totalVideos"].(bson.M)
	if !ok || size["$size"] != "$videos" {
		t.Errorf("totalVideos phải là $size trên videos: %v", totals)
	}
	sum, ok := totals["totalViews"].(bson.M)
	if !ok || sum["$sum"] != "$videos.views" {
		t.Errorf("totalViews phải là $sum trên videos.views: %v", totals)
	}
}

func TestBuildUserPlaylistsPipeline_ListOmitsVideos(t *testing.T) {
	owner := primitive.NewObjectID()

	pipeline := BuildUserPlaylistsPipeline(owner)
	match, ok := pipeline[0]["$match"].(bson.M)
	if !ok || match["owner"] != owner {
		t.Fatalf("stage đầu phải $match theo owner: %v", pipeline[0])
	}

	last := pipeline[len(pipeline)-1]
	project, ok := last["$project"].(bson.M)
	if !ok {
		t.Fatalf("stage cuối phải là $project, nhận: %v", last)
	}
	// Danh sách chỉ cần số liệu tổng hợp, không trả mảng videos
	if _, ok := project["videos"]; ok {
		t.Errorf("danh sách playlist không được trả mảng videos: %v", project)
	}
	for _, field := range []string{"name", "totalVideos", "totalViews"} {
		if _, ok := project[field]; !ok {
			t.Errorf("projection thiếu trường %s: %v", field, project)
		}
	}
}

func TestBuildUserPlaylistsPipeline_SortRecentlyUpdated(t *testing.T) {
	pipeline := BuildUserPlaylistsPipeline(primitive.NewObjectID())

	var sort bson.M
	for _, stage := range pipeline {
		if s, ok := stage["$sort"].(bson.M); ok {
			sort = s
		}
	}
	if sort == nil {
		t.Fatal("pipeline thiếu stage $sort")
	}
	if sort["updatedAt"] != -1 {
		t.Errorf("playlist cập nhật gần nhất phải lên đầu, nhận: %v", sort)
	}
}
