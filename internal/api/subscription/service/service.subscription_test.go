// Package subscriptionsvc - Test pipeline subscriber/kênh đã đăng ký (không cần DB).
package subscriptionsvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"video_tube/internal/global"
)

func init() {
	global.MongoDB_ColNames.Users = "users"
	global.MongoDB_ColNames.Videos = "videos"
	global.MongoDB_ColNames.Subscriptions = "subscriptions"
}

func TestBuildChannelSubscribersPipeline_MatchesChannel(t *testing.T) {
	channelID := primitive.NewObjectID()

	pipeline := BuildChannelSubscribersPipeline(channelID)
	if len(pipeline) == 0 {
		t.Fatal("pipeline rỗng")
	}
	match, ok := pipeline[0]["$match"].(bson.M)
	if !ok || match["channel"] != channelID {
		t.Fatalf("stage đầu phải $match theo channel: %v", pipeline[0])
	}
}

func TestBuildChannelSubscribersPipeline_FlagsMutualSubscription(t *testing.T) {
	channelID := primitive.NewObjectID()

	pipeline := BuildChannelSubscribersPipeline(channelID)

	var lookup bson.M
	for _, stage := range pipeline {
		if l, ok := stage["$lookup"].(bson.M); ok && l["as"] == "subscriber" {
			lookup = l
		}
	}
	if lookup == nil {
		t.Fatal("pipeline thiếu $lookup subscriber")
	}
	inner, ok := lookup["pipeline"].([]bson.M)
	if !ok {
		t.Fatalf("$lookup subscriber phải có pipeline lồng: %v", lookup)
	}

	var addFields bson.M
	for _, stage := range inner {
		if af, ok := stage["$addFields"].(bson.M); ok {
			addFields = af
		}
	}
	if addFields == nil {
		t.Fatal("pipeline lồng thiếu $addFields")
	}
	mutual, ok := addFields["subscribedToSubscriber"].(bson.M)
	if !ok {
		t.Fatalf("subscribedToSubscriber phải là biểu thức $in: %v", addFields)
	}
	in, ok := mutual["$in"].(bson.A)
	if !ok || len(in) != 2 || in[0] != channelID {
		t.Errorf("cờ đăng ký ngược phải so channelID với danh sách subscriber: %v", mutual)
	}
}

func TestBuildSubscribedChannelsPipeline_LatestVideoOnlyPublished(t *testing.T) {
	subscriberID := primitive.NewObjectID()

	pipeline := BuildSubscribedChannelsPipeline(subscriberID)
	match, ok := pipeline[0]["$match"].(bson.M)
	if !ok || match["subscriber"] != subscriberID {
		t.Fatalf("stage đầu phải $match theo subscriber: %v", pipeline[0])
	}

	var channelLookup bson.M
	for _, stage := range pipeline {
		if l, ok := stage["$lookup"].(bson.M); ok && l["as"] == "subscribedChannel" {
			channelLookup = l
		}
	}
	if channelLookup == nil {
		t.Fatal("pipeline thiếu $lookup subscribedChannel")
	}
	inner, ok := channelLookup["pipeline"].([]bson.M)
	if !ok {
		t.Fatalf("$lookup subscribedChannel phải có pipeline lồng: %v", channelLookup)
	}

	var videosLookup bson.M
	for _, stage := range inner {
		if l, ok := stage["$lookup"].(bson.M); ok && l["as"] == "videos" {
			videosLookup = l
		}
	}
	if videosLookup == nil {
		t.Fatal("pipeline kênh thiếu $lookup videos cho latestVideo")
	}
	videoStages, ok := videosLookup["pipeline"].([]bson.M)
	if !ok || len(videoStages) < 3 {
		t.Fatalf("lookup videos phải match/sort/limit: %v", videosLookup)
	}
	if m, ok := videoStages[0]["$match"].(bson.M); !ok || m["isPublished"] != true {
		t.Errorf("latestVideo chỉ được lấy từ video đã publish: %v", videoStages[0])
	}
	if limit, ok := videoStages[2]["$limit"]; !ok || limit != 1 {
		t.Errorf("latestVideo chỉ lấy đúng 1 video: %v", videoStages[2])
	}
}
