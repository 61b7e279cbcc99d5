// Package subscriptionsvc - Service đăng ký kênh (subscriptions).
package subscriptionsvc

import (
	"context"
	"errors"

	basesvc "video_tube/internal/api/base/service"
	submodels "video_tube/internal/api/subscription/models"
	"video_tube/internal/common"
	"video_tube/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SubscriptionService xử lý nghiệp vụ đăng ký kênh.
type SubscriptionService struct {
	*basesvc.BaseServiceMongoImpl[submodels.Subscription]
	userColl *mongo.Collection
}

// NewSubscriptionService tạo SubscriptionService mới.
func NewSubscriptionService() *SubscriptionService {
	return &SubscriptionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[submodels.Subscription](
			global.RegistryCollections.MustGet(global.MongoDB_ColNames.Subscriptions),
		),
		userColl: global.RegistryCollections.MustGet(global.MongoDB_ColNames.Users),
	}
}

// ToggleSubscription hủy đăng ký nếu đã đăng ký, chưa thì đăng ký mới.
// Thao tác nguyên tử như toggle like: FindOneAndDelete trước, unique index hấp thụ race.
// Kênh không tồn tại → ErrUserNotFound.
func (s *SubscriptionService) ToggleSubscription(ctx context.Context, channelID, subscriber primitive.ObjectID) (bool, error) {
	count, err := s.userColl.CountDocuments(ctx, bson.M{"_id": channelID})
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	if count == 0 {
		return false, common.ErrUserNotFound
	}

	filter := bson.M{"subscriber": subscriber, "channel": channelID}
	_, err = s.FindOneAndDelete(ctx, filter, nil)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return false, err
	}

	doc := submodels.Subscription{Subscriber: subscriber, Channel: channelID}
	if _, err := s.InsertOne(ctx, doc); err != nil {
		// Request song song đã insert trước → coi như đã đăng ký
		if errors.Is(err, common.ErrMongoDuplicate) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// BuildChannelSubscribersPipeline dựng pipeline danh sách subscriber của một kênh:
// thông tin từng subscriber, kênh được truy vấn có đăng ký ngược lại subscriber đó không
// và số subscriber của chính subscriber đó.
func BuildChannelSubscribersPipeline(channelID primitive.ObjectID) []bson.M {
	return []bson.M{
		{"$match": bson.M{"channel": channelID}},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Users,
			"localField":   "subscriber",
			"foreignField": "_id",
			"as":           "subscriber",
			"pipeline": []bson.M{
				{"$lookup": bson.M{
					"from":         global.MongoDB_ColNames.Subscriptions,
					"localField":   "_id",
					"foreignField": "channel",
					"as":           "subscribedToSubscriber",
				}},
				{"$addFields": bson.M{
					"subscribedToSubscriber": bson.M{
						"$in": bson.A{channelID, "$subscribedToSubscriber.subscriber"},
					},
					"subscribersCount": bson.M{"$size": "$subscribedToSubscriber"},
				}},
				{"$project": bson.M{
					"username":               1,
					"fullName":               1,
					"avatar":                 1,
					"subscribedToSubscriber": 1,
					"subscribersCount":       1,
				}},
			},
		}},
		{"$unwind": "$subscriber"},
		{"$project": bson.M{
			"subscriber": 1,
			"createdAt":  1,
		}},
	}
}

// BuildSubscribedChannelsPipeline dựng pipeline danh sách kênh một người dùng đã đăng ký,
// kèm latestVideo là video publish mới nhất của từng kênh.
func BuildSubscribedChannelsPipeline(subscriberID primitive.ObjectID) []bson.M {
	return []bson.M{
		{"$match": bson.M{"subscriber": subscriberID}},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Users,
			"localField":   "channel",
			"foreignField": "_id",
			"as":           "subscribedChannel",
			"pipeline": []bson.M{
				{"$lookup": bson.M{
					"from":         global.MongoDB_ColNames.Videos,
					"localField":   "_id",
					"foreignField": "owner",
					"as":           "videos",
					"pipeline": []bson.M{
						{"$match": bson.M{"isPublished": true}},
						{"$sort": bson.M{"createdAt": -1}},
						{"$limit": 1},
					},
				}},
				{"$addFields": bson.M{
					"latestVideo": bson.M{"$first": "$videos"},
				}},
				{"$project": bson.M{
					"username":    1,
					"fullName":    1,
					"avatar":      1,
					"latestVideo": 1,
				}},
			},
		}},
		{"$unwind": "$subscribedChannel"},
		{"$project": bson.M{
			"subscribedChannel": 1,
			"createdAt":         1,
		}},
	}
}

// GetChannelSubscribers trả về danh sách subscriber của một kênh.
// Kênh phải tồn tại.
func (s *SubscriptionService) GetChannelSubscribers(ctx context.Context, channelID primitive.ObjectID) ([]bson.M, error) {
	count, err := s.userColl.CountDocuments(ctx, bson.M{"_id": channelID})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if count == 0 {
		return nil, common.ErrUserNotFound
	}
	return s.Aggregate(ctx, BuildChannelSubscribersPipeline(channelID))
}

// GetSubscribedChannels trả về danh sách kênh người dùng đã đăng ký.
func (s *SubscriptionService) GetSubscribedChannels(ctx context.Context, subscriberID primitive.ObjectID) ([]bson.M, error) {
	return s.Aggregate(ctx, BuildSubscribedChannelsPipeline(subscriberID))
}
