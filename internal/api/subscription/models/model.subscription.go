// Package models - Subscription thuộc domain Subscription (subscriptions).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription lưu quan hệ đăng ký kênh (subscriptions).
// Unique index compound (subscriber, channel) chặn đăng ký trùng ở tầng lưu trữ.
type Subscription struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Subscriber primitive.ObjectID `json:"subscriber" bson:"subscriber" index:"compound:sub_subscriber_channel_unique"`
	Channel    primitive.ObjectID `json:"channel" bson:"channel" index:"single;compound:sub_subscriber_channel_unique"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single,order:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
