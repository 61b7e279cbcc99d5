// Package subscriptiondto - DTO cho domain Subscription.
package subscriptiondto

// ToggleResult kết quả toggle đăng ký kênh.
type ToggleResult struct {
	Subscribed bool `json:"subscribed"`
}
