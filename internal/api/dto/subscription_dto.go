package dto

import "time"

// SubscriptionStatus 订阅切换结果
type SubscriptionStatus struct {
	Subscribed       bool  `json:"subscribed"`
	TotalSubscribers int64 `json:"totalSubscribers"`
}

// SubscriberInfo 频道订阅者
type SubscriberInfo struct {
	SubscribedAt time.Time  `json:"subscribedAt"`
	User         OwnerBrief `json:"user"`
}

// SubscribedChannelInfo 已订阅频道
type SubscribedChannelInfo struct {
	SubscribedAt time.Time  `json:"subscribedAt"`
	Channel      OwnerBrief `json:"channel"`
}

// SubscriberListData 订阅者分页数据
type SubscriberListData struct {
	Items      []SubscriberInfo `json:"items"`
	Page       int64            `json:"page"`
	Limit      int64            `json:"limit"`
	TotalItems int64            `json:"totalItems"`
	TotalPages int64            `json:"totalPages"`
}

// SubscribedChannelListData 已订阅频道分页数据
type SubscribedChannelListData struct {
	Items      []SubscribedChannelInfo `json:"items"`
	Page       int64                   `json:"page"`
	Limit      int64                   `json:"limit"`
	TotalItems int64                   `json:"totalItems"`
	TotalPages int64                   `json:"totalPages"`
}
