package models

// ChannelProfile is the denormalized channel view computed over the
// subscription edges. Only public-safe fields are projected; credential and
// token fields never enter this struct.
type ChannelProfile struct {
	Fullname                  string `json:"fullname" db:"fullname"`
	Username                  string `json:"username" db:"username"`
	Email                     string `json:"email" db:"email"`
	AvatarURL                 string `json:"avatar_url" db:"avatar_url"`
	CoverImageURL             string `json:"cover_image_url" db:"cover_image_url"`
	SubscribersCount          int64  `json:"subscribers_count" db:"subscribers_count"`                       // Edges pointing at this channel
	ChannelsSubscribedToCount int64  `json:"channels_subscribed_to_count" db:"channels_subscribed_to_count"` // Edges leaving this user
	IsSubscribed              bool   `json:"is_subscribed" db:"is_subscribed"`                               // Whether the viewer subscribes to this channel
}
