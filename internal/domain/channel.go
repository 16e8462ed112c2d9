package domain

import "time"

type ChannelCreationData struct {
	Name ChannelName `validate:"required,max=50"`
	Slug ChannelSlug `validate:"required,max=50,slug"`
}

type Channel struct {
	Id        ChannelId   `json:"id"`
	Name      ChannelName `json:"name"`
	Slug      ChannelSlug `json:"slug"`
	CreatedAt time.Time   `json:"created_at"`
}
