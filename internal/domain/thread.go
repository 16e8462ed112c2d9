package domain

import (
	"fmt"
	"time"
)

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Title     ThreadTitle `validate:"required,max=255"`
	Body      Body        `validate:"required,max=20000"`
	ChannelId ChannelId   `validate:"required,gt=0"`
	Author    User
}

type ThreadMetadata struct {
	Id           ThreadId    `json:"id"`
	UserId       UserId      `json:"user_id"`
	Author       UserName    `json:"author"`
	ChannelId    ChannelId   `json:"channel_id"`
	Channel      ChannelSlug `json:"channel"`
	Title        ThreadTitle `json:"title"`
	Body         Body        `json:"body"`
	RepliesCount int         `json:"replies_count"`
	CreatedAt    time.Time   `json:"created_at"`
}

type Thread struct {
	ThreadMetadata
	Replies []Reply `json:"replies"`
}

// ThreadPath is the canonical location of a thread.
func ThreadPath(channel ChannelSlug, id ThreadId) string {
	return fmt.Sprintf("/threads/%s/%d", channel, id)
}

func (t ThreadMetadata) Path() string {
	return ThreadPath(t.Channel, t.Id)
}

func (t ThreadMetadata) OwnedBy(user User) bool {
	return t.UserId == user.Id
}

// ThreadFilters selects and orders a thread listing.
// Zero value lists every thread, newest first.
type ThreadFilters struct {
	Channel ChannelSlug // exact channel slug
	By      UserName    // exact author display name
	Popular bool        // most replies first, oldest first on ties
}
