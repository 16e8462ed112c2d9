package domain

import "time"

type ReplyCreationData struct {
	ThreadId ThreadId `validate:"required,gt=0"`
	Body     Body     `validate:"required,max=20000"`
	Author   User
}

type Reply struct {
	Id        ReplyId     `json:"id"`
	ThreadId  ThreadId    `json:"thread_id"`
	Channel   ChannelSlug `json:"channel"` // slug of the owning thread's channel
	UserId    UserId      `json:"user_id"`
	Author    UserName    `json:"author"`
	Body      Body        `json:"body"`
	CreatedAt time.Time   `json:"created_at"`
}

// ThreadPath is where the reply is displayed.
func (r Reply) ThreadPath() string {
	return ThreadPath(r.Channel, r.ThreadId)
}
