package domain

type (
	UserId   = int64
	UserName = string
	Email    = string
	Password = string

	ChannelId   = int64
	ChannelName = string
	ChannelSlug = string

	ThreadId    = int64
	ThreadTitle = string

	ReplyId = int64

	// Body is markdown text of a thread opening post or a reply
	Body = string
)
