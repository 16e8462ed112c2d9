package api

import "github.com/itchan-dev/forum/internal/domain"

// Request DTOs
// Field checks happen on the domain creation data in the service layer.

type CreateThreadRequest struct {
	Title     string `json:"title" form:"title"`
	Body      string `json:"body" form:"body"`
	ChannelId int64  `json:"channel_id" form:"channel_id"`
}

type CreateReplyRequest struct {
	Body string `json:"body" form:"body"`
}

// Response DTOs

// ThreadSummary is one entry of a thread listing.
type ThreadSummary struct {
	domain.ThreadMetadata
	Path string `json:"path"`
}

type ReplyResponse struct {
	domain.Reply
	BodyHTML string `json:"body_html"`
}

type ThreadResponse struct {
	domain.ThreadMetadata
	Path     string          `json:"path"`
	BodyHTML string          `json:"body_html"`
	Replies  []ReplyResponse `json:"replies"`
}

func NewThreadSummaries(threads []domain.ThreadMetadata) []ThreadSummary {
	res := make([]ThreadSummary, len(threads))
	for i, t := range threads {
		res[i] = ThreadSummary{ThreadMetadata: t, Path: t.Path()}
	}
	return res
}
