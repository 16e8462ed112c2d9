package service

import (
	"context"
	"strings"

	"github.com/itchan-dev/forum/internal/domain"
	internal_errors "github.com/itchan-dev/forum/internal/errors"
	"github.com/itchan-dev/forum/internal/logger"
	"github.com/itchan-dev/forum/internal/middleware/metrics"
)

type ReplyService interface {
	Create(ctx context.Context, creationData domain.ReplyCreationData) (domain.Reply, error)
	Get(ctx context.Context, id domain.ReplyId) (domain.Reply, error)
}

type Reply struct {
	storage   ReplyStorage
	validator Validator
}

type ReplyStorage interface {
	CreateReply(ctx context.Context, creationData domain.ReplyCreationData) (domain.Reply, error)
	Reply(ctx context.Context, id domain.ReplyId) (domain.Reply, error)
}

func NewReply(storage ReplyStorage, validator Validator) *Reply {
	return &Reply{storage: storage, validator: validator}
}

// Create adds a reply to its thread and increments the thread's replies count atomically.
func (r *Reply) Create(ctx context.Context, creationData domain.ReplyCreationData) (domain.Reply, error) {
	creationData.Body = strings.TrimSpace(creationData.Body)
	if err := r.validator.Struct(creationData); err != nil {
		return domain.Reply{}, err
	}

	reply, err := r.storage.CreateReply(ctx, creationData)
	if err != nil {
		if !internal_errors.IsNotFound(err) {
			logger.Log.Error("failed to create reply", "thread_id", creationData.ThreadId, "user_id", creationData.Author.Id, "error", err)
		}
		return domain.Reply{}, err
	}
	metrics.RepliesCreated.Inc()
	return reply, nil
}

// Get returns a single reply. Replies of a deleted thread are gone with it.
func (r *Reply) Get(ctx context.Context, id domain.ReplyId) (domain.Reply, error) {
	return r.storage.Reply(ctx, id)
}
