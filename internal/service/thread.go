package service

import (
	"context"
	"strings"

	"github.com/itchan-dev/forum/internal/domain"
	internal_errors "github.com/itchan-dev/forum/internal/errors"
	"github.com/itchan-dev/forum/internal/logger"
	"github.com/itchan-dev/forum/internal/middleware/metrics"
)

type ThreadService interface {
	Create(ctx context.Context, creationData domain.ThreadCreationData) (domain.Thread, error)
	Get(ctx context.Context, channel domain.ChannelSlug, id domain.ThreadId) (domain.Thread, error)
	GetById(ctx context.Context, id domain.ThreadId) (domain.ThreadMetadata, error)
	Delete(ctx context.Context, actor domain.User, id domain.ThreadId) error
}

type Thread struct {
	storage   ThreadStorage
	validator Validator
	policy    DeletionPolicy
}

type ThreadStorage interface {
	CreateThread(ctx context.Context, creationData domain.ThreadCreationData) (domain.ThreadMetadata, error)
	Thread(ctx context.Context, channel domain.ChannelSlug, id domain.ThreadId) (domain.Thread, error)
	ThreadMetadata(ctx context.Context, id domain.ThreadId) (domain.ThreadMetadata, error)
	DeleteThread(ctx context.Context, id domain.ThreadId) (int64, error)
}

func NewThread(storage ThreadStorage, validator Validator, policy DeletionPolicy) *Thread {
	return &Thread{storage: storage, validator: validator, policy: policy}
}

// Create validates and stores a new thread. Nothing is written when any field is rejected.
func (t *Thread) Create(ctx context.Context, creationData domain.ThreadCreationData) (domain.Thread, error) {
	creationData.Title = strings.TrimSpace(creationData.Title)
	creationData.Body = strings.TrimSpace(creationData.Body)
	if err := t.validator.Struct(creationData); err != nil {
		return domain.Thread{}, err
	}

	metadata, err := t.storage.CreateThread(ctx, creationData)
	if err != nil {
		if _, ok := internal_errors.AsValidation(err); !ok {
			logger.Log.Error("failed to create thread", "channel_id", creationData.ChannelId, "user_id", creationData.Author.Id, "error", err)
		}
		return domain.Thread{}, err
	}
	metrics.ThreadsCreated.Inc()
	return domain.Thread{ThreadMetadata: metadata, Replies: []domain.Reply{}}, nil
}

func (t *Thread) Get(ctx context.Context, channel domain.ChannelSlug, id domain.ThreadId) (domain.Thread, error) {
	return t.storage.Thread(ctx, channel, id)
}

func (t *Thread) GetById(ctx context.Context, id domain.ThreadId) (domain.ThreadMetadata, error) {
	return t.storage.ThreadMetadata(ctx, id)
}

// Delete removes the thread and all of its replies if actor is allowed to.
func (t *Thread) Delete(ctx context.Context, actor domain.User, id domain.ThreadId) error {
	thread, err := t.storage.ThreadMetadata(ctx, id)
	if err != nil {
		return err
	}
	if !t.policy.CanDelete(actor, thread) {
		return internal_errors.Forbidden("You are not allowed to delete this thread")
	}

	deletedReplies, err := t.storage.DeleteThread(ctx, id)
	if err != nil {
		return err
	}
	metrics.ThreadsDeleted.Inc()
	metrics.RepliesCascaded.Add(float64(deletedReplies))
	logger.Log.Info("thread deleted", "thread_id", id, "channel", thread.Channel, "actor_id", actor.Id, "replies_deleted", deletedReplies)
	return nil
}
