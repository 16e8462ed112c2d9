package service

import (
	"context"
	"testing"

	"github.com/itchan-dev/forum/internal/domain"
	internal_errors "github.com/itchan-dev/forum/internal/errors"
	"github.com/itchan-dev/forum/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyCreate(t *testing.T) {
	ctx := context.Background()
	author := domain.User{Id: 2, Name: "jane"}

	t.Run("Success", func(t *testing.T) {
		storage := &MockReplyStorage{}
		service := NewReply(storage, validation.New())
		storage.createReplyFunc = func(ctx context.Context, creationData domain.ReplyCreationData) (domain.Reply, error) {
			assert.Equal(t, "Thanks!", creationData.Body)
			return domain.Reply{Id: 9, ThreadId: creationData.ThreadId, Channel: "vue", Body: creationData.Body}, nil
		}

		reply, err := service.Create(ctx, domain.ReplyCreationData{ThreadId: 4, Body: " Thanks! ", Author: author})
		require.NoError(t, err)
		assert.Equal(t, "/threads/vue/4", reply.ThreadPath())
	})

	t.Run("Empty body", func(t *testing.T) {
		storage := &MockReplyStorage{}
		service := NewReply(storage, validation.New())

		_, err := service.Create(ctx, domain.ReplyCreationData{ThreadId: 4, Body: "  \n ", Author: author})
		ve, ok := internal_errors.AsValidation(err)
		require.True(t, ok)
		assert.True(t, ve.Has("body"))
		assert.False(t, storage.createReplyCalled)
	})

	t.Run("Thread gone", func(t *testing.T) {
		storage := &MockReplyStorage{}
		service := NewReply(storage, validation.New())
		storage.createReplyFunc = func(ctx context.Context, creationData domain.ReplyCreationData) (domain.Reply, error) {
			return domain.Reply{}, internal_errors.NotFound("Thread not found")
		}

		_, err := service.Create(ctx, domain.ReplyCreationData{ThreadId: 4, Body: "late", Author: author})
		assert.True(t, internal_errors.IsNotFound(err))
	})
}

func TestReplyGet(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		storage := &MockReplyStorage{}
		storage.replyFunc = func(ctx context.Context, id domain.ReplyId) (domain.Reply, error) {
			return domain.Reply{Id: id, ThreadId: 4, Channel: "vue", Body: "Thanks!"}, nil
		}
		service := NewReply(storage, validation.New())

		reply, err := service.Get(ctx, 9)
		require.NoError(t, err)
		assert.Equal(t, "/threads/vue/4", reply.ThreadPath())
	})

	t.Run("Not found", func(t *testing.T) {
		storage := &MockReplyStorage{}
		storage.replyFunc = func(ctx context.Context, id domain.ReplyId) (domain.Reply, error) {
			return domain.Reply{}, internal_errors.NotFound("Reply not found")
		}
		service := NewReply(storage, validation.New())

		_, err := service.Get(ctx, 9)
		assert.True(t, internal_errors.IsNotFound(err))
	})
}
