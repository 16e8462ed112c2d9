package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/itchan-dev/forum/internal/domain"
	internal_errors "github.com/itchan-dev/forum/internal/errors"
	"github.com/itchan-dev/forum/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		storage := &MockChannelStorage{}
		service := NewChannel(storage, validation.New())

		channel, err := service.Create(ctx, domain.ChannelCreationData{Name: " Laravel ", Slug: "Laravel"})
		require.NoError(t, err)
		assert.Equal(t, "Laravel", channel.Name)
		assert.Equal(t, "laravel", channel.Slug)
	})

	t.Run("Bad slug", func(t *testing.T) {
		service := NewChannel(&MockChannelStorage{}, validation.New())

		_, err := service.Create(ctx, domain.ChannelCreationData{Name: "Laravel", Slug: "not a slug"})
		ve, ok := internal_errors.AsValidation(err)
		require.True(t, ok)
		assert.True(t, ve.Has("slug"))
	})

	t.Run("Duplicate", func(t *testing.T) {
		storage := &MockChannelStorage{
			createChannelFunc: func(ctx context.Context, creationData domain.ChannelCreationData) (domain.Channel, error) {
				return domain.Channel{}, internal_errors.Conflict("Channel with this slug already exists")
			},
		}
		_, err := NewChannel(storage, validation.New()).Create(ctx, domain.ChannelCreationData{Name: "Vue", Slug: "vue"})
		assert.True(t, internal_errors.HasStatusCode(err, http.StatusConflict))
	})
}

func TestChannelList(t *testing.T) {
	channels, err := NewChannel(&MockChannelStorage{}, &MockValidator{}).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, channels)
}
