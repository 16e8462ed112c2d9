package service

import (
	"context"
	"strings"

	"github.com/itchan-dev/forum/internal/domain"
	"github.com/itchan-dev/forum/internal/logger"
)

type ChannelService interface {
	List(ctx context.Context) ([]domain.Channel, error)
	Get(ctx context.Context, slug domain.ChannelSlug) (domain.Channel, error)
	Create(ctx context.Context, creationData domain.ChannelCreationData) (domain.Channel, error)
}

type Channel struct {
	storage   ChannelStorage
	validator Validator
}

type ChannelStorage interface {
	Channels(ctx context.Context) ([]domain.Channel, error)
	Channel(ctx context.Context, slug domain.ChannelSlug) (domain.Channel, error)
	CreateChannel(ctx context.Context, creationData domain.ChannelCreationData) (domain.Channel, error)
}

func NewChannel(storage ChannelStorage, validator Validator) *Channel {
	return &Channel{storage: storage, validator: validator}
}

func (c *Channel) List(ctx context.Context) ([]domain.Channel, error) {
	channels, err := c.storage.Channels(ctx)
	if err != nil {
		return nil, err
	}
	if channels == nil {
		channels = []domain.Channel{}
	}
	return channels, nil
}

func (c *Channel) Get(ctx context.Context, slug domain.ChannelSlug) (domain.Channel, error) {
	return c.storage.Channel(ctx, slug)
}

func (c *Channel) Create(ctx context.Context, creationData domain.ChannelCreationData) (domain.Channel, error) {
	creationData.Name = strings.TrimSpace(creationData.Name)
	creationData.Slug = strings.ToLower(strings.TrimSpace(creationData.Slug))
	if err := c.validator.Struct(creationData); err != nil {
		return domain.Channel{}, err
	}

	channel, err := c.storage.CreateChannel(ctx, creationData)
	if err != nil {
		return domain.Channel{}, err
	}
	logger.Log.Info("channel created", "slug", channel.Slug, "id", channel.Id)
	return channel, nil
}
