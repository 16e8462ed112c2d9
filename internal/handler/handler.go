package handler

import (
	"context"

	"github.com/itchan-dev/forum/internal/config"
	"github.com/itchan-dev/forum/internal/markdown"
	"github.com/itchan-dev/forum/internal/service"
	"github.com/itchan-dev/forum/internal/validation"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth    service.AuthService
	channel service.ChannelService
	thread  service.ThreadService
	reply   service.ReplyService
	query   service.ThreadQueryService
	health  HealthChecker

	cfg       *config.Config
	renderer  *markdown.Renderer
	validator *validation.Validator
}

func New(auth service.AuthService, channel service.ChannelService, thread service.ThreadService, reply service.ReplyService, query service.ThreadQueryService, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{
		auth:      auth,
		channel:   channel,
		thread:    thread,
		reply:     reply,
		query:     query,
		health:    health,
		cfg:       cfg,
		renderer:  markdown.New(),
		validator: validation.New(),
	}
}
