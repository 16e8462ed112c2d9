package setup

import (
	"context"
	"time"

	"github.com/itchan-dev/forum/internal/config"
	"github.com/itchan-dev/forum/internal/handler"
	"github.com/itchan-dev/forum/internal/jwt"
	"github.com/itchan-dev/forum/internal/logger"
	mw "github.com/itchan-dev/forum/internal/middleware"
	rl "github.com/itchan-dev/forum/internal/middleware/ratelimiter"
	"github.com/itchan-dev/forum/internal/service"
	"github.com/itchan-dev/forum/internal/storage/pg"
	"github.com/itchan-dev/forum/internal/validation"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *mw.Auth

	// nil when the matching limit is disabled
	ThreadLimiter *rl.UserRateLimiter
	ReplyLimiter  *rl.UserRateLimiter
	// per client IP on /login and /register
	AuthLimiter *rl.UserRateLimiter
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg.Private.Pg)
	if err != nil {
		return nil, err
	}
	if cfg.Public.MigrateOnStart {
		if err := storage.Migrate(); err != nil {
			storage.Cleanup()
			return nil, err
		}
	}

	policy, err := service.NewDeletionPolicy(cfg.Public.ThreadDeletionPolicy)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}

	jwt := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	validator := validation.New()

	auth := service.NewAuth(storage, jwt, validator, &cfg.Public)
	channel := service.NewChannel(storage, validator)
	thread := service.NewThread(storage, validator, policy)
	reply := service.NewReply(storage, validator)
	query := service.NewThreadQuery(storage)

	h := handler.New(auth, channel, thread, reply, query, storage, cfg)

	deps := &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		Jwt:            jwt,
		AuthMiddleware: mw.NewAuth(jwt, cfg.Public.LoginPath, cfg.Public.SecureCookies),
		AuthLimiter:    rl.New(1, 5, time.Hour),
	}
	if cfg.Public.ThreadsPerMinute > 0 {
		deps.ThreadLimiter = rl.PerMinute(cfg.Public.ThreadsPerMinute)
	}
	if cfg.Public.RepliesPerMinute > 0 {
		deps.ReplyLimiter = rl.PerMinute(cfg.Public.RepliesPerMinute)
	}
	logger.Log.Info("dependencies initialized", "deletion_policy", cfg.Public.ThreadDeletionPolicy)
	return deps, nil
}

func (d *Dependencies) Close() {
	if d.AuthLimiter != nil {
		d.AuthLimiter.Stop()
	}
	if d.ThreadLimiter != nil {
		d.ThreadLimiter.Stop()
	}
	if d.ReplyLimiter != nil {
		d.ReplyLimiter.Stop()
	}
	if err := d.Storage.Cleanup(); err != nil {
		logger.Log.Error("failed to close storage", "error", err)
	}
}
