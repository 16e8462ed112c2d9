package handler

import (
	"context"
	"iter"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/forum/internal/config"
	"github.com/itchan-dev/forum/internal/domain"
	mw "github.com/itchan-dev/forum/internal/middleware"
)

type MockAuthService struct {
	MockRegister func(ctx context.Context, creds domain.Credentials) (domain.UserId, error)
	MockLogin    func(ctx context.Context, email domain.Email, password domain.Password) (string, error)
}

func (m *MockAuthService) Register(ctx context.Context, creds domain.Credentials) (domain.UserId, error) {
	if m.MockRegister != nil {
		return m.MockRegister(ctx, creds)
	}
	return 1, nil
}

func (m *MockAuthService) Login(ctx context.Context, email domain.Email, password domain.Password) (string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(ctx, email, password)
	}
	return "token", nil
}

type MockChannelService struct {
	MockList   func(ctx context.Context) ([]domain.Channel, error)
	MockGet    func(ctx context.Context, slug domain.ChannelSlug) (domain.Channel, error)
	MockCreate func(ctx context.Context, creationData domain.ChannelCreationData) (domain.Channel, error)
}

func (m *MockChannelService) List(ctx context.Context) ([]domain.Channel, error) {
	if m.MockList != nil {
		return m.MockList(ctx)
	}
	return []domain.Channel{}, nil
}

func (m *MockChannelService) Get(ctx context.Context, slug domain.ChannelSlug) (domain.Channel, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, slug)
	}
	return domain.Channel{Slug: slug}, nil
}

func (m *MockChannelService) Create(ctx context.Context, creationData domain.ChannelCreationData) (domain.Channel, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, creationData)
	}
	return domain.Channel{Id: 1, Name: creationData.Name, Slug: creationData.Slug}, nil
}

type MockThreadService struct {
	MockCreate  func(ctx context.Context, creationData domain.ThreadCreationData) (domain.Thread, error)
	MockGet     func(ctx context.Context, channel domain.ChannelSlug, id domain.ThreadId) (domain.Thread, error)
	MockGetById func(ctx context.Context, id domain.ThreadId) (domain.ThreadMetadata, error)
	MockDelete  func(ctx context.Context, actor domain.User, id domain.ThreadId) error
}

func (m *MockThreadService) Create(ctx context.Context, creationData domain.ThreadCreationData) (domain.Thread, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, creationData)
	}
	return domain.Thread{}, nil
}

func (m *MockThreadService) Get(ctx context.Context, channel domain.ChannelSlug, id domain.ThreadId) (domain.Thread, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, channel, id)
	}
	return domain.Thread{}, nil
}

func (m *MockThreadService) GetById(ctx context.Context, id domain.ThreadId) (domain.ThreadMetadata, error) {
	if m.MockGetById != nil {
		return m.MockGetById(ctx, id)
	}
	return domain.ThreadMetadata{Id: id}, nil
}

func (m *MockThreadService) Delete(ctx context.Context, actor domain.User, id domain.ThreadId) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, actor, id)
	}
	return nil
}

type MockReplyService struct {
	MockCreate func(ctx context.Context, creationData domain.ReplyCreationData) (domain.Reply, error)
	MockGet    func(ctx context.Context, id domain.ReplyId) (domain.Reply, error)
}

func (m *MockReplyService) Get(ctx context.Context, id domain.ReplyId) (domain.Reply, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return domain.Reply{Id: id}, nil
}

func (m *MockReplyService) Create(ctx context.Context, creationData domain.ReplyCreationData) (domain.Reply, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, creationData)
	}
	return domain.Reply{}, nil
}

type MockThreadQueryService struct {
	MockCollect func(ctx context.Context, filters domain.ThreadFilters) ([]domain.ThreadMetadata, error)
}

func (m *MockThreadQueryService) List(ctx context.Context, filters domain.ThreadFilters) iter.Seq2[domain.ThreadMetadata, error] {
	return func(yield func(domain.ThreadMetadata, error) bool) {
		threads, err := m.Collect(ctx, filters)
		if err != nil {
			yield(domain.ThreadMetadata{}, err)
			return
		}
		for _, t := range threads {
			if !yield(t, nil) {
				return
			}
		}
	}
}

func (m *MockThreadQueryService) Collect(ctx context.Context, filters domain.ThreadFilters) ([]domain.ThreadMetadata, error) {
	if m.MockCollect != nil {
		return m.MockCollect(ctx, filters)
	}
	return []domain.ThreadMetadata{}, nil
}

type MockHealth struct {
	err error
}

func (m *MockHealth) Ping(ctx context.Context) error {
	return m.err
}

type mocks struct {
	auth    *MockAuthService
	channel *MockChannelService
	thread  *MockThreadService
	reply   *MockReplyService
	query   *MockThreadQueryService
	health  *MockHealth
}

func newTestHandler() (*Handler, *mocks) {
	m := &mocks{
		auth:    &MockAuthService{},
		channel: &MockChannelService{},
		thread:  &MockThreadService{},
		reply:   &MockReplyService{},
		query:   &MockThreadQueryService{},
		health:  &MockHealth{},
	}
	cfg := &config.Config{Public: config.Public{JwtTTL: time.Hour, LoginPath: "/login"}}
	return New(m.auth, m.channel, m.thread, m.reply, m.query, m.health, cfg), m
}

// asUser stands in for the auth middleware.
func asUser(user *domain.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user != nil {
				r = r.WithContext(mw.WithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// newTestRouter mounts the thread routes the way the real router does.
func newTestRouter(h *Handler, user *domain.User) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/threads", h.ListThreads)
	r.Get("/threads/{channel}", h.ListChannelThreads)
	r.Get("/threads/{channel}/{id}", h.GetThread)
	r.Group(func(r chi.Router) {
		r.Use(asUser(user))
		r.Post("/threads", h.CreateThread)
		r.Post("/threads/{id}/replies", h.CreateReply)
		r.Post("/threads/{channel}/{id}/replies", h.CreateReply)
		r.Delete("/threads/{id}", h.DeleteThread)
		r.Delete("/threads/{channel}/{id}", h.DeleteThread)
		r.Post("/admin/channels", h.CreateChannel)
	})
	r.Get("/channels", h.ListChannels)
	r.Get("/channels/{slug}", h.GetChannel)
	r.Get("/replies/{id}", h.GetReply)
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Get("/login", h.LoginPrompt)
	r.Post("/logout", h.Logout)
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	return r
}
