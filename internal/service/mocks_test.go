package service

import (
	"context"
	"iter"
	"sync"

	"github.com/itchan-dev/forum/internal/domain"
)

// --- Mocks ---

type MockValidator struct {
	structFunc func(s any) error
}

func (m *MockValidator) Struct(s any) error {
	if m.structFunc != nil {
		return m.structFunc(s)
	}
	return nil
}

type MockThreadStorage struct {
	createThreadFunc   func(ctx context.Context, creationData domain.ThreadCreationData) (domain.ThreadMetadata, error)
	threadFunc         func(ctx context.Context, channel domain.ChannelSlug, id domain.ThreadId) (domain.Thread, error)
	threadMetadataFunc func(ctx context.Context, id domain.ThreadId) (domain.ThreadMetadata, error)
	deleteThreadFunc   func(ctx context.Context, id domain.ThreadId) (int64, error)

	mu                 sync.Mutex
	createThreadCalled bool
	deleteThreadCalled bool
	deleteIdArg        domain.ThreadId
}

func (m *MockThreadStorage) CreateThread(ctx context.Context, creationData domain.ThreadCreationData) (domain.ThreadMetadata, error) {
	m.mu.Lock()
	m.createThreadCalled = true
	m.mu.Unlock()

	if m.createThreadFunc != nil {
		return m.createThreadFunc(ctx, creationData)
	}
	return domain.ThreadMetadata{Id: 1, ChannelId: creationData.ChannelId, Title: creationData.Title, Body: creationData.Body}, nil
}

func (m *MockThreadStorage) Thread(ctx context.Context, channel domain.ChannelSlug, id domain.ThreadId) (domain.Thread, error) {
	if m.threadFunc != nil {
		return m.threadFunc(ctx, channel, id)
	}
	return domain.Thread{ThreadMetadata: domain.ThreadMetadata{Id: id, Channel: channel}}, nil
}

func (m *MockThreadStorage) ThreadMetadata(ctx context.Context, id domain.ThreadId) (domain.ThreadMetadata, error) {
	if m.threadMetadataFunc != nil {
		return m.threadMetadataFunc(ctx, id)
	}
	return domain.ThreadMetadata{Id: id}, nil
}

func (m *MockThreadStorage) DeleteThread(ctx context.Context, id domain.ThreadId) (int64, error) {
	m.mu.Lock()
	m.deleteThreadCalled = true
	m.deleteIdArg = id
	m.mu.Unlock()

	if m.deleteThreadFunc != nil {
		return m.deleteThreadFunc(ctx, id)
	}
	return 0, nil
}

type MockReplyStorage struct {
	createReplyFunc func(ctx context.Context, creationData domain.ReplyCreationData) (domain.Reply, error)
	replyFunc       func(ctx context.Context, id domain.ReplyId) (domain.Reply, error)

	mu                sync.Mutex
	createReplyCalled bool
}

func (m *MockReplyStorage) CreateReply(ctx context.Context, creationData domain.ReplyCreationData) (domain.Reply, error) {
	m.mu.Lock()
	m.createReplyCalled = true
	m.mu.Unlock()

	if m.createReplyFunc != nil {
		return m.createReplyFunc(ctx, creationData)
	}
	return domain.Reply{Id: 1, ThreadId: creationData.ThreadId, Body: creationData.Body}, nil
}

func (m *MockReplyStorage) Reply(ctx context.Context, id domain.ReplyId) (domain.Reply, error) {
	if m.replyFunc != nil {
		return m.replyFunc(ctx, id)
	}
	return domain.Reply{Id: id}, nil
}

type MockChannelStorage struct {
	channelsFunc      func(ctx context.Context) ([]domain.Channel, error)
	channelFunc       func(ctx context.Context, slug domain.ChannelSlug) (domain.Channel, error)
	createChannelFunc func(ctx context.Context, creationData domain.ChannelCreationData) (domain.Channel, error)
}

func (m *MockChannelStorage) Channels(ctx context.Context) ([]domain.Channel, error) {
	if m.channelsFunc != nil {
		return m.channelsFunc(ctx)
	}
	return nil, nil
}

func (m *MockChannelStorage) Channel(ctx context.Context, slug domain.ChannelSlug) (domain.Channel, error) {
	if m.channelFunc != nil {
		return m.channelFunc(ctx, slug)
	}
	return domain.Channel{Id: 1, Slug: slug}, nil
}

func (m *MockChannelStorage) CreateChannel(ctx context.Context, creationData domain.ChannelCreationData) (domain.Channel, error) {
	if m.createChannelFunc != nil {
		return m.createChannelFunc(ctx, creationData)
	}
	return domain.Channel{Id: 1, Name: creationData.Name, Slug: creationData.Slug}, nil
}

type MockThreadQueryStorage struct {
	threadsFunc func(ctx context.Context, filters domain.ThreadFilters) iter.Seq2[domain.ThreadMetadata, error]
}

func (m *MockThreadQueryStorage) Threads(ctx context.Context, filters domain.ThreadFilters) iter.Seq2[domain.ThreadMetadata, error] {
	if m.threadsFunc != nil {
		return m.threadsFunc(ctx, filters)
	}
	return func(yield func(domain.ThreadMetadata, error) bool) {}
}

type MockAuthStorage struct {
	saveUserFunc    func(ctx context.Context, user domain.User, passwordHash string) (domain.UserId, error)
	userByEmailFunc func(ctx context.Context, email domain.Email) (domain.User, string, error)
}

func (m *MockAuthStorage) SaveUser(ctx context.Context, user domain.User, passwordHash string) (domain.UserId, error) {
	if m.saveUserFunc != nil {
		return m.saveUserFunc(ctx, user, passwordHash)
	}
	return 1, nil
}

func (m *MockAuthStorage) UserByEmail(ctx context.Context, email domain.Email) (domain.User, string, error) {
	if m.userByEmailFunc != nil {
		return m.userByEmailFunc(ctx, email)
	}
	return domain.User{}, "", nil
}

type MockJwt struct {
	newTokenFunc func(user domain.User) (string, error)
}

func (m *MockJwt) NewToken(user domain.User) (string, error) {
	if m.newTokenFunc != nil {
		return m.newTokenFunc(user)
	}
	return "token", nil
}
