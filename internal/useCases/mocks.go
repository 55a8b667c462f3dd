package useCases

import (
	"context"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"github.com/larriantoniy/tg_mod_bot/internal/domain"
	"github.com/larriantoniy/tg_mod_bot/internal/ports"
)

// MockTelegram is a mock implementation of ports.ModerationAPI.
type MockTelegram struct {
	mock.Mock
}

func (m *MockTelegram) GetChatMember(ctx context.Context, chatID, userID int64) (*domain.ChatMember, error) {
	args := m.Called(ctx, chatID, userID)
	var member *domain.ChatMember
	if v := args.Get(0); v != nil {
		member = v.(*domain.ChatMember)
	}
	return member, args.Error(1)
}

func (m *MockTelegram) SearchChatMember(ctx context.Context, chatID int64, handle string) (*domain.ChatMember, error) {
	args := m.Called(ctx, chatID, handle)
	var member *domain.ChatMember
	if v := args.Get(0); v != nil {
		member = v.(*domain.ChatMember)
	}
	return member, args.Error(1)
}

func (m *MockTelegram) GetDefaultPermissions(ctx context.Context, chatID int64) (domain.Permissions, error) {
	args := m.Called(ctx, chatID)
	return args.Get(0).(domain.Permissions), args.Error(1)
}

func (m *MockTelegram) Ban(ctx context.Context, chatID, userID int64) error {
	args := m.Called(ctx, chatID, userID)
	return args.Error(0)
}

func (m *MockTelegram) Unban(ctx context.Context, chatID, userID int64) error {
	args := m.Called(ctx, chatID, userID)
	return args.Error(0)
}

func (m *MockTelegram) Restrict(ctx context.Context, chatID, userID int64, perms domain.Permissions, until mo.Option[time.Time]) error {
	args := m.Called(ctx, chatID, userID, perms, until)
	return args.Error(0)
}

func (m *MockTelegram) Send(ctx context.Context, out ports.Outgoing) error {
	args := m.Called(ctx, out)
	return args.Error(0)
}

// MockGreetGuard is a mock implementation of ports.GreetGuard.
type MockGreetGuard struct {
	mock.Mock
}

func (m *MockGreetGuard) FirstSeen(ctx context.Context, chatID, userID int64) (bool, error) {
	args := m.Called(ctx, chatID, userID)
	return args.Bool(0), args.Error(1)
}
