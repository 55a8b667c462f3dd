package useCases

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/larriantoniy/tg_mod_bot/internal/domain"
	"github.com/larriantoniy/tg_mod_bot/internal/ports"
)

const (
	testChatID = int64(-100123)
	testMsgID  = int64(555)
	adminID    = int64(1)
	targetID   = int64(42)
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func adminMember() *domain.ChatMember {
	return &domain.ChatMember{
		User:   domain.User{ID: adminID, FirstName: "Ahmet"},
		Status: domain.StatusAdministrator,
	}
}

func plainMember() *domain.ChatMember {
	return &domain.ChatMember{
		User:   domain.User{ID: adminID, FirstName: "Ahmet"},
		Status: domain.StatusMember,
	}
}

func commandMessage(replyTo *domain.User) *domain.Message {
	return &domain.Message{
		ChatID:    testChatID,
		MessageID: testMsgID,
		From:      domain.User{ID: adminID, FirstName: "Ahmet"},
		ReplyTo:   replyTo,
	}
}

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name   string
		member *domain.ChatMember
		err    error
		want   bool
	}{
		{name: "creator", member: &domain.ChatMember{Status: domain.StatusCreator}, want: true},
		{name: "administrator", member: adminMember(), want: true},
		{name: "plain member", member: plainMember(), want: false},
		{name: "lookup failure fails closed", err: errors.New("network down"), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tg := new(MockTelegram)
			tg.On("GetChatMember", mock.Anything, testChatID, adminID).Return(tc.member, tc.err)

			m := NewModerator(testLogger(), tg)
			got := m.isAdmin(context.Background(), testChatID, adminID)

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMuteDeniedForNonAdmin(t *testing.T) {
	tg := new(MockTelegram)
	tg.On("GetChatMember", mock.Anything, testChatID, adminID).Return(plainMember(), nil)
	tg.On("Send", mock.Anything, ports.Outgoing{
		ChatID:    testChatID,
		Text:      msgAdminsOnly,
		ReplyToID: testMsgID,
	}).Return(nil)

	m := NewModerator(testLogger(), tg)
	target := domain.User{ID: targetID, FirstName: "Mehmet"}
	m.Mute(context.Background(), commandMessage(&target), nil)

	tg.AssertExpectations(t)
	tg.AssertNotCalled(t, "Restrict", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMuteByHandleWithDuration(t *testing.T) {
	tg := new(MockTelegram)
	tg.On("GetChatMember", mock.Anything, testChatID, adminID).Return(adminMember(), nil)
	tg.On("SearchChatMember", mock.Anything, testChatID, "alice").Return(&domain.ChatMember{
		User:   domain.User{ID: targetID, Username: "alice", FirstName: "Alice"},
		Status: domain.StatusMember,
	}, nil)

	tg.On("Restrict", mock.Anything, testChatID, targetID, domain.Muted,
		mock.MatchedBy(func(until mo.Option[time.Time]) bool {
			at, ok := until.Get()
			if !ok {
				return false
			}
			left := time.Until(at)
			return left > 2*time.Hour-10*time.Second && left <= 2*time.Hour
		}),
	).Return(nil)

	tg.On("Send", mock.Anything, mock.MatchedBy(func(out ports.Outgoing) bool {
		return out.HTML &&
			out.ReplyToID == testMsgID &&
			strings.Contains(out.Text, `tg://user?id=42`) &&
			strings.Contains(out.Text, "alice") &&
			strings.Contains(out.Text, "2 saat boyunca susturuldu.")
	})).Return(nil)

	m := NewModerator(testLogger(), tg)
	m.Mute(context.Background(), commandMessage(nil), []string{"@alice", "2h"})

	tg.AssertExpectations(t)
}

func TestMutePermanentOnReply(t *testing.T) {
	tg := new(MockTelegram)
	tg.On("GetChatMember", mock.Anything, testChatID, adminID).Return(adminMember(), nil)
	tg.On("Restrict", mock.Anything, testChatID, targetID, domain.Muted, mo.None[time.Time]()).Return(nil)
	tg.On("Send", mock.Anything, mock.MatchedBy(func(out ports.Outgoing) bool {
		return out.HTML && strings.Contains(out.Text, "süresiz olarak susturuldu.")
	})).Return(nil)

	m := NewModerator(testLogger(), tg)
	target := domain.User{ID: targetID, FirstName: "Mehmet"}
	m.Mute(context.Background(), commandMessage(&target), nil)

	tg.AssertExpectations(t)
}

func TestMuteInvalidDuration(t *testing.T) {
	tg := new(MockTelegram)
	tg.On("GetChatMember", mock.Anything, testChatID, adminID).Return(adminMember(), nil)
	tg.On("Send", mock.Anything, ports.Outgoing{ChatID: testChatID, Text: msgInvalidDuration}).Return(nil)

	m := NewModerator(testLogger(), tg)
	target := domain.User{ID: targetID, FirstName: "Mehmet"}
	m.Mute(context.Background(), commandMessage(&target), []string{"90x"})

	tg.AssertExpectations(t)
	tg.AssertNotCalled(t, "Restrict", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMuteUserNotFound(t *testing.T) {
	tg := new(MockTelegram)
	tg.On("GetChatMember", mock.Anything, testChatID, adminID).Return(adminMember(), nil)
	tg.On("SearchChatMember", mock.Anything, testChatID, "nouser").Return(nil, errors.New("no chat member"))
	tg.On("Send", mock.Anything, ports.Outgoing{ChatID: testChatID, Text: msgUserNotFound}).Return(nil)

	m := NewModerator(testLogger(), tg)
	m.Mute(context.Background(), commandMessage(nil), []string{"@nouser", "1h"})

	tg.AssertExpectations(t)
	tg.AssertNotCalled(t, "Restrict", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBanSuccessMentionsTarget(t *testing.T) {
	tg := new(MockTelegram)
	tg.On("GetChatMember", mock.Anything, testChatID, adminID).Return(adminMember(), nil)
	tg.On("Ban", mock.Anything, testChatID, targetID).Return(nil)
	tg.On("Send", mock.Anything, mock.MatchedBy(func(out ports.Outgoing) bool {
		return out.HTML &&
			strings.Contains(out.Text, `tg://user?id=42`) &&
			strings.HasSuffix(out.Text, "banlandı.")
	})).Return(nil)

	m := NewModerator(testLogger(), tg)
	target := domain.User{ID: targetID, Username: "mehmet", FirstName: "Mehmet"}
	m.Ban(context.Background(), commandMessage(&target), nil)

	tg.AssertExpectations(t)
}

func TestBanTransportFailureEmbedsError(t *testing.T) {
	tg := new(MockTelegram)
	tg.On("GetChatMember", mock.Anything, testChatID, adminID).Return(adminMember(), nil)
	tg.On("Ban", mock.Anything, testChatID, targetID).Return(errors.New("USER_ADMIN_INVALID"))
	tg.On("Send", mock.Anything, mock.MatchedBy(func(out ports.Outgoing) bool {
		return strings.HasPrefix(out.Text, "Kullanıcı banlanamadı: ") &&
			strings.Contains(out.Text, "USER_ADMIN_INVALID")
	})).Return(nil)

	m := NewModerator(testLogger(), tg)
	target := domain.User{ID: targetID, FirstName: "Mehmet"}
	m.Ban(context.Background(), commandMessage(&target), nil)

	tg.AssertExpectations(t)
	// после ошибки транспорта успешное подтверждение не уходит
	tg.AssertNumberOfCalls(t, "Send", 1)
}

func TestUnbanSuccess(t *testing.T) {
	tg := new(MockTelegram)
	tg.On("GetChatMember", mock.Anything, testChatID, adminID).Return(adminMember(), nil)
	tg.On("Unban", mock.Anything, testChatID, targetID).Return(nil)
	tg.On("Send", mock.Anything, mock.MatchedBy(func(out ports.Outgoing) bool {
		return out.HTML && strings.Contains(out.Text, "banı kaldırıldı.")
	})).Return(nil)

	m := NewModerator(testLogger(), tg)
	target := domain.User{ID: targetID, Username: "mehmet", FirstName: "Mehmet"}
	m.Unban(context.Background(), commandMessage(&target), nil)

	tg.AssertExpectations(t)
}

func TestUnmuteRestoresChatDefaults(t *testing.T) {
	defaults := domain.Permissions{
		CanSendBasicMessages: true,
		CanSendPhotos:        true,
		CanInviteUsers:       true,
		// polls в этом чате выключены и такими должны остаться
	}

	tg := new(MockTelegram)
	tg.On("GetChatMember", mock.Anything, testChatID, adminID).Return(adminMember(), nil)
	tg.On("GetDefaultPermissions", mock.Anything, testChatID).Return(defaults, nil)
	tg.On("Restrict", mock.Anything, testChatID, targetID, defaults, mo.None[time.Time]()).Return(nil)
	tg.On("Send", mock.Anything, mock.MatchedBy(func(out ports.Outgoing) bool {
		return out.HTML && strings.Contains(out.Text, "susturulması kaldırıldı.")
	})).Return(nil)

	m := NewModerator(testLogger(), tg)
	target := domain.User{ID: targetID, FirstName: "Mehmet"}
	m.Unmute(context.Background(), commandMessage(&target), nil)

	tg.AssertExpectations(t)
}

func TestUnmutePermissionsLookupFailure(t *testing.T) {
	tg := new(MockTelegram)
	tg.On("GetChatMember", mock.Anything, testChatID, adminID).Return(adminMember(), nil)
	tg.On("GetDefaultPermissions", mock.Anything, testChatID).
		Return(domain.Permissions{}, errors.New("CHAT_NOT_FOUND"))
	tg.On("Send", mock.Anything, mock.MatchedBy(func(out ports.Outgoing) bool {
		return strings.HasPrefix(out.Text, "Kullanıcının susturulması kaldırılamadı: ") &&
			strings.Contains(out.Text, "CHAT_NOT_FOUND")
	})).Return(nil)

	m := NewModerator(testLogger(), tg)
	target := domain.User{ID: targetID, FirstName: "Mehmet"}
	m.Unmute(context.Background(), commandMessage(&target), nil)

	tg.AssertExpectations(t)
	tg.AssertNotCalled(t, "Restrict", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolvePrefersReplyOverArgs(t *testing.T) {
	tg := new(MockTelegram)

	m := NewModerator(testLogger(), tg)
	replied := domain.User{ID: targetID, Username: "mehmet", FirstName: "Mehmet"}
	target, used, err := m.resolveTarget(context.Background(), commandMessage(&replied), []string{"@someoneelse"})

	require.NoError(t, err)
	assert.Equal(t, replied, target)
	assert.Equal(t, 0, used)
	tg.AssertNotCalled(t, "SearchChatMember", mock.Anything, mock.Anything, mock.Anything)
}

// Поиск обязан идти по handle из аргумента, а не по нулевому id.
func TestResolveLooksUpByHandle(t *testing.T) {
	tg := new(MockTelegram)
	tg.On("SearchChatMember", mock.Anything, testChatID, "bob").Return(&domain.ChatMember{
		User:   domain.User{ID: targetID, Username: "bob", FirstName: "Bob"},
		Status: domain.StatusMember,
	}, nil)

	m := NewModerator(testLogger(), tg)
	target, used, err := m.resolveTarget(context.Background(), commandMessage(nil), []string{"@bob"})

	require.NoError(t, err)
	assert.Equal(t, int64(42), target.ID)
	assert.Equal(t, "bob", target.DisplayName())
	assert.Equal(t, 1, used)
	tg.AssertExpectations(t)
}

func TestResolveLookupFailureIsUserNotFound(t *testing.T) {
	tg := new(MockTelegram)
	tg.On("SearchChatMember", mock.Anything, testChatID, "ghost").Return(nil, errors.New("boom"))

	m := NewModerator(testLogger(), tg)
	_, _, err := m.resolveTarget(context.Background(), commandMessage(nil), []string{"@ghost"})

	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestResolveNoTarget(t *testing.T) {
	tg := new(MockTelegram)

	m := NewModerator(testLogger(), tg)
	_, _, err := m.resolveTarget(context.Background(), commandMessage(nil), nil)

	require.ErrorIs(t, err, ErrNoTarget)
	tg.AssertNotCalled(t, "SearchChatMember", mock.Anything, mock.Anything, mock.Anything)
}
