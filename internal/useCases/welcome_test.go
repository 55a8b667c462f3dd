package useCases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/larriantoniy/tg_mod_bot/internal/domain"
	"github.com/larriantoniy/tg_mod_bot/internal/ports"
)

func joinEvent(oldStatus, newStatus domain.MemberStatus) *domain.MemberUpdate {
	return &domain.MemberUpdate{
		ChatID:    testChatID,
		User:      domain.User{ID: targetID, FirstName: "Ayşe"},
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}
}

func TestGreetOnFreshJoin(t *testing.T) {
	tg := new(MockTelegram)
	tg.On("Send", mock.Anything, ports.Outgoing{
		ChatID: testChatID,
		Text:   "Hoş geldin, Ayşe! Grubumuza katıldığın için teşekkürler.",
	}).Return(nil)

	w := NewWelcomer(testLogger(), tg, nil)
	w.Greet(context.Background(), joinEvent(domain.StatusLeft, domain.StatusMember))

	tg.AssertExpectations(t)
	tg.AssertNumberOfCalls(t, "Send", 1)
}

func TestNoGreetOnPromotion(t *testing.T) {
	tg := new(MockTelegram)

	w := NewWelcomer(testLogger(), tg, nil)
	w.Greet(context.Background(), joinEvent(domain.StatusMember, domain.StatusAdministrator))

	tg.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestNoGreetOnDemotionToMember(t *testing.T) {
	tg := new(MockTelegram)

	w := NewWelcomer(testLogger(), tg, nil)
	w.Greet(context.Background(), joinEvent(domain.StatusAdministrator, domain.StatusMember))

	tg.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestNoGreetOnRepeatedJoin(t *testing.T) {
	tg := new(MockTelegram)
	guard := new(MockGreetGuard)
	guard.On("FirstSeen", mock.Anything, testChatID, targetID).Return(false, nil)

	w := NewWelcomer(testLogger(), tg, guard)
	w.Greet(context.Background(), joinEvent(domain.StatusLeft, domain.StatusMember))

	guard.AssertExpectations(t)
	tg.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestGreetGuardFailureFailsOpen(t *testing.T) {
	tg := new(MockTelegram)
	tg.On("Send", mock.Anything, mock.Anything).Return(nil)
	guard := new(MockGreetGuard)
	guard.On("FirstSeen", mock.Anything, testChatID, targetID).Return(false, errors.New("redis down"))

	w := NewWelcomer(testLogger(), tg, guard)
	w.Greet(context.Background(), joinEvent(domain.StatusLeft, domain.StatusMember))

	tg.AssertNumberOfCalls(t, "Send", 1)
}
