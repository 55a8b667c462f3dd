package useCases

import (
	"context"
	"errors"
	"strings"

	"github.com/larriantoniy/tg_mod_bot/internal/domain"
)

var (
	// ErrNoTarget — не указан ни реплай, ни @username
	ErrNoTarget = errors.New("no target specified")
	// ErrUserNotFound — поиск по @username не нашёл участника
	ErrUserNotFound = errors.New("user not found")
)

// resolveTarget выбирает, к кому применяется команда: сначала отправитель
// отреплаенного сообщения, иначе @handle из первого аргумента.
// Возвращает число съеденных аргументов, чтобы вызывающий мог читать хвост
// (например длительность мута).
func (m *Moderator) resolveTarget(ctx context.Context, msg *domain.Message, args []string) (domain.User, int, error) {
	if msg.ReplyTo != nil {
		return *msg.ReplyTo, 0, nil
	}

	if len(args) == 0 {
		return domain.User{}, 0, ErrNoTarget
	}

	handle := strings.TrimPrefix(args[0], "@")
	member, err := m.api.SearchChatMember(ctx, msg.ChatID, handle)
	if err != nil {
		m.log.Debug("member search failed", "chat_id", msg.ChatID, "handle", handle, "error", err)
		return domain.User{}, 0, ErrUserNotFound
	}
	return member.User, 1, nil
}

func resolveFailureText(err error) string {
	if errors.Is(err, ErrUserNotFound) {
		return msgUserNotFound
	}
	return msgSpecifyUser
}
