package useCases

import (
	"context"

	"github.com/larriantoniy/tg_mod_bot/internal/domain"
)

// Handler выполняет одну команду модерации.
type Handler func(ctx context.Context, msg *domain.Message, args []string)

// NewRouter собирает таблицу диспетчеризации команд.
// Неизвестные команды никуда не маршрутизируются — это не ошибка.
func NewRouter(m *Moderator) map[string]Handler {
	return map[string]Handler{
		"/ban":    m.Ban,
		"/unban":  m.Unban,
		"/mute":   m.Mute,
		"/unmute": m.Unmute,
	}
}
