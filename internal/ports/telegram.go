package ports

import (
	"context"
	"time"

	"github.com/samber/mo"

	"github.com/larriantoniy/tg_mod_bot/internal/domain"
)

// MemberLookup определяет поиск участников чата.
// Реализуется конкретными адаптерами (TDLib, Bot API и т.д.).
type MemberLookup interface {
	// GetChatMember возвращает запись об участнике по его id
	GetChatMember(ctx context.Context, chatID, userID int64) (*domain.ChatMember, error)
	// SearchChatMember ищет участника по @username (без "@")
	SearchChatMember(ctx context.Context, chatID int64, handle string) (*domain.ChatMember, error)
}

// ChatPermissions отдаёт текущие дефолтные права чата.
type ChatPermissions interface {
	GetDefaultPermissions(ctx context.Context, chatID int64) (domain.Permissions, error)
}

// Moderation — вызовы модерации к платформе.
type Moderation interface {
	Ban(ctx context.Context, chatID, userID int64) error
	Unban(ctx context.Context, chatID, userID int64) error
	// Restrict applies perms to the member until the given instant.
	// An absent instant makes the restriction permanent.
	Restrict(ctx context.Context, chatID, userID int64, perms domain.Permissions, until mo.Option[time.Time]) error
}

// Outgoing describes a reply the bot sends back into the chat.
type Outgoing struct {
	ChatID    int64
	Text      string
	ReplyToID int64 // 0 — без реплая
	HTML      bool  // рендерить Text как HTML (упоминания)
}

// MessageSender доставляет ответы бота.
type MessageSender interface {
	Send(ctx context.Context, out Outgoing) error
}

// ModerationAPI — срез клиента, который нужен обработчикам команд.
type ModerationAPI interface {
	MemberLookup
	ChatPermissions
	Moderation
	MessageSender
}

// TelegramClient — полный интерфейс клиента, реализуемый адаптером TDLib.
type TelegramClient interface {
	ModerationAPI
	// Listen возвращает канал доменных событий; закрывается по ctx
	Listen(ctx context.Context) (<-chan domain.Event, error)
	Close()
}
