package useCases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/mo"

	"github.com/larriantoniy/tg_mod_bot/internal/domain"
	"github.com/larriantoniy/tg_mod_bot/internal/ports"
)

// Тексты бота, как их ждёт группа.
const (
	msgAdminsOnly      = "Üzgünüm yalnızca yöneticiler tarafından kullanılabilirim."
	msgSpecifyUser     = "Lütfen bir kullanıcı adı belirtin veya bir mesajı yanıtlayın."
	msgUserNotFound    = "Kullanıcı bulunamadı."
	msgInvalidDuration = "Geçersiz süre formatı. Örnek: 1m, 2h, 3d"
)

// Moderator выполняет команды модерации: ban, unban, mute, unmute.
// Обработчики не делят изменяемое состояние, каждый вызов самодостаточен.
type Moderator struct {
	log *slog.Logger
	api ports.ModerationAPI
}

func NewModerator(log *slog.Logger, api ports.ModerationAPI) *Moderator {
	return &Moderator{log: log, api: api}
}

// isAdmin fails closed: любая ошибка lookup трактуется как "не админ".
func (m *Moderator) isAdmin(ctx context.Context, chatID, userID int64) bool {
	member, err := m.api.GetChatMember(ctx, chatID, userID)
	if err != nil {
		m.log.Debug("admin check failed, denying", "chat_id", chatID, "user_id", userID, "error", err)
		return false
	}
	return member.Status.IsAdmin()
}

// send логирует ошибку доставки, но не прерывает обработчик:
// ответное сообщение для нас fire-and-forget.
func (m *Moderator) send(ctx context.Context, out ports.Outgoing) {
	if err := m.api.Send(ctx, out); err != nil {
		m.log.Error("send failed", "chat_id", out.ChatID, "error", err)
	}
}

// Ban обрабатывает /ban [@handle].
func (m *Moderator) Ban(ctx context.Context, msg *domain.Message, args []string) {
	if !m.isAdmin(ctx, msg.ChatID, msg.From.ID) {
		m.send(ctx, ports.Outgoing{ChatID: msg.ChatID, Text: msgAdminsOnly, ReplyToID: msg.MessageID})
		return
	}

	target, _, err := m.resolveTarget(ctx, msg, args)
	if err != nil {
		m.send(ctx, ports.Outgoing{ChatID: msg.ChatID, Text: resolveFailureText(err)})
		return
	}

	if err := m.api.Ban(ctx, msg.ChatID, target.ID); err != nil {
		m.send(ctx, ports.Outgoing{
			ChatID:    msg.ChatID,
			Text:      fmt.Sprintf("Kullanıcı banlanamadı: %s", err),
			ReplyToID: msg.MessageID,
		})
		return
	}

	m.log.Info("user banned", "chat_id", msg.ChatID, "user_id", target.ID, "by", msg.From.ID)
	m.send(ctx, ports.Outgoing{
		ChatID: msg.ChatID,
		Text:   domain.Mention(target.ID, target.DisplayName()) + "banlandı.",
		HTML:   true,
	})
}

// Unban обрабатывает /unban [@handle].
func (m *Moderator) Unban(ctx context.Context, msg *domain.Message, args []string) {
	if !m.isAdmin(ctx, msg.ChatID, msg.From.ID) {
		m.send(ctx, ports.Outgoing{ChatID: msg.ChatID, Text: msgAdminsOnly, ReplyToID: msg.MessageID})
		return
	}

	target, _, err := m.resolveTarget(ctx, msg, args)
	if err != nil {
		m.send(ctx, ports.Outgoing{ChatID: msg.ChatID, Text: resolveFailureText(err)})
		return
	}

	if err := m.api.Unban(ctx, msg.ChatID, target.ID); err != nil {
		m.send(ctx, ports.Outgoing{
			ChatID:    msg.ChatID,
			Text:      fmt.Sprintf("Kullanıcının banı kaldırılamadı: %s", err),
			ReplyToID: msg.MessageID,
		})
		return
	}

	m.log.Info("user unbanned", "chat_id", msg.ChatID, "user_id", target.ID, "by", msg.From.ID)
	m.send(ctx, ports.Outgoing{
		ChatID: msg.ChatID,
		Text:   domain.Mention(target.ID, target.DisplayName()) + "kullanıcısının banı kaldırıldı.",
		HTML:   true,
	})
}

// Mute обрабатывает /mute [@handle] [süre]. Без длительности мут бессрочный.
func (m *Moderator) Mute(ctx context.Context, msg *domain.Message, args []string) {
	if !m.isAdmin(ctx, msg.ChatID, msg.From.ID) {
		m.send(ctx, ports.Outgoing{ChatID: msg.ChatID, Text: msgAdminsOnly, ReplyToID: msg.MessageID})
		return
	}

	target, used, err := m.resolveTarget(ctx, msg, args)
	if err != nil {
		m.send(ctx, ports.Outgoing{ChatID: msg.ChatID, Text: resolveFailureText(err)})
		return
	}

	var muteFor time.Duration
	if rest := args[used:]; len(rest) > 0 {
		muteFor = domain.ParseDuration(rest[0])
		if muteFor == 0 {
			m.send(ctx, ports.Outgoing{ChatID: msg.ChatID, Text: msgInvalidDuration})
			return
		}
	}

	until := mo.None[time.Time]()
	if muteFor > 0 {
		until = mo.Some(time.Now().Add(muteFor))
	}

	if err := m.api.Restrict(ctx, msg.ChatID, target.ID, domain.Muted, until); err != nil {
		m.send(ctx, ports.Outgoing{
			ChatID:    msg.ChatID,
			Text:      fmt.Sprintf("Kullanıcı susturulamadı: %s", err),
			ReplyToID: msg.MessageID,
		})
		return
	}

	m.log.Info("user muted",
		"chat_id", msg.ChatID,
		"user_id", target.ID,
		"by", msg.From.ID,
		"duration", muteFor,
	)

	text := domain.Mention(target.ID, target.DisplayName())
	if muteFor > 0 {
		text += domain.FormatDuration(muteFor) + " boyunca susturuldu."
	} else {
		text += "süresiz olarak susturuldu."
	}
	m.send(ctx, ports.Outgoing{ChatID: msg.ChatID, Text: text, ReplyToID: msg.MessageID, HTML: true})
}

// Unmute обрабатывает /unmute [@handle]. Восстанавливает живые дефолтные права
// чата на момент вызова, а не захардкоженный "всё разрешено".
func (m *Moderator) Unmute(ctx context.Context, msg *domain.Message, args []string) {
	if !m.isAdmin(ctx, msg.ChatID, msg.From.ID) {
		m.send(ctx, ports.Outgoing{ChatID: msg.ChatID, Text: msgAdminsOnly, ReplyToID: msg.MessageID})
		return
	}

	target, _, err := m.resolveTarget(ctx, msg, args)
	if err != nil {
		m.send(ctx, ports.Outgoing{ChatID: msg.ChatID, Text: resolveFailureText(err)})
		return
	}

	perms, err := m.api.GetDefaultPermissions(ctx, msg.ChatID)
	if err == nil {
		err = m.api.Restrict(ctx, msg.ChatID, target.ID, perms, mo.None[time.Time]())
	}
	if err != nil {
		m.send(ctx, ports.Outgoing{
			ChatID:    msg.ChatID,
			Text:      fmt.Sprintf("Kullanıcının susturulması kaldırılamadı: %s", err),
			ReplyToID: msg.MessageID,
		})
		return
	}

	m.log.Info("user unmuted", "chat_id", msg.ChatID, "user_id", target.ID, "by", msg.From.ID)
	m.send(ctx, ports.Outgoing{
		ChatID: msg.ChatID,
		Text:   domain.Mention(target.ID, target.DisplayName()) + "susturulması kaldırıldı.",
		HTML:   true,
	})
}
