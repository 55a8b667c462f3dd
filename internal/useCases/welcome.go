package useCases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/larriantoniy/tg_mod_bot/internal/domain"
	"github.com/larriantoniy/tg_mod_bot/internal/ports"
)

const msgWelcome = "Hoş geldin, %s! Grubumuza katıldığın için teşekkürler."

// Welcomer приветствует новых участников.
type Welcomer struct {
	log   *slog.Logger
	out   ports.MessageSender
	guard ports.GreetGuard // nil — без дедупликации
}

func NewWelcomer(log *slog.Logger, out ports.MessageSender, guard ports.GreetGuard) *Welcomer {
	return &Welcomer{log: log, out: out, guard: guard}
}

// Greet welcomes a freshly joined member. Считается вступлением только переход
// в статус Member снаружи чата; промоушены/демоушены и снятие ограничений
// проходят молча.
func (w *Welcomer) Greet(ctx context.Context, ev *domain.MemberUpdate) {
	if ev.NewStatus != domain.StatusMember || ev.OldStatus.InChat() {
		return
	}

	if w.guard != nil {
		first, err := w.guard.FirstSeen(ctx, ev.ChatID, ev.User.ID)
		if err != nil {
			// приветствие — косметика, при недоступном guard не молчим
			w.log.Warn("greet guard unavailable", "chat_id", ev.ChatID, "error", err)
		} else if !first {
			w.log.Debug("member greeted recently, skipping", "chat_id", ev.ChatID, "user_id", ev.User.ID)
			return
		}
	}

	text := fmt.Sprintf(msgWelcome, ev.User.FirstName)
	if err := w.out.Send(ctx, ports.Outgoing{ChatID: ev.ChatID, Text: text}); err != nil {
		w.log.Error("welcome send failed", "chat_id", ev.ChatID, "error", err)
	}
}
