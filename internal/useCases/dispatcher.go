package useCases

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/larriantoniy/tg_mod_bot/internal/domain"
)

// Dispatcher — верхний вход: раскладывает события по обработчикам.
type Dispatcher struct {
	log      *slog.Logger
	handlers map[string]Handler
	welcome  *Welcomer
}

func NewDispatcher(log *slog.Logger, handlers map[string]Handler, welcome *Welcomer) *Dispatcher {
	return &Dispatcher{log: log, handlers: handlers, welcome: welcome}
}

// Run consumes events until the stream closes or ctx is cancelled.
// Каждое событие обрабатывается в своей горутине: две команды в одном чате
// могут гоняться, побеждает последний долетевший вызов к платформе.
func (d *Dispatcher) Run(ctx context.Context, events <-chan domain.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				d.log.Info("update stream closed")
				return
			}
			go d.Dispatch(ctx, ev)
		}
	}
}

// Dispatch routes a single event. Нераспознанный текст и неинтересные смены
// статуса молча игнорируются.
func (d *Dispatcher) Dispatch(ctx context.Context, ev domain.Event) {
	log := d.log.With("update_id", uuid.NewString())

	switch e := ev.(type) {
	case *domain.Message:
		cmd, ok := domain.ParseCommand(e.Text)
		if !ok {
			return
		}
		handler, ok := d.handlers[cmd.Name]
		if !ok {
			return
		}
		log.Debug("command received", "command", cmd.Name, "chat_id", e.ChatID, "from", e.From.ID)
		handler(ctx, e, cmd.Args)
	case *domain.MemberUpdate:
		d.welcome.Greet(ctx, e)
	default:
		log.Debug("unhandled event type")
	}
}
