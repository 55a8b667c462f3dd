package ports

import "context"

// GreetGuard гасит повторные приветствия при перезаходах участника.
type GreetGuard interface {
	// FirstSeen reports whether this is the first join of user in chat
	// within the guard's window.
	FirstSeen(ctx context.Context, chatID, userID int64) (bool, error)
}
