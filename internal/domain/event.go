package domain

// Event — обновление, которое адаптер Telegram отдаёт диспетчеру.
type Event interface {
	event()
}

// User describes a Telegram user as far as the bot cares.
type User struct {
	ID        int64
	Username  string
	FirstName string
}

// DisplayName prefers the public @username over the first name.
func (u User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.FirstName
}

// Message — входящее текстовое сообщение из чата.
type Message struct {
	ChatID    int64
	MessageID int64
	From      User
	Text      string
	// ReplyTo is the sender of the replied-to message, if this message is a reply.
	ReplyTo *User
}

// MemberUpdate — изменение статуса участника чата.
type MemberUpdate struct {
	ChatID    int64
	User      User
	OldStatus MemberStatus
	NewStatus MemberStatus
}

func (*Message) event()      {}
func (*MemberUpdate) event() {}
