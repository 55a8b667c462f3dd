package domain

// MemberStatus — статус участника чата в терминах Telegram.
type MemberStatus string

const (
	StatusCreator       MemberStatus = "creator"
	StatusAdministrator MemberStatus = "administrator"
	StatusMember        MemberStatus = "member"
	StatusRestricted    MemberStatus = "restricted"
	StatusBanned        MemberStatus = "banned"
	StatusLeft          MemberStatus = "left"
)

// IsAdmin reports whether the status grants moderation rights.
func (s MemberStatus) IsAdmin() bool {
	return s == StatusCreator || s == StatusAdministrator
}

// InChat reports whether the user currently participates in the chat.
func (s MemberStatus) InChat() bool {
	switch s {
	case StatusCreator, StatusAdministrator, StatusMember, StatusRestricted:
		return true
	}
	return false
}

// ChatMember — запись об участнике конкретного чата.
type ChatMember struct {
	User   User
	Status MemberStatus
}
