package domain

// Permissions — набор прав участника чата, зеркалит chatPermissions Telegram.
type Permissions struct {
	CanSendBasicMessages  bool
	CanSendAudios         bool
	CanSendDocuments      bool
	CanSendPhotos         bool
	CanSendVideos         bool
	CanSendVideoNotes     bool
	CanSendVoiceNotes     bool
	CanSendPolls          bool
	CanSendOtherMessages  bool
	CanAddWebPagePreviews bool
	CanChangeInfo         bool
	CanInviteUsers        bool
	CanPinMessages        bool
	CanCreateTopics       bool
}

// Muted — полный запрет: все права выключены разом.
// Частичные ограничения никогда не выдаются, mute всегда применяет это значение целиком.
var Muted = Permissions{}
