package tg

import (
	"github.com/zelenin/go-tdlib/client"

	"github.com/larriantoniy/tg_mod_bot/internal/domain"
)

func userFromTD(u *client.User) domain.User {
	du := domain.User{
		ID:        u.Id,
		FirstName: u.FirstName,
	}
	if u.Usernames != nil && len(u.Usernames.ActiveUsernames) > 0 {
		du.Username = u.Usernames.ActiveUsernames[0]
	}
	return du
}

func memberStatusFromTD(s client.ChatMemberStatus) domain.MemberStatus {
	switch s.(type) {
	case *client.ChatMemberStatusCreator:
		return domain.StatusCreator
	case *client.ChatMemberStatusAdministrator:
		return domain.StatusAdministrator
	case *client.ChatMemberStatusMember:
		return domain.StatusMember
	case *client.ChatMemberStatusRestricted:
		return domain.StatusRestricted
	case *client.ChatMemberStatusBanned:
		return domain.StatusBanned
	case *client.ChatMemberStatusLeft:
		return domain.StatusLeft
	}
	return ""
}

func permissionsFromTD(p *client.ChatPermissions) domain.Permissions {
	return domain.Permissions{
		CanSendBasicMessages:  p.CanSendBasicMessages,
		CanSendAudios:         p.CanSendAudios,
		CanSendDocuments:      p.CanSendDocuments,
		CanSendPhotos:         p.CanSendPhotos,
		CanSendVideos:         p.CanSendVideos,
		CanSendVideoNotes:     p.CanSendVideoNotes,
		CanSendVoiceNotes:     p.CanSendVoiceNotes,
		CanSendPolls:          p.CanSendPolls,
		CanSendOtherMessages:  p.CanSendOtherMessages,
		CanAddWebPagePreviews: p.CanAddWebPagePreviews,
		CanChangeInfo:         p.CanChangeInfo,
		CanInviteUsers:        p.CanInviteUsers,
		CanPinMessages:        p.CanPinMessages,
		CanCreateTopics:       p.CanCreateTopics,
	}
}

func permissionsToTD(p domain.Permissions) *client.ChatPermissions {
	return &client.ChatPermissions{
		CanSendBasicMessages:  p.CanSendBasicMessages,
		CanSendAudios:         p.CanSendAudios,
		CanSendDocuments:      p.CanSendDocuments,
		CanSendPhotos:         p.CanSendPhotos,
		CanSendVideos:         p.CanSendVideos,
		CanSendVideoNotes:     p.CanSendVideoNotes,
		CanSendVoiceNotes:     p.CanSendVoiceNotes,
		CanSendPolls:          p.CanSendPolls,
		CanSendOtherMessages:  p.CanSendOtherMessages,
		CanAddWebPagePreviews: p.CanAddWebPagePreviews,
		CanChangeInfo:         p.CanChangeInfo,
		CanInviteUsers:        p.CanInviteUsers,
		CanPinMessages:        p.CanPinMessages,
		CanCreateTopics:       p.CanCreateTopics,
	}
}
