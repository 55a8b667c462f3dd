package tg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/mo"
	"github.com/zelenin/go-tdlib/client"

	"github.com/larriantoniy/tg_mod_bot/internal/domain"
	"github.com/larriantoniy/tg_mod_bot/internal/ports"
)

// Client реализует ports.TelegramClient через TDLib.
type Client struct {
	client *client.Client
	logger *slog.Logger
	selfID int64
}

var ErrRateLimited = errors.New("tdlib: too many requests")

const memberSearchLimit = 20

func NewClient(
	apiID int32,
	apiHash string,
	sessionDir string,
	log *slog.Logger,
) (*Client, error) {
	dbDir := filepath.Join(sessionDir, "database")
	filesDir := filepath.Join(sessionDir, "files")

	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := os.MkdirAll(filesDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir files dir: %w", err)
	}

	if _, err := client.SetLogVerbosityLevel(&client.SetLogVerbosityLevelRequest{
		NewVerbosityLevel: 1,
	}); err != nil {
		log.Error("TDLib SetLogVerbosityLevel", "error", err)
	}

	checkIPv4(log)
	checkIPv6(log)

	tdParams := &client.SetTdlibParametersRequest{
		DatabaseDirectory:   dbDir,
		FilesDirectory:      filesDir,
		UseChatInfoDatabase: true,
		ApiId:               apiID,
		ApiHash:             apiHash,
		SystemLanguageCode:  "en",
		DeviceModel:         "Server",
		SystemVersion:       "1.0",
		ApplicationVersion:  "1.0",
	}

	authorizer := client.ClientAuthorizer(tdParams)
	// промпты появятся только при первом запуске, пока сессия не авторизована
	go client.CliInteractor(authorizer)

	tdCli, err := client.NewClient(authorizer)
	if err != nil {
		log.Error("TDLib NewClient error", "session_dir", sessionDir, "error", err)
		return nil, err
	}

	me, err := tdCli.GetMe()
	if err != nil {
		log.Error("GetMe failed", "session_dir", sessionDir, "error", err)
		return nil, err
	}

	log.Info("TDLib client initialized and authorized",
		"self_id", me.Id,
		"first_name", me.FirstName,
	)

	return &Client{
		client: tdCli,
		logger: log,
		selfID: me.Id,
	}, nil
}

func (c *Client) Close() {
	c.client.Close()
}

// Реализация ports.ModerationAPI:

func (c *Client) GetChatMember(ctx context.Context, chatID, userID int64) (*domain.ChatMember, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	member, err := c.client.GetChatMember(&client.GetChatMemberRequest{
		ChatId:   chatID,
		MemberId: &client.MessageSenderUser{UserId: userID},
	})
	if err != nil {
		return nil, fmt.Errorf("get chat member: %w", err)
	}

	user, err := c.userByID(userID)
	if err != nil {
		return nil, err
	}

	return &domain.ChatMember{
		User:   user,
		Status: memberStatusFromTD(member.Status),
	}, nil
}

// SearchChatMember ищет участника по @username. Совпадение проверяется по
// активным username пользователя, регистр не важен.
func (c *Client) SearchChatMember(ctx context.Context, chatID int64, handle string) (*domain.ChatMember, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := c.client.SearchChatMembers(&client.SearchChatMembersRequest{
		ChatId: chatID,
		Query:  handle,
		Limit:  memberSearchLimit,
		Filter: &client.ChatMembersFilterMembers{},
	})
	if err != nil {
		return nil, fmt.Errorf("search chat members: %w", err)
	}

	for _, m := range res.Members {
		sender, ok := m.MemberId.(*client.MessageSenderUser)
		if !ok {
			continue
		}
		user, err := c.userByID(sender.UserId)
		if err != nil {
			c.logger.Debug("get user after member search failed", "user_id", sender.UserId, "error", err)
			continue
		}
		if strings.EqualFold(user.Username, handle) {
			return &domain.ChatMember{User: user, Status: memberStatusFromTD(m.Status)}, nil
		}
	}

	return nil, fmt.Errorf("no chat member matches %q", handle)
}

func (c *Client) GetDefaultPermissions(ctx context.Context, chatID int64) (domain.Permissions, error) {
	if err := ctx.Err(); err != nil {
		return domain.Permissions{}, err
	}

	chat, err := c.client.GetChat(&client.GetChatRequest{ChatId: chatID})
	if err != nil {
		return domain.Permissions{}, fmt.Errorf("get chat: %w", err)
	}
	if chat.Permissions == nil {
		return domain.Permissions{}, fmt.Errorf("chat %d has no default permissions", chatID)
	}
	return permissionsFromTD(chat.Permissions), nil
}

func (c *Client) Ban(ctx context.Context, chatID, userID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := c.client.BanChatMember(&client.BanChatMemberRequest{
		ChatId:   chatID,
		MemberId: &client.MessageSenderUser{UserId: userID},
	})
	if err != nil {
		return fmt.Errorf("ban chat member: %w", err)
	}
	return nil
}

// Unban снимает бан, не возвращая пользователя в чат.
func (c *Client) Unban(ctx context.Context, chatID, userID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := c.client.SetChatMemberStatus(&client.SetChatMemberStatusRequest{
		ChatId:   chatID,
		MemberId: &client.MessageSenderUser{UserId: userID},
		Status:   &client.ChatMemberStatusLeft{},
	})
	if err != nil {
		return fmt.Errorf("unban chat member: %w", err)
	}
	return nil
}

func (c *Client) Restrict(ctx context.Context, chatID, userID int64, perms domain.Permissions, until mo.Option[time.Time]) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var untilDate int32
	if t, ok := until.Get(); ok {
		untilDate = int32(t.Unix())
	}

	_, err := c.client.SetChatMemberStatus(&client.SetChatMemberStatusRequest{
		ChatId:   chatID,
		MemberId: &client.MessageSenderUser{UserId: userID},
		Status: &client.ChatMemberStatusRestricted{
			IsMember:            true,
			RestrictedUntilDate: untilDate,
			Permissions:         permissionsToTD(perms),
		},
	})
	if err != nil {
		return fmt.Errorf("restrict chat member: %w", err)
	}
	return nil
}

func (c *Client) Send(ctx context.Context, out ports.Outgoing) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	text := &client.FormattedText{Text: out.Text}
	if out.HTML {
		parsed, err := c.client.ParseTextEntities(&client.ParseTextEntitiesRequest{
			Text:      out.Text,
			ParseMode: &client.TextParseModeHTML{},
		})
		if err != nil {
			c.logger.Warn("parse HTML entities failed, sending plain", "error", err)
		} else {
			text = parsed
		}
	}

	req := &client.SendMessageRequest{
		ChatId: out.ChatID,
		InputMessageContent: &client.InputMessageText{
			Text:       text,
			ClearDraft: true,
		},
	}
	if out.ReplyToID != 0 {
		req.ReplyTo = &client.InputMessageReplyToMessage{MessageId: out.ReplyToID}
	}

	if _, err := c.client.SendMessage(req); err != nil {
		if isTooManyRequests(err) {
			c.logger.Error("SendMessage rate-limited",
				"chat_id", out.ChatID,
				"reply_to", out.ReplyToID,
				"error", err,
			)
			return fmt.Errorf("%w: %s", ErrRateLimited, err)
		}
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// Listen возвращает канал доменных событий и запускает обработку обновлений.
// Канал закрывается по отмене ctx или закрытию слушателя TDLib.
func (c *Client) Listen(ctx context.Context) (<-chan domain.Event, error) {
	out := make(chan domain.Event)

	listener := c.client.GetListener()
	go func() {
		defer close(out)
		defer listener.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case update, ok := <-listener.Updates:
				if !ok {
					return
				}

				var ev domain.Event
				switch upd := update.(type) {
				case *client.UpdateNewMessage:
					ev = c.messageEvent(upd.Message)
				case *client.UpdateChatMember:
					ev = c.memberEvent(upd)
				default:
					continue
				}
				if ev == nil {
					continue
				}

				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// messageEvent конвертирует входящее текстовое сообщение в доменное событие.
// Не-текст, исходящие и сообщения без отправителя-пользователя пропускаются.
func (c *Client) messageEvent(m *client.Message) domain.Event {
	if m.IsOutgoing {
		return nil
	}
	content, ok := m.Content.(*client.MessageText)
	if !ok {
		return nil
	}
	sender, ok := m.SenderId.(*client.MessageSenderUser)
	if !ok {
		return nil
	}

	from, err := c.userByID(sender.UserId)
	if err != nil {
		c.logger.Debug("get sender failed", "user_id", sender.UserId, "error", err)
		return nil
	}

	return &domain.Message{
		ChatID:    m.ChatId,
		MessageID: m.Id,
		From:      from,
		Text:      content.Text.Text,
		ReplyTo:   c.replySender(m),
	}
}

// replySender достаёт отправителя отреплаенного сообщения, если реплай есть.
func (c *Client) replySender(m *client.Message) *domain.User {
	reply, ok := m.ReplyTo.(*client.MessageReplyToMessage)
	if !ok || reply.MessageId == 0 {
		return nil
	}

	chatID := reply.ChatId
	if chatID == 0 {
		chatID = m.ChatId
	}

	replied, err := c.client.GetMessage(&client.GetMessageRequest{
		ChatId:    chatID,
		MessageId: reply.MessageId,
	})
	if err != nil {
		c.logger.Debug("replied message unavailable", "chat_id", chatID, "message_id", reply.MessageId, "error", err)
		return nil
	}

	sender, ok := replied.SenderId.(*client.MessageSenderUser)
	if !ok {
		return nil
	}
	user, err := c.userByID(sender.UserId)
	if err != nil {
		c.logger.Debug("get reply sender failed", "user_id", sender.UserId, "error", err)
		return nil
	}
	return &user
}

func (c *Client) memberEvent(upd *client.UpdateChatMember) domain.Event {
	sender, ok := upd.NewChatMember.MemberId.(*client.MessageSenderUser)
	if !ok {
		return nil
	}

	user, err := c.userByID(sender.UserId)
	if err != nil {
		c.logger.Debug("get member failed", "user_id", sender.UserId, "error", err)
		user = domain.User{ID: sender.UserId}
	}

	return &domain.MemberUpdate{
		ChatID:    upd.ChatId,
		User:      user,
		OldStatus: memberStatusFromTD(upd.OldChatMember.Status),
		NewStatus: memberStatusFromTD(upd.NewChatMember.Status),
	}
}

func (c *Client) userByID(userID int64) (domain.User, error) {
	user, err := c.client.GetUser(&client.GetUserRequest{UserId: userID})
	if err != nil {
		return domain.User{}, fmt.Errorf("get user %d: %w", userID, err)
	}
	return userFromTD(user), nil
}

func isTooManyRequests(err error) bool {
	var tdErr *client.Error
	if errors.As(err, &tdErr) {
		if tdErr.Code == 429 {
			return true
		}
		if strings.Contains(strings.ToLower(tdErr.Message), "too many requests") {
			return true
		}
	}
	return false
}
