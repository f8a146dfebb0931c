package state

import (
	"strings"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

// SendMessage appends a message from the session user to receiverID.
// Blank content without an attachment is rejected with ErrEmptyMessage.
func SendMessage(s domain.AppState, env Env, receiverID, content string, attachment *domain.Attachment) (domain.AppState, domain.Message, error) {
	sender, err := Session(s)
	if err != nil {
		return s, domain.Message{}, err
	}
	if strings.TrimSpace(content) == "" && attachment == nil {
		return s, domain.Message{}, domain.ErrEmptyMessage
	}
	if _, ok := s.FindUser(receiverID); !ok {
		return s, domain.Message{}, domain.ErrUserNotFound
	}

	msg := domain.Message{
		ID:         env.newID(),
		SenderID:   sender.ID,
		ReceiverID: receiverID,
		Content:    content,
		Attachment: attachment,
		Timestamp:  env.now(),
	}
	next := s.Clone()
	next.Messages = append(next.Messages, msg)
	return next, msg, nil
}
