package chat

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/samber/lo"

	"batepapo/internal/app/model"
	"batepapo/internal/app/store"
	"batepapo/internal/pkg/randx"
)

// MessageLog is the append-only chat history.
type MessageLog struct {
	participants store.Participants
	messages     store.Messages
	now          func() time.Time
}

// NewMessageLog creates a MessageLog. Senders are checked against participants.
func NewMessageLog(participants store.Participants, messages store.Messages, now func() time.Time) *MessageLog {
	return &MessageLog{
		participants: participants,
		messages:     messages,
		now:          now,
	}
}

// Post appends a message written by a registered participant.
func (l *MessageLog) Post(ctx context.Context, from, to, text string, messageType model.MessageType) (model.Message, error) {
	if to == "" || text == "" {
		return model.Message{}, ErrInvalidMessage
	}
	if messageType != model.TypeMessage && messageType != model.TypePrivateMessage {
		return model.Message{}, ErrInvalidMessage
	}

	if _, err := l.participants.GetParticipant(ctx, from); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Message{}, ErrSenderUnknown
		}
		return model.Message{}, fmt.Errorf("look up sender %q: %w", from, err)
	}

	return l.append(ctx, from, to, text, messageType)
}

// AppendStatus appends a status notice about name, addressed to everybody.
func (l *MessageLog) AppendStatus(ctx context.Context, name, text string) (model.Message, error) {
	return l.append(ctx, name, model.Broadcast, text, model.TypeStatus)
}

func (l *MessageLog) append(ctx context.Context, from, to, text string, messageType model.MessageType) (model.Message, error) {
	m := model.Message{
		ID:   randx.RecordID(),
		From: from,
		To:   to,
		Text: text,
		Type: messageType,
		Time: model.FormatTime(l.now()),
	}

	if err := l.messages.InsertMessage(ctx, m); err != nil {
		return model.Message{}, fmt.Errorf("insert message: %w", err)
	}
	return m, nil
}

// ListAll returns the whole history without filtering.
func (l *MessageLog) ListAll(ctx context.Context) ([]model.Message, error) {
	messages, err := l.messages.ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	if messages == nil {
		messages = []model.Message{}
	}
	return messages, nil
}

// ListVisible returns the messages user may read, oldest first.
// When limit is positive only the newest limit of them are returned.
func (l *MessageLog) ListVisible(ctx context.Context, user string, limit int) ([]model.Message, error) {
	messages, err := l.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	visible := lo.Filter(messages, func(m model.Message, _ int) bool {
		return m.VisibleTo(user)
	})

	if limit > 0 && limit < len(visible) {
		visible = visible[len(visible)-limit:]
	}
	return visible, nil
}

// ParseLimit reads a ?limit= query value. Anything but a positive integer means no limit (0).
func ParseLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
