package datasource

import (
	"context"
	"strings"

	"brewheaven-api/models"
	"brewheaven-api/store"
)

// AppendMessage stores a chat message in the first backend that accepts it.
// Callers treat failure as a dropped message, never as a request failure.
func (r *Resolver) AppendMessage(ctx context.Context, content string, sender models.Sender) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, invalid("content is required")
	}
	if sender == "" {
		sender = models.SenderUser
	}
	if !sender.Valid() {
		return nil, invalid("sender must be %q or %q", models.SenderUser, models.SenderBot)
	}
	msg := models.Message{Content: content, Sender: sender, CreatedAt: r.now()}
	return attempt(r, "append message", func(b store.Backend) (*models.Message, error) {
		candidate := msg
		if err := b.AppendMessage(ctx, &candidate); err != nil {
			return nil, err
		}
		return &candidate, nil
	}, notNil)
}

// ListMessages returns the chat log oldest first, or an empty log when no
// backend can provide one.
func (r *Resolver) ListMessages(ctx context.Context) []models.Message {
	msgs, err := attempt(r, "list messages", func(b store.Backend) ([]models.Message, error) {
		return b.ListMessages(ctx)
	}, nonEmpty)
	if err != nil {
		return []models.Message{}
	}
	return msgs
}
