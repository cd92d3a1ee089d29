package models

import "time"

// Sender identifies who authored a chat message
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Valid reports whether s is a known sender.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderBot
}

// Message is an append-only chat log entry.
type Message struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey" bson:"_id,omitempty"`
	Content   string    `json:"content" gorm:"type:text;not null" bson:"content"`
	Sender    Sender    `json:"sender" gorm:"type:varchar(8);not null" bson:"sender"`
	CreatedAt time.Time `json:"createdAt" gorm:"index" bson:"createdAt"`
}
