package models

import (
	"time"
)

// Chat stores a conversation about a politician, anchored to a research
// result when one is available. Chats without a user are temporary and
// purged after their TTL.
type Chat struct {
	ID         string    `json:"id" badgerhold:"key"` // chat_<uuid>
	Politician string    `json:"politician"`
	Position   string    `json:"position,omitempty"`
	UserID     string    `json:"user_id,omitempty"` // Empty for anonymous/temporary chats
	ResultID   string    `json:"result_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsTemporary reports whether this chat belongs to no user
func (c *Chat) IsTemporary() bool {
	return c.UserID == ""
}

// QandA stores one question and its answer within a chat
type QandA struct {
	ID        string    `json:"id" badgerhold:"key"` // qa_<uuid>
	ChatID    string    `json:"chat_id" badgerhold:"index"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}
