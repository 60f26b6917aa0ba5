package common

import (
	"github.com/google/uuid"
)

// NewPoliticianID generates a unique politician ID
// Format: pol_<uuid>
func NewPoliticianID() string {
	return "pol_" + uuid.New().String()
}

// NewResultID generates a unique research result ID
// Format: res_<uuid>
func NewResultID() string {
	return "res_" + uuid.New().String()
}

// NewChatID generates a unique chat ID
// Format: chat_<uuid>
func NewChatID() string {
	return "chat_" + uuid.New().String()
}

// NewQandAID generates a unique question/answer ID
// Format: qa_<uuid>
func NewQandAID() string {
	return "qa_" + uuid.New().String()
}
