package models

import "time"

// ChatSender identifies which side of the conversation produced a message.
type ChatSender string

const (
	SenderUser      ChatSender = "user"
	SenderAssistant ChatSender = "assistant"
)

// ChatMessage is one entry in the in-memory conversation transcript.
// Messages are never persisted; the ID is assigned locally.
type ChatMessage struct {
	ID        string
	Sender    ChatSender
	Text      string
	Timestamp time.Time
}
