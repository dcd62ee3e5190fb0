package domain

import (
	"errors"
	"time"
)

var (
	// ErrMessageParticipantNotFound indicates that the sender or the receiver is not found.
	ErrMessageParticipantNotFound = errors.New("sender or receiver not found")
	// ErrEmptyMessage indicates an empty message body.
	ErrEmptyMessage = errors.New("empty message content")
)

// Message is one persisted direct chat message between two users.
//
// Messages share only the identity namespace with the ledger.
type Message struct {
	ID        int64     `json:"id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
