// Package eventpkg publishes wallet events to a message broker.
package eventpkg

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Topics the wallet publishes to.
const (
	TopicTransferCompleted = "transfer_completed"
	TopicDepositCompleted  = "deposit_completed"
)

// TransferCompleted is emitted after a transfer transaction commits.
type TransferCompleted struct {
	EventID       uuid.UUID `json:"event_id"`
	TransferID    int64     `json:"transfer_id"`
	FromAccountID int64     `json:"from_account_id"`
	ToAccountID   int64     `json:"to_account_id"`
	Amount        string    `json:"amount"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// DepositCompleted is emitted after a deposit transaction commits.
type DepositCompleted struct {
	EventID    uuid.UUID `json:"event_id"`
	AccountID  int64     `json:"account_id"`
	EntryID    int64     `json:"entry_id"`
	Amount     string    `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher publishes events to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
}

// NoOpPublisher drops every event. Used when no brokers are configured.
type NoOpPublisher struct{}

// Publish implements Publisher and does nothing.
func (NoOpPublisher) Publish(ctx context.Context, topic string, event any) error {
	return nil
}
