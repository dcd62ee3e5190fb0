package domain

import "time"

// Entry kinds. Every ledger entry is either a credit or a debit.
const (
	EntryKindCredit = "credit"
	EntryKindDebit  = "debit"
)

// Entry is one immutable ledger record of a single account's credit or debit.
//
// Entries are append-only: once written they are never updated or deleted.
// Replaying an account's entries from zero (credits added, debits subtracted)
// reproduces its stored balance.
type Entry struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"account_id"`
	Kind        string    `json:"kind"`
	Amount      string    `json:"amount"` // always positive, sign comes from Kind
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListEntriesParams is the input data to list an account's ledger entries.
type ListEntriesParams struct {
	AccountID int64
	Ascending bool
	Limit     int32
	Offset    int32
}
