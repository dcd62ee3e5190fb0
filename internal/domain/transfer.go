package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidAmount indicates a malformed amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates a non-positive amount.
	ErrNegativeAmount = errors.New("negative amount")
	// ErrInsufficientBalance indicates that the sender does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidOwner indicates that the user is unauthorized to transfer money from the account.
	ErrInvalidOwner = errors.New("unauthorized owner")
	// ErrSelfTransfer indicates that sender and receiver are the same account.
	ErrSelfTransfer = errors.New("cannot transfer to the same account")
	// ErrTransferFailed indicates that the transfer transaction failed to commit.
	ErrTransferFailed = errors.New("transfer failed")
	// ErrTransferNotFound indicates that the transfer is not found.
	ErrTransferNotFound = errors.New("transfer not found")
)

// Transfer holds transfer data between two accounts.
type Transfer struct {
	ID            int64     `json:"id"`
	FromAccountID int64     `json:"from_account_id"`
	ToAccountID   int64     `json:"to_account_id"`
	Amount        string    `json:"amount"` // must be positive
	CreatedAt     time.Time `json:"created_at"`
}

// CreateTransferParams is the input data for the transfer transaction.
type CreateTransferParams struct {
	FromAccountID int64  `json:"from_account_id"`
	ToAccountID   int64  `json:"to_account_id"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
}

// TransferTxResult is the result of the transfer transaction.
type TransferTxResult struct {
	Transfer    Transfer `json:"transfer"`
	FromAccount Account  `json:"from_account"`
	ToAccount   Account  `json:"to_account"`
	FromEntry   Entry    `json:"from_entry"`
	ToEntry     Entry    `json:"to_entry"`
}

// CreateDepositParams is the input data for the deposit transaction.
type CreateDepositParams struct {
	AccountID   int64  `json:"account_id"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// DepositTxResult is the result of the deposit transaction.
type DepositTxResult struct {
	Account Account `json:"account"`
	Entry   Entry   `json:"entry"`
}
