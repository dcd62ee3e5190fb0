// Package transferrepo manages repository layer of transfers.
package transferrepo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/peerwallet/peerwallet/internal/accountrepo"
	"github.com/peerwallet/peerwallet/internal/domain"
	"github.com/peerwallet/peerwallet/internal/entryrepo"
	"github.com/peerwallet/peerwallet/pkg/dbpkg"
	"github.com/peerwallet/peerwallet/pkg/errorspkg"
)

// RepoPGS facilitates transfer repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns transfer RepoPGS scoped to the given transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns transfer RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createQuery = `
INSERT INTO
    transfers (from_account_id, to_account_id, amount)
VALUES
    ($1, $2, $3)
RETURNING id, from_account_id, to_account_id, amount, created_at
`

// Create creates the transfer record and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransferParams) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.FromAccountID, arg.ToAccountID, arg.Amount)

	var t domain.Transfer
	err := row.Scan(
		&t.ID,
		&t.FromAccountID,
		&t.ToAccountID,
		&t.Amount,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx context.Context, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transfers_from_account_id_fkey", "transfers_to_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transfers_amount_check":
				return t, domain.ErrInvalidAmount
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT
	id, from_account_id, to_account_id, amount, created_at
FROM transfers
WHERE id = $1
`

// Get returns the transfer with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var t domain.Transfer

	err := row.Scan(
		&t.ID,
		&t.FromAccountID,
		&t.ToAccountID,
		&t.Amount,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransferNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

// Transfer moves money between two accounts.
//
// It creates a transfer record, appends the debit and credit entries, and
// updates both balances within a single database transaction. Either every
// write commits together or the deferred rollback discards them all.
func (r *RepoPGS) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, domain.ErrTransferFailed
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	txRepo := NewTxRepoPGS(tx)
	entryRepo := entryrepo.NewRepoPGS(tx)
	accountRepo := accountrepo.NewRepoPGS(tx)

	result.Transfer, err = txRepo.Create(ctx, arg)
	if err != nil {
		return result, err
	}

	fromDesc, toDesc := legDescriptions(arg)

	result.FromEntry, err = entryRepo.Create(ctx, arg.FromAccountID, domain.EntryKindDebit, arg.Amount, fromDesc)
	if err != nil {
		return result, err
	}

	result.ToEntry, err = entryRepo.Create(ctx, arg.ToAccountID, domain.EntryKindCredit, arg.Amount, toDesc)
	if err != nil {
		return result, err
	}

	// To avoid deadlocks execute balance updates in consistent id order.
	if arg.FromAccountID < arg.ToAccountID {
		result.FromAccount, result.ToAccount, err = addBalances(ctx, accountRepo,
			arg.FromAccountID, "-"+arg.Amount,
			arg.ToAccountID, arg.Amount,
		)
	} else {
		result.ToAccount, result.FromAccount, err = addBalances(ctx, accountRepo,
			arg.ToAccountID, arg.Amount,
			arg.FromAccountID, "-"+arg.Amount,
		)
	}

	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, domain.ErrTransferFailed
	}

	return result, nil
}

// Deposit credits a single account from an external funds inflow.
//
// One balance update and one credit entry, committed as one unit.
func (r *RepoPGS) Deposit(ctx context.Context, arg domain.CreateDepositParams) (domain.DepositTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.DepositTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, domain.ErrTransferFailed
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	entryRepo := entryrepo.NewRepoPGS(tx)
	accountRepo := accountrepo.NewRepoPGS(tx)

	description := arg.Description
	if description == "" {
		description = "Deposit to wallet"
	}

	result.Account, err = accountRepo.AddBalance(ctx, arg.Amount, arg.AccountID)
	if err != nil {
		return result, err
	}

	result.Entry, err = entryRepo.Create(ctx, arg.AccountID, domain.EntryKindCredit, arg.Amount, description)
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, domain.ErrTransferFailed
	}

	return result, nil
}

func legDescriptions(arg domain.CreateTransferParams) (fromDesc, toDesc string) {
	if arg.Description != "" {
		return arg.Description, arg.Description
	}

	fromDesc = fmt.Sprintf("Sent to account %d", arg.ToAccountID)
	toDesc = fmt.Sprintf("Received from account %d", arg.FromAccountID)

	return fromDesc, toDesc
}

func addBalances(
	ctx context.Context,
	r *accountrepo.RepoPGS,
	account1ID int64, amount1 string,
	account2ID int64, amount2 string,
) (domain.Account, domain.Account, error) {
	account1, err := r.AddBalance(ctx, amount1, account1ID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	account2, err := r.AddBalance(ctx, amount2, account2ID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	return account1, account2, nil
}
