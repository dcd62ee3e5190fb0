// Package entryrepo manages repository layer of ledger entries.
//
// Entries are append-only: this package exposes no update or delete statements.
package entryrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/peerwallet/peerwallet/internal/domain"
	"github.com/peerwallet/peerwallet/pkg/dbpkg"
	"github.com/peerwallet/peerwallet/pkg/errorspkg"
)

// RepoPGS facilitates entry repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns entry RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    entries (account_id, kind, amount, description)
VALUES
    ($1, $2, $3, $4)
RETURNING id, account_id, kind, amount, description, created_at
`

// Create appends the entry and then returns it.
func (r *RepoPGS) Create(ctx context.Context, accountID int64, kind, amount, description string) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, accountID, kind, amount, description)

	var e domain.Entry

	err := row.Scan(
		&e.ID,
		&e.AccountID,
		&e.Kind,
		&e.Amount,
		&e.Description,
		&e.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "entries_account_id_fkey":
				return e, domain.ErrAccountNotFound
			case "entries_amount_check":
				return e, domain.ErrInvalidAmount
			}
		}

		return e, errorspkg.ErrInternal
	}

	return e, nil
}

const getQuery = `
SELECT id, account_id, kind, amount, description, created_at FROM entries
WHERE id = $1 LIMIT 1
`

// Get returns the entry with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var e domain.Entry

	err := row.Scan(
		&e.ID,
		&e.AccountID,
		&e.Kind,
		&e.Amount,
		&e.Description,
		&e.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return e, errorspkg.ErrInternal
	}

	return e, nil
}

const listAscQuery = `
SELECT id, account_id, kind, amount, description, created_at FROM entries
WHERE account_id = $1
ORDER BY created_at ASC, id ASC
LIMIT $2 OFFSET $3
`

const listDescQuery = `
SELECT id, account_id, kind, amount, description, created_at FROM entries
WHERE account_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`

// List returns the account's entries ordered by creation time, ties broken by
// insertion order.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error) {
	query := listDescQuery
	if arg.Ascending {
		query = listAscQuery
	}

	rows, err := r.db.QueryContext(ctx, query, arg.AccountID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}

	return scanEntries(ctx, rows)
}

const listInboxQuery = `
SELECT id, account_id, kind, amount, description, created_at FROM entries
WHERE account_id = $1 AND kind = 'credit'
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`

// ListInbox returns the account's received credits, most recent first.
func (r *RepoPGS) ListInbox(ctx context.Context, accountID int64, limit, offset int32) ([]domain.Entry, error) {
	rows, err := r.db.QueryContext(ctx, listInboxQuery, accountID, limit, offset)
	if err != nil {
		return nil, err
	}

	return scanEntries(ctx, rows)
}

func scanEntries(ctx context.Context, rows *sql.Rows) ([]domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	defer rows.Close()

	items := []domain.Entry{}

	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(
			&e.ID,
			&e.AccountID,
			&e.Kind,
			&e.Amount,
			&e.Description,
			&e.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, e)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
