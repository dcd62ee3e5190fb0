// Package messagerepo manages repository layer of chat messages.
package messagerepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/peerwallet/peerwallet/internal/domain"
	"github.com/peerwallet/peerwallet/pkg/dbpkg"
	"github.com/peerwallet/peerwallet/pkg/errorspkg"
)

// RepoPGS facilitates message repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns message RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    messages (sender, receiver, content)
VALUES
    ($1, $2, $3)
RETURNING id, sender, receiver, content, created_at
`

// Create persists the message and then returns it.
func (r *RepoPGS) Create(ctx context.Context, sender, receiver, content string) (domain.Message, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, sender, receiver, content)

	var m domain.Message

	err := row.Scan(
		&m.ID,
		&m.Sender,
		&m.Receiver,
		&m.Content,
		&m.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "messages_sender_fkey", "messages_receiver_fkey":
				return m, domain.ErrMessageParticipantNotFound
			}
		}

		return m, errorspkg.ErrInternal
	}

	return m, nil
}

const listConversationQuery = `
SELECT id, sender, receiver, content, created_at FROM messages
WHERE
    (sender = $1 AND receiver = $2) OR (sender = $2 AND receiver = $1)
ORDER BY created_at ASC, id ASC
LIMIT $3 OFFSET $4
`

// ListConversation returns messages exchanged between two users, oldest first.
func (r *RepoPGS) ListConversation(ctx context.Context, user1, user2 string, limit, offset int32) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, listConversationQuery, user1, user2, limit, offset)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return scanMessages(ctx, rows)
}

const listInboxQuery = `
SELECT id, sender, receiver, content, created_at FROM messages
WHERE receiver = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`

// ListInbox returns messages received by the user, most recent first.
func (r *RepoPGS) ListInbox(ctx context.Context, receiver string, limit, offset int32) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, listInboxQuery, receiver, limit, offset)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return scanMessages(ctx, rows)
}

func scanMessages(ctx context.Context, rows *sql.Rows) ([]domain.Message, error) {
	l := zerolog.Ctx(ctx)

	defer rows.Close()

	items := []domain.Message{}

	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(
			&m.ID,
			&m.Sender,
			&m.Receiver,
			&m.Content,
			&m.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
