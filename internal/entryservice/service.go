// Package entryservice manages business logic layer of ledger entries.
package entryservice

import (
	"context"

	"github.com/peerwallet/peerwallet/internal/domain"
)

// Repo provides data access layer interface needed by entry service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package entryservice
type Repo interface {
	List(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error)
	ListInbox(ctx context.Context, accountID int64, limit, offset int32) ([]domain.Entry, error)
}

// Service facilitates entry service layer logic.
type Service struct {
	repo Repo
}

// New returns entry service struct to manage entry business logic.
func New(er Repo) *Service {
	return &Service{repo: er}
}

// List returns the account's ledger entries in the requested order.
func (s *Service) List(ctx context.Context, accountID int64, ascending bool, pageSize, pageID int32) ([]domain.Entry, error) {
	arg := domain.ListEntriesParams{
		AccountID: accountID,
		Ascending: ascending,
		Limit:     pageSize,
		Offset:    (pageID - 1) * pageSize,
	}

	entries, err := s.repo.List(ctx, arg)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Inbox returns the account's received credits, most recent first.
func (s *Service) Inbox(ctx context.Context, accountID int64, pageSize, pageID int32) ([]domain.Entry, error) {
	entries, err := s.repo.ListInbox(ctx, accountID, pageSize, (pageID-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
