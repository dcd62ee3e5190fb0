// Package messageservice manages business logic layer of chat messages.
package messageservice

import (
	"context"
	"strings"

	"github.com/peerwallet/peerwallet/internal/domain"
)

// Repo provides data access layer interface needed by message service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package messageservice
type Repo interface {
	Create(ctx context.Context, sender, receiver, content string) (domain.Message, error)
	ListConversation(ctx context.Context, user1, user2 string, limit, offset int32) ([]domain.Message, error)
	ListInbox(ctx context.Context, receiver string, limit, offset int32) ([]domain.Message, error)
}

// UserGetter resolves message participants.
type UserGetter interface {
	Get(ctx context.Context, username string) (domain.UserWithoutPassword, error)
}

// Service facilitates message service layer logic.
type Service struct {
	repo  Repo
	users UserGetter
}

// New returns message service struct to manage message business logic.
func New(mr Repo, ug UserGetter) *Service {
	return &Service{
		repo:  mr,
		users: ug,
	}
}

// Send persists a direct message after checking both participants exist.
func (s *Service) Send(ctx context.Context, sender, receiver, content string) (domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Message{}, domain.ErrEmptyMessage
	}

	if _, err := s.users.Get(ctx, receiver); err != nil {
		if err == domain.ErrUserNotFound {
			return domain.Message{}, domain.ErrMessageParticipantNotFound
		}

		return domain.Message{}, err
	}

	return s.repo.Create(ctx, sender, receiver, content)
}

// Conversation returns messages exchanged between two users, oldest first.
func (s *Service) Conversation(ctx context.Context, user1, user2 string, pageSize, pageID int32) ([]domain.Message, error) {
	return s.repo.ListConversation(ctx, user1, user2, pageSize, (pageID-1)*pageSize)
}

// Inbox returns messages received by the user, most recent first.
func (s *Service) Inbox(ctx context.Context, receiver string, pageSize, pageID int32) ([]domain.Message, error) {
	return s.repo.ListInbox(ctx, receiver, pageSize, (pageID-1)*pageSize)
}
