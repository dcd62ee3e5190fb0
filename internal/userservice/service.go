// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/peerwallet/peerwallet/internal/domain"
	"github.com/peerwallet/peerwallet/pkg/errorspkg"
	"github.com/peerwallet/peerwallet/pkg/passpkg"
	"github.com/peerwallet/peerwallet/pkg/randompkg"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	CreateWithAccount(ctx context.Context, arg domain.CreateUserParams, balance string) (domain.User, domain.Account, error)
	Get(ctx context.Context, username string) (domain.User, error)
	List(ctx context.Context, filter string, limit, offset int32) ([]domain.User, error)
	Update(ctx context.Context, arg domain.UpdateUserParams) (domain.User, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo Repo
}

// New returns user service struct to manage user business logic.
func New(ur Repo) *Service {
	return &Service{
		repo: ur,
	}
}

// NewUserWithoutPassword returns user with removed sensitive data.
func NewUserWithoutPassword(u domain.User) domain.UserWithoutPassword {
	return domain.UserWithoutPassword{
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Create creates the user along with their wallet account and returns the user.
//
// The deployment seeds every new wallet with a randomized starting balance.
func (s *Service) Create(ctx context.Context, username, password, fullname, email string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserWithoutPassword

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	arg := domain.CreateUserParams{
		Username:       username,
		HashedPassword: hashedPassword,
		FullName:       fullname,
		Email:          email,
	}

	gotUser, _, err := s.repo.CreateWithAccount(ctx, arg, randompkg.StartingBalance())
	if err != nil {
		return result, err
	}

	result = NewUserWithoutPassword(gotUser)

	return result, nil
}

// CheckPassword checks if the password is valid for the given username.
func (s *Service) CheckPassword(ctx context.Context, username, pass string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var response domain.UserWithoutPassword

	gotUser, err := s.repo.Get(ctx, username)
	if err != nil {
		return response, err
	}

	err = passpkg.Check(pass, gotUser.HashedPassword)
	if err != nil {
		l.Warn().Err(err).Send()
		return response, domain.ErrWrongPassword
	}

	response = NewUserWithoutPassword(gotUser)

	return response, nil
}

// Get returns the user's profile without password data.
func (s *Service) Get(ctx context.Context, username string) (domain.UserWithoutPassword, error) {
	gotUser, err := s.repo.Get(ctx, username)
	if err != nil {
		return domain.UserWithoutPassword{}, err
	}

	return NewUserWithoutPassword(gotUser), nil
}

// List returns users matching the filter so a payer can pick a payee.
func (s *Service) List(ctx context.Context, filter string, pageSize, pageID int32) ([]domain.UserWithoutPassword, error) {
	users, err := s.repo.List(ctx, filter, pageSize, (pageID-1)*pageSize)
	if err != nil {
		return nil, err
	}

	result := make([]domain.UserWithoutPassword, 0, len(users))
	for _, u := range users {
		result = append(result, NewUserWithoutPassword(u))
	}

	return result, nil
}

// Update changes the user's profile; empty fields are left unchanged.
func (s *Service) Update(ctx context.Context, username, password, fullname string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var hashedPassword string

	if password != "" {
		var err error

		hashedPassword, err = passpkg.Hash(password)
		if err != nil {
			l.Error().Err(err).Send()
			return domain.UserWithoutPassword{}, errorspkg.ErrInternal
		}
	}

	gotUser, err := s.repo.Update(ctx, domain.UpdateUserParams{
		Username:       username,
		HashedPassword: hashedPassword,
		FullName:       fullname,
	})
	if err != nil {
		return domain.UserWithoutPassword{}, err
	}

	return NewUserWithoutPassword(gotUser), nil
}
