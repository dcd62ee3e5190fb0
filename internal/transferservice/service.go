// Package transferservice manages business logic layer of transfers and deposits.
package transferservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/peerwallet/peerwallet/internal/domain"
	"github.com/peerwallet/peerwallet/pkg/eventpkg"
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
	Deposit(ctx context.Context, arg domain.CreateDepositParams) (domain.DepositTxResult, error)
}

// AccountService provides the account lookups needed to validate transfers.
type AccountService interface {
	Get(ctx context.Context, id int64) (domain.Account, error)
	GetByOwner(ctx context.Context, owner string) (domain.Account, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo           Repo
	accountService AccountService
	publisher      eventpkg.Publisher
}

// New returns transfer service struct to manage transfer business logic.
func New(tr Repo, as AccountService, pub eventpkg.Publisher) *Service {
	return &Service{
		repo:           tr,
		accountService: as,
		publisher:      pub,
	}
}

// validAmount parses the amount and rejects malformed or non-positive values
// before any storage I/O happens.
func validAmount(amount string) (decimal.Decimal, error) {
	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, domain.ErrNegativeAmount
	}

	return amountDecimal, nil
}

func (s *Service) validRequest(ctx context.Context, fromUsername string, arg domain.CreateTransferParams) error {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := validAmount(arg.Amount)
	if err != nil {
		l.Info().Err(err).Str("amount", arg.Amount).Send()
		return err
	}

	if arg.FromAccountID == arg.ToAccountID {
		return domain.ErrSelfTransfer
	}

	fromAccount, err := s.accountService.Get(ctx, arg.FromAccountID)
	if err != nil {
		l.Info().Err(err).Send()
		return err
	}

	if fromAccount.Owner != fromUsername {
		l.Warn().Str("owner", fromAccount.Owner).Str("caller", fromUsername).Send()
		return domain.ErrInvalidOwner
	}

	currentFromAccountBalance, err := decimal.NewFromString(fromAccount.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return err
	}

	if currentFromAccountBalance.LessThan(amountDecimal) {
		return domain.ErrInsufficientBalance
	}

	if _, err = s.accountService.Get(ctx, arg.ToAccountID); err != nil {
		l.Info().Err(err).Send()
		return err
	}

	return nil
}

// Transfer checks if the transfer request is valid and then executes the
// transfer transaction.
//
// The balance pre-check here is advisory: the authoritative overdraft guard is
// the non-negative balance constraint enforced inside the transaction, so two
// concurrent transfers cannot both pass validation and commit into overdraft.
func (s *Service) Transfer(ctx context.Context, fromUsername string, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	if err := s.validRequest(ctx, fromUsername, arg); err != nil {
		return domain.TransferTxResult{}, err
	}

	result, err := s.repo.Transfer(ctx, arg)
	if err != nil {
		return result, err
	}

	s.publish(ctx, eventpkg.TopicTransferCompleted, eventpkg.TransferCompleted{
		EventID:       uuid.New(),
		TransferID:    result.Transfer.ID,
		FromAccountID: result.Transfer.FromAccountID,
		ToAccountID:   result.Transfer.ToAccountID,
		Amount:        result.Transfer.Amount,
		OccurredAt:    time.Now().UTC(),
	})

	return result, nil
}

// Deposit credits the caller's account from an external funds inflow.
func (s *Service) Deposit(ctx context.Context, owner string, amount, description string) (domain.DepositTxResult, error) {
	l := zerolog.Ctx(ctx)

	if _, err := validAmount(amount); err != nil {
		l.Info().Err(err).Str("amount", amount).Send()
		return domain.DepositTxResult{}, err
	}

	account, err := s.accountService.GetByOwner(ctx, owner)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.DepositTxResult{}, err
	}

	result, err := s.repo.Deposit(ctx, domain.CreateDepositParams{
		AccountID:   account.ID,
		Amount:      amount,
		Description: description,
	})
	if err != nil {
		return result, err
	}

	s.publish(ctx, eventpkg.TopicDepositCompleted, eventpkg.DepositCompleted{
		EventID:    uuid.New(),
		AccountID:  result.Account.ID,
		EntryID:    result.Entry.ID,
		Amount:     result.Entry.Amount,
		OccurredAt: time.Now().UTC(),
	})

	return result, nil
}

// publish sends the event on a best effort basis. A broker outage must not
// fail a transfer that has already committed.
func (s *Service) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("topic", topic).Msg("event publish failed")
	}
}
