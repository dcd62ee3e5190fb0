// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"

	"github.com/peerwallet/peerwallet/internal/accountrepo"
	"github.com/peerwallet/peerwallet/internal/domain"
	"github.com/peerwallet/peerwallet/internal/entryrepo"
	"github.com/peerwallet/peerwallet/internal/messagerepo"
	"github.com/peerwallet/peerwallet/internal/userrepo"
	"github.com/peerwallet/peerwallet/pkg/dbpkg"
	"github.com/peerwallet/peerwallet/pkg/passpkg"
	"github.com/peerwallet/peerwallet/pkg/randompkg"
)

// SeedUser creates random User inside a test transaction.
func SeedUser(t *testing.T, tx dbpkg.SQLInterface) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(32))
	if err != nil {
		t.Fatalf("passpkg.Hash(randompkg.String(32)) returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.String(10),
		Email:          randompkg.Email(),
	}

	userRepo := userrepo.NewTxRepoPGS(tx)
	user, err := userRepo.Create(context.Background(), arg)

	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedAccount creates Account with the given balance inside a test transaction.
func SeedAccount(t *testing.T, tx dbpkg.SQLInterface, username, balance string) domain.Account {
	t.Helper()

	accountRepo := accountrepo.NewRepoPGS(tx)

	account, err := accountRepo.Create(context.Background(), username, balance)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %v, %v) returned error: %v", username, balance, err)
	}

	return account
}

// SeedAccountWith1000Balance creates Account with 1000 on balance inside a test transaction.
func SeedAccountWith1000Balance(t *testing.T, tx dbpkg.SQLInterface, username string) domain.Account {
	t.Helper()

	return SeedAccount(t, tx, username, "1000")
}

// SeedEntry creates Entry inside a test transaction.
func SeedEntry(t *testing.T, tx dbpkg.SQLInterface, accountID int64, kind, amount string) domain.Entry {
	t.Helper()

	entryRepo := entryrepo.NewRepoPGS(tx)

	entry, err := entryRepo.Create(context.Background(), accountID, kind, amount, "")
	if err != nil {
		t.Fatalf("entryRepo.Create(context.Background(), %v, %v, %v) returned error: %v",
			accountID, kind, amount, err)
	}

	return entry
}

// SeedEntries creates Entries with random amounts inside a test transaction,
// alternating credits and debits.
func SeedEntries(t *testing.T, tx dbpkg.SQLInterface, count int, accountID int64) []domain.Entry {
	t.Helper()

	entries := make([]domain.Entry, count)

	for i := range entries {
		kind := domain.EntryKindCredit
		if i%2 == 1 {
			kind = domain.EntryKindDebit
		}

		entries[i] = SeedEntry(t, tx, accountID, kind, randompkg.MoneyAmountBetween(1, 1000))
	}

	return entries
}

// SeedMessage creates Message inside a test transaction.
func SeedMessage(t *testing.T, tx dbpkg.SQLInterface, sender, receiver, content string) domain.Message {
	t.Helper()

	messageRepo := messagerepo.NewRepoPGS(tx)

	message, err := messageRepo.Create(context.Background(), sender, receiver, content)
	if err != nil {
		t.Fatalf("messageRepo.Create(context.Background(), %v, %v, %v) returned error: %v",
			sender, receiver, content, err)
	}

	return message
}
