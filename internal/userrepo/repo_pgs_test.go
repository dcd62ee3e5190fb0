//go:build integration

package userrepo_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/peerwallet/peerwallet/internal/accountrepo"
	"github.com/peerwallet/peerwallet/internal/domain"
	"github.com/peerwallet/peerwallet/internal/integrationtest"
	"github.com/peerwallet/peerwallet/internal/test"
	"github.com/peerwallet/peerwallet/internal/userrepo"
	"github.com/peerwallet/peerwallet/pkg/configpkg"
	"github.com/peerwallet/peerwallet/pkg/passpkg"
	"github.com/peerwallet/peerwallet/pkg/randompkg"
)

var (
	dbDriver string
	dbSource string
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbDriver = config.DBDriver
	dbSource = config.DBSource

	os.Exit(m.Run())
}

func TestCreate(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		t.Parallel()

		tx := integrationtest.SetupTX(t, dbDriver, dbSource)
		userRepo := userrepo.NewTxRepoPGS(tx)

		hashedPassword, err := passpkg.Hash(randompkg.String(10))
		if err != nil {
			t.Fatalf("passpkg.Hash(randompkg.String(10)) returned error: %v", err)
		}

		arg := domain.CreateUserParams{
			Username:       randompkg.Owner(),
			HashedPassword: hashedPassword,
			FullName:       randompkg.String(10),
			Email:          randompkg.Email(),
		}

		got, err := userRepo.Create(context.Background(), arg)
		if err != nil {
			t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
		}

		want := domain.User{
			Username:       arg.Username,
			HashedPassword: arg.HashedPassword,
			FullName:       arg.FullName,
			Email:          arg.Email,
		}

		ignoreFields := cmpopts.IgnoreFields(domain.User{}, "PasswordChangedAt", "CreatedAt")
		if diff := cmp.Diff(want, got, ignoreFields); diff != "" {
			t.Errorf("userRepo.Create(context.Background(), arg) returned unexpected difference (-want +got):\n%s", diff)
		}

		if got.CreatedAt.IsZero() {
			t.Error("got.CreatedAt is zero, want non-zero")
		}
	})

	t.Run("ErrUsernameAlreadyExists", func(t *testing.T) {
		t.Parallel()

		tx := integrationtest.SetupTX(t, dbDriver, dbSource)
		userRepo := userrepo.NewTxRepoPGS(tx)

		user := test.SeedUser(t, tx)

		arg := domain.CreateUserParams{
			Username:       user.Username,
			HashedPassword: user.HashedPassword,
			FullName:       randompkg.String(10),
			Email:          randompkg.Email(),
		}

		if _, err := userRepo.Create(context.Background(), arg); err != domain.ErrUsernameAlreadyExists {
			t.Fatalf("userRepo.Create(context.Background(), %+v) returned error %v, want %v",
				arg, err, domain.ErrUsernameAlreadyExists)
		}
	})

	t.Run("ErrEmailAlreadyExists", func(t *testing.T) {
		t.Parallel()

		tx := integrationtest.SetupTX(t, dbDriver, dbSource)
		userRepo := userrepo.NewTxRepoPGS(tx)

		user := test.SeedUser(t, tx)

		arg := domain.CreateUserParams{
			Username:       randompkg.Owner(),
			HashedPassword: user.HashedPassword,
			FullName:       randompkg.String(10),
			Email:          user.Email,
		}

		if _, err := userRepo.Create(context.Background(), arg); err != domain.ErrEmailAlreadyExists {
			t.Fatalf("userRepo.Create(context.Background(), %+v) returned error %v, want %v",
				arg, err, domain.ErrEmailAlreadyExists)
		}
	})
}

func TestCreateWithAccount(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		db := integrationtest.SetupDB(t, dbDriver, dbSource)
		userRepo := userrepo.NewRepoPGS(db)

		hashedPassword, err := passpkg.Hash(randompkg.String(10))
		if err != nil {
			t.Fatalf("passpkg.Hash(randompkg.String(10)) returned error: %v", err)
		}

		arg := domain.CreateUserParams{
			Username:       randompkg.Owner(),
			HashedPassword: hashedPassword,
			FullName:       randompkg.String(10),
			Email:          randompkg.Email(),
		}

		const balance = "250.5"

		user, account, err := userRepo.CreateWithAccount(context.Background(), arg, balance)
		if err != nil {
			t.Fatalf("userRepo.CreateWithAccount(context.Background(), %+v, %v) returned error: %v",
				arg, balance, err)
		}

		if user.Username != arg.Username {
			t.Errorf("user.Username = %v, want %v", user.Username, arg.Username)
		}

		if account.Owner != arg.Username {
			t.Errorf("account.Owner = %v, want %v", account.Owner, arg.Username)
		}

		if account.Balance != balance {
			t.Errorf("account.Balance = %v, want %v", account.Balance, balance)
		}

		gotAccount, err := accountrepo.NewRepoPGS(db).GetByOwner(context.Background(), arg.Username)
		if err != nil {
			t.Fatalf("accountRepo.GetByOwner(context.Background(), %v) returned error: %v", arg.Username, err)
		}

		if gotAccount.Balance != balance {
			t.Errorf("gotAccount.Balance = %v, want %v", gotAccount.Balance, balance)
		}
	})

	t.Run("RollsBackUserWhenAccountFails", func(t *testing.T) {
		db := integrationtest.SetupDB(t, dbDriver, dbSource)
		userRepo := userrepo.NewRepoPGS(db)

		hashedPassword, err := passpkg.Hash(randompkg.String(10))
		if err != nil {
			t.Fatalf("passpkg.Hash(randompkg.String(10)) returned error: %v", err)
		}

		arg := domain.CreateUserParams{
			Username:       randompkg.Owner(),
			HashedPassword: hashedPassword,
			FullName:       randompkg.String(10),
			Email:          randompkg.Email(),
		}

		if _, _, err := userRepo.CreateWithAccount(context.Background(), arg, "not-a-number"); err == nil {
			t.Fatal(`userRepo.CreateWithAccount(context.Background(), arg, "not-a-number") returned nil error, want error`)
		}

		if _, err := userRepo.Get(context.Background(), arg.Username); err != domain.ErrUserNotFound {
			t.Fatalf("userRepo.Get(context.Background(), %v) returned error %v, want %v",
				arg.Username, err, domain.ErrUserNotFound)
		}
	})
}

func TestGet(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		t.Parallel()

		tx := integrationtest.SetupTX(t, dbDriver, dbSource)
		userRepo := userrepo.NewTxRepoPGS(tx)

		want := test.SeedUser(t, tx)

		got, err := userRepo.Get(context.Background(), want.Username)
		if err != nil {
			t.Fatalf("userRepo.Get(context.Background(), %v) returned error: %v", want.Username, err)
		}

		compareTimes := cmpopts.EquateApproxTime(time.Second)
		if diff := cmp.Diff(want, got, compareTimes); diff != "" {
			t.Errorf("userRepo.Get(context.Background(), %v) returned unexpected difference (-want +got):\n%s",
				want.Username, diff)
		}
	})

	t.Run("ErrUserNotFound", func(t *testing.T) {
		t.Parallel()

		tx := integrationtest.SetupTX(t, dbDriver, dbSource)
		userRepo := userrepo.NewTxRepoPGS(tx)

		if _, err := userRepo.Get(context.Background(), "nonexistent"); err != domain.ErrUserNotFound {
			t.Fatalf(`userRepo.Get(context.Background(), "nonexistent") returned error %v, want %v`,
				err, domain.ErrUserNotFound)
		}
	})
}

func TestList(t *testing.T) {
	t.Run("MatchUsername", func(t *testing.T) {
		t.Parallel()

		tx := integrationtest.SetupTX(t, dbDriver, dbSource)
		userRepo := userrepo.NewTxRepoPGS(tx)

		want := test.SeedUser(t, tx)
		test.SeedUser(t, tx)

		got, err := userRepo.List(context.Background(), want.Username, 10, 0)
		if err != nil {
			t.Fatalf("userRepo.List(context.Background(), %v, 10, 0) returned error: %v", want.Username, err)
		}

		compareTimes := cmpopts.EquateApproxTime(time.Second)
		if diff := cmp.Diff([]domain.User{want}, got, compareTimes); diff != "" {
			t.Errorf("userRepo.List(context.Background(), %v, 10, 0) returned unexpected difference (-want +got):\n%s",
				want.Username, diff)
		}
	})

	t.Run("MatchFullName", func(t *testing.T) {
		t.Parallel()

		tx := integrationtest.SetupTX(t, dbDriver, dbSource)
		userRepo := userrepo.NewTxRepoPGS(tx)

		hashedPassword, err := passpkg.Hash(randompkg.String(10))
		if err != nil {
			t.Fatalf("passpkg.Hash(randompkg.String(10)) returned error: %v", err)
		}

		fullName := "Unmistakable Fullname " + randompkg.String(8)
		arg := domain.CreateUserParams{
			Username:       randompkg.Owner(),
			HashedPassword: hashedPassword,
			FullName:       fullName,
			Email:          randompkg.Email(),
		}

		want, err := userRepo.Create(context.Background(), arg)
		if err != nil {
			t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
		}

		got, err := userRepo.List(context.Background(), fullName, 10, 0)
		if err != nil {
			t.Fatalf("userRepo.List(context.Background(), %v, 10, 0) returned error: %v", fullName, err)
		}

		compareTimes := cmpopts.EquateApproxTime(time.Second)
		if diff := cmp.Diff([]domain.User{want}, got, compareTimes); diff != "" {
			t.Errorf("userRepo.List(context.Background(), %v, 10, 0) returned unexpected difference (-want +got):\n%s",
				fullName, diff)
		}
	})

	t.Run("NoMatch", func(t *testing.T) {
		t.Parallel()

		tx := integrationtest.SetupTX(t, dbDriver, dbSource)
		userRepo := userrepo.NewTxRepoPGS(tx)

		test.SeedUser(t, tx)

		filter := randompkg.String(30)

		got, err := userRepo.List(context.Background(), filter, 10, 0)
		if err != nil {
			t.Fatalf("userRepo.List(context.Background(), %v, 10, 0) returned error: %v", filter, err)
		}

		if len(got) != 0 {
			t.Errorf("len(got) = %v, want 0", len(got))
		}
	})
}

func TestUpdate(t *testing.T) {
	t.Run("FullName", func(t *testing.T) {
		t.Parallel()

		tx := integrationtest.SetupTX(t, dbDriver, dbSource)
		userRepo := userrepo.NewTxRepoPGS(tx)

		user := test.SeedUser(t, tx)

		arg := domain.UpdateUserParams{
			Username: user.Username,
			FullName: "New Name",
		}

		got, err := userRepo.Update(context.Background(), arg)
		if err != nil {
			t.Fatalf("userRepo.Update(context.Background(), %+v) returned error: %v", arg, err)
		}

		if got.FullName != arg.FullName {
			t.Errorf("got.FullName = %v, want %v", got.FullName, arg.FullName)
		}

		if got.HashedPassword != user.HashedPassword {
			t.Errorf("got.HashedPassword = %v, want unchanged %v", got.HashedPassword, user.HashedPassword)
		}

		if !got.PasswordChangedAt.Equal(user.PasswordChangedAt) {
			t.Errorf("got.PasswordChangedAt = %v, want unchanged %v", got.PasswordChangedAt, user.PasswordChangedAt)
		}
	})

	t.Run("Password", func(t *testing.T) {
		t.Parallel()

		tx := integrationtest.SetupTX(t, dbDriver, dbSource)
		userRepo := userrepo.NewTxRepoPGS(tx)

		user := test.SeedUser(t, tx)

		hashedPassword, err := passpkg.Hash(randompkg.String(10))
		if err != nil {
			t.Fatalf("passpkg.Hash(randompkg.String(10)) returned error: %v", err)
		}

		arg := domain.UpdateUserParams{
			Username:       user.Username,
			HashedPassword: hashedPassword,
		}

		got, err := userRepo.Update(context.Background(), arg)
		if err != nil {
			t.Fatalf("userRepo.Update(context.Background(), %+v) returned error: %v", arg, err)
		}

		if got.HashedPassword != hashedPassword {
			t.Errorf("got.HashedPassword = %v, want %v", got.HashedPassword, hashedPassword)
		}

		if got.FullName != user.FullName {
			t.Errorf("got.FullName = %v, want unchanged %v", got.FullName, user.FullName)
		}

		if got.PasswordChangedAt.Equal(user.PasswordChangedAt) {
			t.Error("got.PasswordChangedAt is unchanged, want changed")
		}
	})

	t.Run("ErrUserNotFound", func(t *testing.T) {
		t.Parallel()

		tx := integrationtest.SetupTX(t, dbDriver, dbSource)
		userRepo := userrepo.NewTxRepoPGS(tx)

		arg := domain.UpdateUserParams{
			Username: "nonexistent",
			FullName: "New Name",
		}

		if _, err := userRepo.Update(context.Background(), arg); err != domain.ErrUserNotFound {
			t.Fatalf("userRepo.Update(context.Background(), %+v) returned error %v, want %v",
				arg, err, domain.ErrUserNotFound)
		}
	})
}
