package transferservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/peerwallet/peerwallet/internal/domain"
	"github.com/peerwallet/peerwallet/pkg/errorspkg"
	"github.com/peerwallet/peerwallet/pkg/eventpkg"
	"github.com/peerwallet/peerwallet/pkg/randompkg"
)

func randomAccount(id int64, balance string) domain.Account {
	return domain.Account{
		ID:        id,
		Owner:     randompkg.Owner(),
		Balance:   balance,
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

func TestTransfer(t *testing.T) {
	testAccount1 := randomAccount(1, "1000")
	testAccount2 := randomAccount(2, "1000")
	testAmount := "100"

	testTxResult := domain.TransferTxResult{
		Transfer: domain.Transfer{
			FromAccountID: testAccount1.ID,
			ToAccountID:   testAccount2.ID,
			Amount:        testAmount,
		},
		FromAccount: testAccount1,
		ToAccount:   testAccount2,
		FromEntry: domain.Entry{
			AccountID: testAccount1.ID,
			Kind:      domain.EntryKindDebit,
			Amount:    testAmount,
		},
		ToEntry: domain.Entry{
			AccountID: testAccount2.ID,
			Kind:      domain.EntryKindCredit,
			Amount:    testAmount,
		},
	}

	type input struct {
		fromUsername string
		arg          domain.CreateTransferParams
	}

	testCases := []struct {
		name          string
		input         input
		buildStubs    func(repo *MockRepo, accountService *MockAccountService)
		checkResponse func(res domain.TransferTxResult, err error)
	}{
		{
			name: "Invalid amount",
			input: input{
				fromUsername: testAccount1.Owner,
				arg: domain.CreateTransferParams{
					FromAccountID: testAccount1.ID,
					ToAccountID:   testAccount2.ID,
					Amount:        "!@#$",
				},
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name: "Negative amount",
			input: input{
				fromUsername: testAccount1.Owner,
				arg: domain.CreateTransferParams{
					FromAccountID: testAccount1.ID,
					ToAccountID:   testAccount2.ID,
					Amount:        "-100",
				},
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrNegativeAmount.Error())
			},
		},
		{
			name: "Zero amount",
			input: input{
				fromUsername: testAccount1.Owner,
				arg: domain.CreateTransferParams{
					FromAccountID: testAccount1.ID,
					ToAccountID:   testAccount2.ID,
					Amount:        "0",
				},
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrNegativeAmount.Error())
			},
		},
		{
			name: "Self transfer",
			input: input{
				fromUsername: testAccount1.Owner,
				arg: domain.CreateTransferParams{
					FromAccountID: testAccount1.ID,
					ToAccountID:   testAccount1.ID,
					Amount:        testAmount,
				},
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrSelfTransfer.Error())
			},
		},
		{
			name: "Account service err",
			input: input{
				fromUsername: testAccount1.Owner,
				arg: domain.CreateTransferParams{
					FromAccountID: testAccount1.ID,
					ToAccountID:   testAccount2.ID,
					Amount:        testAmount,
				},
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount1.ID)).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, errorspkg.ErrInternal.Error())
			},
		},
		{
			name: "Invalid owner",
			input: input{
				fromUsername: testAccount1.Owner,
				arg: domain.CreateTransferParams{
					FromAccountID: testAccount2.ID,
					ToAccountID:   testAccount1.ID,
					Amount:        testAmount,
				},
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount2.ID)).
					Times(1).
					Return(domain.Account{
						Owner: testAccount2.Owner,
					}, nil)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidOwner.Error())
			},
		},
		{
			name: "From account internal balance error",
			input: input{
				fromUsername: testAccount1.Owner,
				arg: domain.CreateTransferParams{
					FromAccountID: testAccount1.ID,
					ToAccountID:   testAccount2.ID,
					Amount:        testAmount,
				},
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount1.ID)).
					Times(1).
					Return(domain.Account{
						Owner:   testAccount1.Owner,
						Balance: "invalid",
					}, nil)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, errors.New("can't convert invalid to decimal").Error())
			},
		},
		{
			name: "Insufficient balance",
			input: input{
				fromUsername: testAccount1.Owner,
				arg: domain.CreateTransferParams{
					FromAccountID: testAccount1.ID,
					ToAccountID:   testAccount2.ID,
					Amount:        "10000",
				},
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount1.ID)).
					Times(1).
					Return(testAccount1, nil)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInsufficientBalance.Error())
			},
		},
		{
			name: "ToAccount service err",
			input: input{
				fromUsername: testAccount1.Owner,
				arg: domain.CreateTransferParams{
					FromAccountID: testAccount1.ID,
					ToAccountID:   testAccount2.ID,
					Amount:        testAmount,
				},
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount1.ID)).
					Times(1).
					Return(testAccount1, nil)
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount2.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountNotFound.Error())
			},
		},
		{
			name: "Repo transfer err",
			input: input{
				fromUsername: testAccount1.Owner,
				arg: domain.CreateTransferParams{
					FromAccountID: testAccount1.ID,
					ToAccountID:   testAccount2.ID,
					Amount:        testAmount,
				},
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount1.ID)).
					Times(1).
					Return(testAccount1, nil)
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount2.ID)).
					Times(1).
					Return(testAccount2, nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferTxResult{}, domain.ErrTransferFailed)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrTransferFailed.Error())
			},
		},
		{
			name: "OK",
			input: input{
				fromUsername: testAccount1.Owner,
				arg: domain.CreateTransferParams{
					FromAccountID: testAccount1.ID,
					ToAccountID:   testAccount2.ID,
					Amount:        testAmount,
				},
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount1.ID)).
					Times(1).
					Return(testAccount1, nil)
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount2.ID)).
					Times(1).
					Return(testAccount2, nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).
					Times(1).
					Return(testTxResult, nil)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Equal(t, testTxResult, res)
				require.NoError(t, err)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transferRepo := NewMockRepo(ctrl)
			accountService := NewMockAccountService(ctrl)
			transferService := New(transferRepo, accountService, eventpkg.NoOpPublisher{})

			tc.buildStubs(transferRepo, accountService)

			tc.checkResponse(transferService.Transfer(
				context.Background(),
				tc.input.fromUsername,
				tc.input.arg))
		})
	}
}

func TestDeposit(t *testing.T) {
	testAccount := randomAccount(1, "1000")
	testAmount := "250"

	testResult := domain.DepositTxResult{
		Account: testAccount,
		Entry: domain.Entry{
			AccountID: testAccount.ID,
			Kind:      domain.EntryKindCredit,
			Amount:    testAmount,
		},
	}

	testCases := []struct {
		name          string
		amount        string
		buildStubs    func(repo *MockRepo, accountService *MockAccountService)
		checkResponse func(res domain.DepositTxResult, err error)
	}{
		{
			name:   "Invalid amount",
			amount: "abc",
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Deposit(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().GetByOwner(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.DepositTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name:   "Negative amount",
			amount: "-250",
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Deposit(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().GetByOwner(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.DepositTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrNegativeAmount.Error())
			},
		},
		{
			name:   "Account not found",
			amount: testAmount,
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Deposit(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().GetByOwner(gomock.Any(), gomock.Eq(testAccount.Owner)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(res domain.DepositTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountNotFound.Error())
			},
		},
		{
			name:   "Repo deposit err",
			amount: testAmount,
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().GetByOwner(gomock.Any(), gomock.Eq(testAccount.Owner)).
					Times(1).
					Return(testAccount, nil)
				repo.EXPECT().Deposit(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.DepositTxResult{}, errorspkg.ErrInternal)
			},
			checkResponse: func(res domain.DepositTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, errorspkg.ErrInternal.Error())
			},
		},
		{
			name:   "OK",
			amount: testAmount,
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().GetByOwner(gomock.Any(), gomock.Eq(testAccount.Owner)).
					Times(1).
					Return(testAccount, nil)
				repo.EXPECT().Deposit(gomock.Any(), gomock.Eq(domain.CreateDepositParams{
					AccountID: testAccount.ID,
					Amount:    testAmount,
				})).
					Times(1).
					Return(testResult, nil)
			},
			checkResponse: func(res domain.DepositTxResult, err error) {
				require.Equal(t, testResult, res)
				require.NoError(t, err)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transferRepo := NewMockRepo(ctrl)
			accountService := NewMockAccountService(ctrl)
			transferService := New(transferRepo, accountService, eventpkg.NoOpPublisher{})

			tc.buildStubs(transferRepo, accountService)

			tc.checkResponse(transferService.Deposit(
				context.Background(),
				testAccount.Owner,
				tc.amount,
				""))
		})
	}
}
