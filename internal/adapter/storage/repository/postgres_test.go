package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/kohai/gamecredit/internal/adapter/config"
	"github.com/kohai/gamecredit/internal/adapter/storage"
	"github.com/kohai/gamecredit/internal/adapter/storage/repository"
	"github.com/kohai/gamecredit/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRepository connects to TEST_DATABASE_URI and skips the test when it is unset.
func newRepository(t *testing.T) *repository.Repository {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URI")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URI is not set")
	}

	db, err := storage.NewDBStorage(context.Background(), &config.Database{DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.RunMigrations())

	repo, err := repository.NewRepository(db)
	require.NoError(t, err)
	return repo
}

func newOrder(userID uint64) *domain.Order {
	suffix := uuid.NewString()
	return &domain.Order{
		Number:         domain.OrderNumber("TEST-" + suffix[:12]),
		UserID:         userID,
		Wallet:         "5Q544fKrFoe6tsEbD7S8EmxGTJYAKtTVhAW5Q5pge4j1",
		Amount:         decimal.MustParse("3.50"),
		OriginalAmount: decimal.MustParse("3.50"),
		Currency:       "USD",
		CryptoAmount:   decimal.MustParse("0.020000000"),
		CryptoCurrency: "SOL",
		Status:         domain.OrderStatusPending,
		OrderType:      domain.OrderTypeGameCredit,
		ProductID:      "ML",
		ItemID:         "86",
		UserData:       map[string]string{"userId": "1", "zoneId": "2"},
		CryptoTransaction: &domain.CryptoTransaction{
			Signature:  "sig-" + suffix,
			WalletFrom: "5Q544fKrFoe6tsEbD7S8EmxGTJYAKtTVhAW5Q5pge4j1",
			Amount:     decimal.MustParse("0.02"),
			Token:      "SOL",
			Network:    domain.NetworkSolana,
			Decimals:   9,
			Direction:  domain.DirectionInbound,
			State:      domain.CryptoTransactionPending,
		},
	}
}

func TestRepository_CreateOrder(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()
	userID := uint64(time.Now().UnixNano())

	order, err := repo.CreateOrder(ctx, newOrder(userID))
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, order.ID, order.CryptoTransaction.OrderID)

	read, err := repo.ReadOrder(ctx, order.Number)
	require.NoError(t, err)
	assert.Equal(t, order.Number, read.Number)
	assert.Equal(t, "2", read.UserData["zoneId"])
	assert.Zero(t, read.CryptoAmount.Cmp(decimal.MustParse("0.02")))
	assert.Equal(t, order.CryptoTransaction.Signature, read.CryptoTransaction.Signature)

	active, err := repo.HasActiveOrder(ctx, userID)
	require.NoError(t, err)
	assert.True(t, active)

	second := newOrder(userID)
	_, err = repo.CreateOrder(ctx, second)
	assert.ErrorIs(t, err, domain.ErrActiveOrderExists)

	dup := newOrder(userID + 1)
	dup.CryptoTransaction.Signature = order.CryptoTransaction.Signature
	_, err = repo.CreateOrder(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrSignatureAlreadyUsed)

	_, err = repo.ReadOrder(ctx, "TEST-missing")
	assert.ErrorIs(t, err, domain.ErrDataNotFound)
}

func TestRepository_UpdateOrder(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()

	order, err := repo.CreateOrder(ctx, newOrder(uint64(time.Now().UnixNano())))
	require.NoError(t, err)

	_, err = repo.UpdateOrder(ctx, order.Number, func(o *domain.Order) error {
		o.TrackingNumber = "INV-1"
		return domain.ErrInvalidTransition
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	updated, err := repo.UpdateOrder(ctx, order.Number, func(o *domain.Order) error {
		if err := o.FailWith("vendor rejected"); err != nil {
			return err
		}
		return o.CryptoTransaction.Fail("vendor rejected")
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusFailed, updated.Status)

	read, err := repo.ReadOrder(ctx, order.Number)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusFailed, read.Status)
	assert.Empty(t, read.TrackingNumber)
	assert.Equal(t, domain.CryptoTransactionFailed, read.CryptoTransaction.State)
}

func TestRepository_Jobs(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()

	number := domain.OrderNumber("TEST-" + uuid.NewString()[:12])
	job := &domain.Job{Kind: domain.JobVerifyPayment, OrderNumber: number, MaxAttempts: 3}
	require.NoError(t, repo.Enqueue(ctx, job))
	require.NoError(t, repo.Enqueue(ctx, &domain.Job{Kind: domain.JobVerifyPayment, OrderNumber: number, MaxAttempts: 3}))

	var claimed *domain.Job
	for i := 0; i < 10 && claimed == nil; i++ {
		jobs, err := repo.ClaimJobs(ctx, 100)
		require.NoError(t, err)
		for _, j := range jobs {
			if j.OrderNumber == number {
				claimed = j
			}
		}
	}
	require.NotNil(t, claimed)
	assert.Equal(t, job.ID, claimed.ID)
	assert.Equal(t, 1, claimed.Attempts)
	assert.Equal(t, domain.JobStatusRunning, claimed.Status)

	require.NoError(t, repo.RescheduleJob(ctx, claimed.ID, time.Now().Add(time.Hour), "rpc down"))
	require.NoError(t, repo.CompleteJob(ctx, claimed.ID))
	assert.ErrorIs(t, repo.FailJob(ctx, uuid.New(), "x"), domain.ErrDataNotFound)
}

func TestRepository_ListOrdersForReconciliation(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()

	pending, err := repo.CreateOrder(ctx, newOrder(uint64(time.Now().UnixNano())))
	require.NoError(t, err)

	processing, err := repo.CreateOrder(ctx, newOrder(uint64(time.Now().UnixNano())))
	require.NoError(t, err)
	_, err = repo.UpdateOrder(ctx, processing.Number, func(o *domain.Order) error {
		if _, err := o.Fire(domain.EventPay); err != nil {
			return err
		}
		_, err := o.Fire(domain.EventProcess)
		return err
	})
	require.NoError(t, err)

	failed, err := repo.CreateOrder(ctx, newOrder(uint64(time.Now().UnixNano())))
	require.NoError(t, err)
	_, err = repo.UpdateOrder(ctx, failed.Number, func(o *domain.Order) error {
		return o.FailWith("expired")
	})
	require.NoError(t, err)

	orders, err := repo.ListOrdersForReconciliation(ctx, time.Now().Add(time.Minute), 10_000)
	require.NoError(t, err)

	found := map[domain.OrderNumber]bool{}
	for _, o := range orders {
		found[o.Number] = true
	}
	assert.True(t, found[pending.Number])
	assert.True(t, found[processing.Number])
	assert.False(t, found[failed.Number])
}
