package domain_test

import (
	"testing"
	"time"

	"github.com/govalues/decimal"
	"github.com/kohai/gamecredit/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCryptoTransaction_Confirm(t *testing.T) {
	now := time.Now()
	tx := domain.CryptoTransaction{State: domain.CryptoTransactionPending, Amount: decimal.MustParse("0.02")}
	verified := &domain.VerifiedTransaction{
		Confirmations: 1,
		Transfer: domain.TransferDetails{
			From:        "sender",
			To:          "receiver",
			Amount:      decimal.MustParse("0.025"),
			Decimals:    9,
			Fee:         5000,
			BlockNumber: 42,
		},
	}

	err := tx.Confirm(verified, now)
	assert.NoError(t, err)
	assert.Equal(t, domain.CryptoTransactionConfirmed, tx.State)
	assert.Equal(t, "0.025", tx.Amount.String())
	assert.Equal(t, 1, tx.Confirmations)
	assert.Equal(t, uint64(42), tx.BlockNumber)
	assert.Equal(t, &now, tx.VerifiedAt)

	err = tx.Confirm(verified, now)
	assert.ErrorIs(t, err, domain.ErrTransitionNoop)

	err = tx.Fail("late failure")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, domain.CryptoTransactionConfirmed, tx.State)
}

func TestCryptoTransaction_FailAndExpire(t *testing.T) {
	tx := domain.CryptoTransaction{State: domain.CryptoTransactionPending}
	assert.NoError(t, tx.Expire("not found"))
	assert.Equal(t, domain.CryptoTransactionExpired, tx.State)
	assert.Equal(t, "not found", tx.ErrorMessage)

	tx = domain.CryptoTransaction{State: domain.CryptoTransactionPending}
	assert.NoError(t, tx.Fail("amount mismatch"))
	assert.Equal(t, domain.CryptoTransactionFailed, tx.State)
	assert.ErrorIs(t, tx.Expire("x"), domain.ErrInvalidTransition)
}
