package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type CryptoTransactionState string

const (
	CryptoTransactionPending   CryptoTransactionState = "pending"
	CryptoTransactionConfirmed CryptoTransactionState = "confirmed"
	CryptoTransactionFailed    CryptoTransactionState = "failed"
	CryptoTransactionExpired   CryptoTransactionState = "expired"
)

type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

const NetworkSolana = "solana"

type CryptoTransaction struct {
	ID             int64
	OrderID        int64
	Signature      string
	WalletFrom     string
	WalletTo       string
	Amount         decimal.Decimal
	Token          string
	Network        string
	Decimals       int
	Direction      Direction
	State          CryptoTransactionState
	Confirmations  int
	Fee            uint64
	BlockNumber    uint64
	BlockTimestamp *time.Time
	VerifiedAt     *time.Time
	ErrorMessage   string
	CreatedAt      time.Time
}

func (t *CryptoTransaction) move(to CryptoTransactionState) error {
	if t.State == to {
		return ErrTransitionNoop
	}
	if t.State != CryptoTransactionPending {
		return ErrInvalidTransition
	}
	t.State = to
	return nil
}

// Confirm stores verified on-chain details and moves the transaction to confirmed.
func (t *CryptoTransaction) Confirm(v *VerifiedTransaction, at time.Time) error {
	if err := t.move(CryptoTransactionConfirmed); err != nil {
		return err
	}
	t.Amount = v.Transfer.Amount
	t.WalletFrom = v.Transfer.From
	t.WalletTo = v.Transfer.To
	t.Decimals = v.Transfer.Decimals
	t.Confirmations = v.Confirmations
	t.Fee = v.Transfer.Fee
	t.BlockNumber = v.Transfer.BlockNumber
	t.BlockTimestamp = v.Transfer.BlockTimestamp
	t.VerifiedAt = &at
	t.ErrorMessage = ""
	return nil
}

func (t *CryptoTransaction) Fail(reason string) error {
	if err := t.move(CryptoTransactionFailed); err != nil {
		return err
	}
	t.ErrorMessage = reason
	return nil
}

func (t *CryptoTransaction) Expire(reason string) error {
	if err := t.move(CryptoTransactionExpired); err != nil {
		return err
	}
	t.ErrorMessage = reason
	return nil
}
