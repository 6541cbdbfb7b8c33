package domain

import (
	"github.com/govalues/decimal"
)

// CreateOrderInput is what the checkout flow submits after the buyer paid.
type CreateOrderInput struct {
	UserID uint64
	Wallet string

	Amount         decimal.Decimal
	OriginalAmount decimal.Decimal
	Currency       string
	CryptoAmount   decimal.Decimal
	Token          Token

	OrderType OrderType
	ProductID string
	ItemID    string
	UserData  map[string]string

	Signature string
}

type CallbackOutcome string

const (
	CallbackApplied      CallbackOutcome = "applied"
	CallbackAlreadyFinal CallbackOutcome = "already_final"
	CallbackAcknowledged CallbackOutcome = "acknowledged"
)

// ReconcileReport summarizes one reconciliation sweep.
type ReconcileReport struct {
	Checked   int
	Succeeded int
	Failed    int
	Pending   int
	Requeued  int
	Errors    int
}
