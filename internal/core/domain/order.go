package domain

import (
	"encoding/json"
	"time"

	"github.com/govalues/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusSucceeded  OrderStatus = "succeeded"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusFailed     OrderStatus = "failed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsFinal reports whether no automatic event can move the order any further.
func (s OrderStatus) IsFinal() bool {
	switch s {
	case OrderStatusSucceeded, OrderStatusCompleted, OrderStatusFailed, OrderStatusCancelled:
		return true
	}
	return false
}

type OrderType string

const (
	// OrderTypeGameCredit is purchased from the vendor after payment.
	OrderTypeGameCredit OrderType = "game_credit"
	// OrderTypeDirect needs no vendor purchase.
	OrderTypeDirect OrderType = "direct"
)

// RequiresVendorPurchase reports whether fulfillment goes through the vendor.
func (t OrderType) RequiresVendorPurchase() bool {
	return t == OrderTypeGameCredit
}

type OrderNumber string

type Order struct {
	ID     int64
	Number OrderNumber
	UserID uint64
	Wallet string

	Amount         decimal.Decimal
	OriginalAmount decimal.Decimal
	Currency       string
	CryptoAmount   decimal.Decimal
	CryptoCurrency string

	Status    OrderStatus
	OrderType OrderType
	ProductID string
	ItemID    string

	TrackingNumber         string
	InvoiceID              string
	AwaitingReconciliation bool
	ErrorMessage           string

	UserData map[string]string
	Metadata json.RawMessage

	CreatedAt time.Time
	UpdatedAt time.Time

	CryptoTransaction *CryptoTransaction
}

// HasVendorReference reports whether the vendor already accepted a purchase for the order.
func (o *Order) HasVendorReference() bool {
	return o.TrackingNumber != "" || o.InvoiceID != ""
}

// VendorReference is the reference used to poll the vendor.
func (o *Order) VendorReference() string {
	if o.TrackingNumber != "" {
		return o.TrackingNumber
	}
	return o.InvoiceID
}
