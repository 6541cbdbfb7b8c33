package domain

import (
	"encoding/json"
	"time"
)

type VendorLogAction string

const (
	VendorLogOrderCreated   VendorLogAction = "order_created"
	VendorLogCreateOrder    VendorLogAction = "create_order"
	VendorLogCheckStatus    VendorLogAction = "check_status"
	VendorLogCallback       VendorLogAction = "callback"
	VendorLogReconciliation VendorLogAction = "reconciliation"
)

// VendorTransactionLog is an append-only record of one vendor interaction.
type VendorTransactionLog struct {
	ID         int64
	OrderID    int64
	Action     VendorLogAction
	Request    json.RawMessage
	Response   json.RawMessage
	Status     string
	RetryCount int
	CreatedAt  time.Time
}
