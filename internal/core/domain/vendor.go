package domain

import (
	"encoding/json"
	"strings"

	"github.com/govalues/decimal"
)

type VendorOutcome int

const (
	VendorOutcomeFailure VendorOutcome = iota
	VendorOutcomeSuccess
	VendorOutcomeMaintenance
)

func (o VendorOutcome) String() string {
	switch o {
	case VendorOutcomeSuccess:
		return "success"
	case VendorOutcomeMaintenance:
		return "maintenance"
	}
	return "failure"
}

// VendorResult is a vendor response normalized at the client boundary.
type VendorResult struct {
	Outcome        VendorOutcome
	TrackingNumber string
	InvoiceID      string
	Message        string
	StatusCode     int
	Raw            json.RawMessage
}

type VendorOrderRequest struct {
	ProductID      string
	ItemID         string
	UserInput      map[string]string
	PartnerOrderID OrderNumber
	CallbackURL    string
	Price          decimal.Decimal
}

type VendorStatus string

const (
	VendorStatusSucceeded  VendorStatus = "succeeded"
	VendorStatusFailed     VendorStatus = "failed"
	VendorStatusProcessing VendorStatus = "processing"
	VendorStatusUnknown    VendorStatus = "unknown"
)

// NormalizeVendorStatus maps the vendor's status vocabulary onto VendorStatus.
func NormalizeVendorStatus(s string) VendorStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "succeeded", "success", "completed":
		return VendorStatusSucceeded
	case "failed", "error", "cancelled", "canceled":
		return VendorStatusFailed
	case "processing", "pending":
		return VendorStatusProcessing
	}
	return VendorStatusUnknown
}

type VendorOrderStatus struct {
	Status         VendorStatus
	TrackingNumber string
	Message        string
	Raw            json.RawMessage
}

type GameAccount struct {
	IGN string `json:"ign"`
}

type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Raw      json.RawMessage `json:"-"`
}

type ProductItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency,omitempty"`
}

// VendorCallback is the body the vendor posts to the callback endpoint.
type VendorCallback struct {
	Reference    OrderNumber     `json:"reference"`
	Status       string          `json:"status"`
	InvoiceID    string          `json:"invoiceId"`
	TrxDate      string          `json:"trxDate"`
	SN           string          `json:"sn"`
	Message      string          `json:"message"`
	ErrorMessage string          `json:"errorMessage"`
	Raw          json.RawMessage `json:"-"`
}
