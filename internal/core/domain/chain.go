package domain

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/govalues/decimal"
)

type ConfirmationStatus string

const (
	ConfirmationProcessed ConfirmationStatus = "processed"
	ConfirmationConfirmed ConfirmationStatus = "confirmed"
	ConfirmationFinalized ConfirmationStatus = "finalized"
)

// SignatureInfo is one entry of an address signature history.
type SignatureInfo struct {
	Signature          string
	Slot               uint64
	BlockTime          *int64
	ConfirmationStatus ConfirmationStatus
	// Err is nil unless the transaction failed on chain.
	Err any
}

// RawTransaction is a getTransaction result in jsonParsed encoding.
type RawTransaction struct {
	Slot        uint64            `json:"slot"`
	BlockTime   *int64            `json:"blockTime"`
	Meta        *TransactionMeta  `json:"meta"`
	Transaction ParsedTransaction `json:"transaction"`
}

type TransactionMeta struct {
	Err               json.RawMessage `json:"err"`
	Fee               uint64          `json:"fee"`
	PreBalances       []uint64        `json:"preBalances"`
	PostBalances      []uint64        `json:"postBalances"`
	PreTokenBalances  []TokenBalance  `json:"preTokenBalances"`
	PostTokenBalances []TokenBalance  `json:"postTokenBalances"`
}

// Failed reports whether meta carries a non-null err.
func (m *TransactionMeta) Failed() bool {
	if m == nil {
		return false
	}
	v := bytes.TrimSpace(m.Err)
	return len(v) > 0 && !bytes.Equal(v, []byte("null"))
}

type TokenBalance struct {
	AccountIndex  int         `json:"accountIndex"`
	Mint          string      `json:"mint"`
	Owner         string      `json:"owner"`
	UITokenAmount TokenAmount `json:"uiTokenAmount"`
}

type TokenAmount struct {
	Amount         string   `json:"amount"`
	Decimals       int      `json:"decimals"`
	UIAmount       *float64 `json:"uiAmount"`
	UIAmountString string   `json:"uiAmountString"`
}

type ParsedTransaction struct {
	Signatures []string      `json:"signatures"`
	Message    ParsedMessage `json:"message"`
}

type ParsedMessage struct {
	AccountKeys  []AccountKey        `json:"accountKeys"`
	Instructions []ParsedInstruction `json:"instructions"`
}

// AccountKey decodes both the object form {pubkey,signer,writable} and a plain string.
type AccountKey struct {
	Pubkey   string `json:"pubkey"`
	Signer   bool   `json:"signer"`
	Writable bool   `json:"writable"`
}

func (k *AccountKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*k = AccountKey{Pubkey: s}
		return nil
	}
	type plain AccountKey
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*k = AccountKey(p)
	return nil
}

type ParsedInstruction struct {
	Program   string             `json:"program"`
	ProgramID string             `json:"programId"`
	Parsed    *InstructionParsed `json:"parsed"`
}

// InstructionParsed holds {type, info}. Programs such as spl-memo report a
// bare string, kept in Text.
type InstructionParsed struct {
	Type string                     `json:"type"`
	Info map[string]json.RawMessage `json:"info"`
	Text string                     `json:"-"`
}

func (p *InstructionParsed) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = InstructionParsed{Text: s}
		return nil
	}
	type plain InstructionParsed
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = InstructionParsed(v)
	return nil
}

// InfoString returns info[key] when it is a JSON string.
func (p *InstructionParsed) InfoString(key string) string {
	if p == nil || p.Info == nil {
		return ""
	}
	raw, ok := p.Info[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// TransferDetails is what the parser extracts from a transfer instruction.
type TransferDetails struct {
	From       string
	To         string
	RawAmount  uint64
	Decimals   int
	Amount     decimal.Decimal
	IsSPLToken bool
	Mint       string
	Memo       string

	BlockTimestamp *time.Time
	BlockNumber    uint64
	Fee            uint64
}

type Token string

const (
	TokenSOL Token = "SOL"
)

// IsNative reports whether the token is native SOL.
func (t Token) IsNative() bool {
	return t == "" || t == TokenSOL
}

type VerificationRequest struct {
	Signature        string
	ExpectedAmount   decimal.Decimal
	ExpectedReceiver string
	// ExpectedSender is optional.
	ExpectedSender string
	Token          Token
	// Mint pins SPL transfers to one token mint when set.
	Mint string
}

type VerifiedTransaction struct {
	Signature          string
	Confirmations      int
	ConfirmationStatus ConfirmationStatus
	Transfer           TransferDetails
	// Cached is set when the result came from the verification cache.
	Cached bool
}
