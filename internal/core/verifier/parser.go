package verifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/govalues/decimal"
	"github.com/kohai/gamecredit/internal/core/domain"
)

const (
	programSystem   = "system"
	programSPLToken = "spl-token"
	programSPLMemo  = "spl-memo"

	typeTransfer        = "transfer"
	typeTransferChecked = "transferChecked"

	lamportsDecimals = 9
)

// ParseTransfer extracts the first native or SPL token transfer from tx.
func ParseTransfer(tx *domain.RawTransaction) (*domain.TransferDetails, error) {
	if tx == nil {
		return nil, fmt.Errorf("%w: empty transaction", domain.ErrInvalidTransaction)
	}

	var details *domain.TransferDetails
	for _, ins := range tx.Transaction.Message.Instructions {
		if ins.Parsed == nil || ins.Parsed.Info == nil {
			continue
		}
		var err error
		switch {
		case ins.Program == programSystem && ins.Parsed.Type == typeTransfer:
			details, err = parseNativeTransfer(ins.Parsed)
		case ins.Program == programSPLToken &&
			(ins.Parsed.Type == typeTransfer || ins.Parsed.Type == typeTransferChecked):
			details, err = parseTokenTransfer(ins.Parsed, tx)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}
	if details == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidTransaction, domain.ErrNoTransferInstruction)
	}

	details.Memo = memo(tx)
	details.BlockNumber = tx.Slot
	if tx.BlockTime != nil {
		ts := time.Unix(*tx.BlockTime, 0).UTC()
		details.BlockTimestamp = &ts
	}
	if tx.Meta != nil {
		details.Fee = tx.Meta.Fee
	}

	return details, nil
}

func parseNativeTransfer(p *domain.InstructionParsed) (*domain.TransferDetails, error) {
	lamports, err := rawUint(p.Info["lamports"])
	if err != nil {
		return nil, fmt.Errorf("%w: lamports: %w", domain.ErrInvalidTransaction, err)
	}
	amount, err := scaled(lamports, lamportsDecimals)
	if err != nil {
		return nil, err
	}

	return &domain.TransferDetails{
		From:      p.InfoString("source"),
		To:        p.InfoString("destination"),
		RawAmount: lamports,
		Decimals:  lamportsDecimals,
		Amount:    amount,
	}, nil
}

type tokenAmountInfo struct {
	Amount         string `json:"amount"`
	Decimals       int    `json:"decimals"`
	UIAmountString string `json:"uiAmountString"`
}

func parseTokenTransfer(p *domain.InstructionParsed, tx *domain.RawTransaction) (*domain.TransferDetails, error) {
	destination := p.InfoString("destination")
	owner, balance := ResolveTokenOwner(tx, destination)

	details := &domain.TransferDetails{
		From:       sender(p),
		To:         owner,
		IsSPLToken: true,
		Mint:       p.InfoString("mint"),
	}
	if balance != nil {
		details.Decimals = balance.UITokenAmount.Decimals
		if details.Mint == "" {
			details.Mint = balance.Mint
		}
	}

	if p.Type == typeTransferChecked {
		var ta tokenAmountInfo
		if err := json.Unmarshal(p.Info["tokenAmount"], &ta); err != nil {
			return nil, fmt.Errorf("%w: tokenAmount: %w", domain.ErrInvalidTransaction, err)
		}
		raw, err := strconv.ParseUint(ta.Amount, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: tokenAmount: %w", domain.ErrInvalidTransaction, err)
		}
		details.RawAmount = raw
		details.Decimals = ta.Decimals
		if ta.UIAmountString != "" {
			amount, err := decimal.Parse(ta.UIAmountString)
			if err != nil {
				return nil, fmt.Errorf("%w: uiAmountString: %w", domain.ErrInvalidTransaction, err)
			}
			details.Amount = amount
			return details, nil
		}
	} else {
		raw, err := rawUint(p.Info["amount"])
		if err != nil {
			return nil, fmt.Errorf("%w: amount: %w", domain.ErrInvalidTransaction, err)
		}
		details.RawAmount = raw
	}

	amount, err := scaled(details.RawAmount, details.Decimals)
	if err != nil {
		return nil, err
	}
	details.Amount = amount

	return details, nil
}

// ResolveTokenOwner maps a token account to the wallet that owns it. The
// account's index in the account keys selects the postTokenBalances entry;
// without a match the last entry's owner is used. With no token balances at
// all the token account itself is returned.
func ResolveTokenOwner(tx *domain.RawTransaction, tokenAccount string) (string, *domain.TokenBalance) {
	if tx.Meta == nil || len(tx.Meta.PostTokenBalances) == 0 {
		return tokenAccount, nil
	}
	balances := tx.Meta.PostTokenBalances

	index := -1
	for i, key := range tx.Transaction.Message.AccountKeys {
		if key.Pubkey == tokenAccount {
			index = i
			break
		}
	}
	if index >= 0 {
		for i := range balances {
			if balances[i].AccountIndex == index {
				return balances[i].Owner, &balances[i]
			}
		}
	}

	last := &balances[len(balances)-1]
	return last.Owner, last
}

func sender(p *domain.InstructionParsed) string {
	for _, key := range []string{"authority", "multisigAuthority", "source"} {
		if v := p.InfoString(key); v != "" {
			return v
		}
	}
	return ""
}

func memo(tx *domain.RawTransaction) string {
	for _, ins := range tx.Transaction.Message.Instructions {
		if ins.Program == programSPLMemo && ins.Parsed != nil {
			return ins.Parsed.Text
		}
	}
	return ""
}

// rawUint accepts a JSON number or a numeric string.
func rawUint(raw json.RawMessage) (uint64, error) {
	if len(raw) == 0 {
		return 0, errors.New("missing value")
	}
	var n uint64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	return strconv.ParseUint(s, 10, 64)
}

func scaled(raw uint64, decimals int) (decimal.Decimal, error) {
	if raw > math.MaxInt64 {
		return decimal.Decimal{}, fmt.Errorf("%w: amount %d overflows", domain.ErrInvalidTransaction, raw)
	}
	d, err := decimal.New(int64(raw), decimals)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %w", domain.ErrInvalidTransaction, err)
	}
	return d.Trim(0), nil
}
