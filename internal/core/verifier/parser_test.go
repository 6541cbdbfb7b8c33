package verifier_test

import (
	"encoding/json"
	"testing"

	"github.com/govalues/decimal"
	"github.com/kohai/gamecredit/internal/core/domain"
	"github.com/kohai/gamecredit/internal/core/verifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	walletSender   = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"
	walletPlatform = "5Q544fKrFoe6tsEbD7S8EmxGTJYAKtTVhAW5Q5pge4j1"
	walletOther    = "7YttLkHDoNj9wyDur5pM1ejNaAvT9X4eqaYcHQqtj2G5"
	tokenAccountA  = "3tQp5x3ZmbXmsnSYTefkDXPPmU4t6jLW9oJDJkVsEwzp"
	tokenAccountB  = "HfoTxFR1Tm6kGmWgYWD6J7YHVy1UwqSULUGVLXkJqaKN"
	sourceAccount  = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
	mintUSDC       = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

func mustRaw(t *testing.T, body string) *domain.RawTransaction {
	t.Helper()
	var tx domain.RawTransaction
	require.NoError(t, json.Unmarshal([]byte(body), &tx))
	return &tx
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.Zero(t, decimal.MustParse(expected).Cmp(actual), "expected %s, got %s", expected, actual.String())
}

func nativeTx(lamports int) string {
	b, _ := json.Marshal(map[string]any{
		"slot":      1234,
		"blockTime": 1700000000,
		"meta":      map[string]any{"err": nil, "fee": 5000},
		"transaction": map[string]any{
			"signatures": []string{"sig"},
			"message": map[string]any{
				"accountKeys": []any{walletSender, walletPlatform, "11111111111111111111111111111111"},
				"instructions": []any{
					map[string]any{"program": "spl-memo", "programId": "MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr", "parsed": "GC-ORDER"},
					map[string]any{
						"program":   "system",
						"programId": "11111111111111111111111111111111",
						"parsed": map[string]any{
							"type": "transfer",
							"info": map[string]any{
								"source":      walletSender,
								"destination": walletPlatform,
								"lamports":    lamports,
							},
						},
					},
				},
			},
		},
	})
	return string(b)
}

type tokenBalance struct {
	index int
	owner string
}

func tokenTx(insType string, info map[string]any, balances []tokenBalance) string {
	post := make([]any, 0, len(balances))
	for _, b := range balances {
		post = append(post, map[string]any{
			"accountIndex": b.index,
			"mint":         mintUSDC,
			"owner":        b.owner,
			"uiTokenAmount": map[string]any{
				"amount": "0", "decimals": 6, "uiAmount": 0, "uiAmountString": "0",
			},
		})
	}
	meta := map[string]any{"err": nil, "fee": 5000}
	if balances != nil {
		meta["postTokenBalances"] = post
	}
	b, _ := json.Marshal(map[string]any{
		"slot":      99,
		"blockTime": nil,
		"meta":      meta,
		"transaction": map[string]any{
			"signatures": []string{"sig"},
			"message": map[string]any{
				"accountKeys": []any{
					map[string]any{"pubkey": walletSender, "signer": true, "writable": true},
					map[string]any{"pubkey": tokenAccountA, "signer": false, "writable": true},
					map[string]any{"pubkey": tokenAccountB, "signer": false, "writable": true},
				},
				"instructions": []any{
					map[string]any{
						"program":   "spl-token",
						"programId": "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA",
						"parsed":    map[string]any{"type": insType, "info": info},
					},
				},
			},
		},
	})
	return string(b)
}

func TestParseTransfer_Native(t *testing.T) {
	tx := mustRaw(t, nativeTx(25_000_000))

	details, err := verifier.ParseTransfer(tx)
	require.NoError(t, err)

	assert.Equal(t, walletSender, details.From)
	assert.Equal(t, walletPlatform, details.To)
	assert.Equal(t, uint64(25_000_000), details.RawAmount)
	assertDecimal(t, "0.025", details.Amount)
	assert.False(t, details.IsSPLToken)
	assert.Equal(t, uint64(5000), details.Fee)
	assert.Equal(t, uint64(1234), details.BlockNumber)
	require.NotNil(t, details.BlockTimestamp)
	assert.Equal(t, int64(1700000000), details.BlockTimestamp.Unix())
	assert.Equal(t, "GC-ORDER", details.Memo)
}

func TestParseTransfer_Token(t *testing.T) {
	type tokenTest struct {
		name        string
		insType     string
		info        map[string]any
		balances    []tokenBalance
		expTo       string
		expFrom     string
		expAmount   string
		expDecimals int
	}

	tests := []tokenTest{
		{
			name:    "owner of token account at index 2, not index 1",
			insType: "transfer",
			info: map[string]any{"source": tokenAccountA, "destination": tokenAccountB,
				"authority": walletSender, "amount": "1500000"},
			balances:    []tokenBalance{{index: 1, owner: walletOther}, {index: 2, owner: walletPlatform}},
			expTo:       walletPlatform,
			expFrom:     walletSender,
			expAmount:   "1.5",
			expDecimals: 6,
		},
		{
			name:    "owner of token account at index 1 with several balances",
			insType: "transfer",
			info: map[string]any{"source": tokenAccountB, "destination": tokenAccountA,
				"authority": walletSender, "amount": "2000000"},
			balances:    []tokenBalance{{index: 1, owner: walletPlatform}, {index: 2, owner: walletOther}},
			expTo:       walletPlatform,
			expFrom:     walletSender,
			expAmount:   "2",
			expDecimals: 6,
		},
		{
			name:    "no account key match falls back to last balance",
			insType: "transfer",
			info: map[string]any{"source": tokenAccountA, "destination": sourceAccount,
				"authority": walletSender, "amount": "1000000"},
			balances:    []tokenBalance{{index: 1, owner: walletOther}, {index: 2, owner: walletPlatform}},
			expTo:       walletPlatform,
			expFrom:     walletSender,
			expAmount:   "1",
			expDecimals: 6,
		},
		{
			name:    "account key without balance entry falls back to last balance",
			insType: "transfer",
			info: map[string]any{"source": tokenAccountA, "destination": tokenAccountB,
				"authority": walletSender, "amount": "1000000"},
			balances:    []tokenBalance{{index: 0, owner: walletOther}, {index: 1, owner: walletPlatform}},
			expTo:       walletPlatform,
			expFrom:     walletSender,
			expAmount:   "1",
			expDecimals: 6,
		},
		{
			name:    "missing postTokenBalances leaves token account unresolved",
			insType: "transfer",
			info: map[string]any{"source": tokenAccountA, "destination": tokenAccountB,
				"authority": walletSender, "amount": "1000000"},
			balances:    nil,
			expTo:       tokenAccountB,
			expFrom:     walletSender,
			expAmount:   "1000000",
			expDecimals: 0,
		},
		{
			name:    "transferChecked uses ui amount",
			insType: "transferChecked",
			info: map[string]any{"source": tokenAccountA, "destination": tokenAccountB,
				"authority": walletSender, "mint": mintUSDC,
				"tokenAmount": map[string]any{"amount": "2500000", "decimals": 6, "uiAmount": 2.5, "uiAmountString": "2.5"}},
			balances:    []tokenBalance{{index: 2, owner: walletPlatform}},
			expTo:       walletPlatform,
			expFrom:     walletSender,
			expAmount:   "2.5",
			expDecimals: 6,
		},
		{
			name:    "multisig authority is the sender",
			insType: "transfer",
			info: map[string]any{"source": tokenAccountA, "destination": tokenAccountB,
				"multisigAuthority": walletOther, "amount": "1000000"},
			balances:    []tokenBalance{{index: 2, owner: walletPlatform}},
			expTo:       walletPlatform,
			expFrom:     walletOther,
			expAmount:   "1",
			expDecimals: 6,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tx := mustRaw(t, tokenTx(test.insType, test.info, test.balances))

			details, err := verifier.ParseTransfer(tx)
			require.NoError(t, err)

			assert.True(t, details.IsSPLToken)
			assert.Equal(t, test.expTo, details.To)
			assert.Equal(t, test.expFrom, details.From)
			assert.Equal(t, test.expDecimals, details.Decimals)
			assertDecimal(t, test.expAmount, details.Amount)
			assert.Nil(t, details.BlockTimestamp)
			assert.Equal(t, uint64(99), details.BlockNumber)
		})
	}
}

func TestParseTransfer_NoTransfer(t *testing.T) {
	tx := mustRaw(t, `{"slot":1,"meta":{"err":null,"fee":5000},"transaction":{"signatures":["s"],
		"message":{"accountKeys":["a"],"instructions":[
			{"program":"spl-memo","programId":"Memo","parsed":"hello"},
			{"program":"system","programId":"111","parsed":{"type":"createAccount","info":{"source":"a"}}}]}}}`)

	_, err := verifier.ParseTransfer(tx)
	assert.ErrorIs(t, err, domain.ErrInvalidTransaction)
	assert.ErrorIs(t, err, domain.ErrNoTransferInstruction)
}

func TestResolveTokenOwner(t *testing.T) {
	tx := mustRaw(t, tokenTx("transfer", map[string]any{}, []tokenBalance{
		{index: 1, owner: walletOther}, {index: 2, owner: walletPlatform},
	}))

	owner, balance := verifier.ResolveTokenOwner(tx, tokenAccountA)
	assert.Equal(t, walletOther, owner)
	require.NotNil(t, balance)
	assert.Equal(t, 1, balance.AccountIndex)

	owner, _ = verifier.ResolveTokenOwner(tx, tokenAccountB)
	assert.Equal(t, walletPlatform, owner)
}
