package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/kohai/gamecredit/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawTransaction_UnmarshalJSON(t *testing.T) {
	body := `{
		"slot": 12,
		"blockTime": 1700000000,
		"meta": {"err": null, "fee": 5000, "postTokenBalances": [
			{"accountIndex": 1, "mint": "mint", "owner": "owner1",
			 "uiTokenAmount": {"amount": "1000000", "decimals": 6, "uiAmount": 1, "uiAmountString": "1"}}
		]},
		"transaction": {
			"signatures": ["sig"],
			"message": {
				"accountKeys": [{"pubkey": "a", "signer": true, "writable": true}, "b"],
				"instructions": [
					{"program": "spl-memo", "programId": "Memo", "parsed": "order-1"},
					{"program": "system", "programId": "11111111111111111111111111111111",
					 "parsed": {"type": "transfer", "info": {"source": "a", "destination": "b", "lamports": 20000000}}}
				]
			}
		}
	}`

	var tx domain.RawTransaction
	require.NoError(t, json.Unmarshal([]byte(body), &tx))

	assert.Equal(t, uint64(12), tx.Slot)
	assert.Equal(t, int64(1700000000), *tx.BlockTime)
	assert.False(t, tx.Meta.Failed())
	assert.Equal(t, "a", tx.Transaction.Message.AccountKeys[0].Pubkey)
	assert.True(t, tx.Transaction.Message.AccountKeys[0].Signer)
	assert.Equal(t, "b", tx.Transaction.Message.AccountKeys[1].Pubkey)
	assert.Equal(t, "order-1", tx.Transaction.Message.Instructions[0].Parsed.Text)
	assert.Equal(t, "transfer", tx.Transaction.Message.Instructions[1].Parsed.Type)
	assert.Equal(t, "b", tx.Transaction.Message.Instructions[1].Parsed.InfoString("destination"))
	assert.Equal(t, "", tx.Transaction.Message.Instructions[1].Parsed.InfoString("lamports"))
	assert.Equal(t, "owner1", tx.Meta.PostTokenBalances[0].Owner)
}

func TestTransactionMeta_Failed(t *testing.T) {
	meta := domain.TransactionMeta{Err: json.RawMessage(`{"InstructionError":[0,"Custom"]}`)}
	assert.True(t, meta.Failed())

	meta = domain.TransactionMeta{}
	assert.False(t, meta.Failed())
}
