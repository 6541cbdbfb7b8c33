package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kohai/gamecredit/internal/core/domain"
)

// AppendVendorLog inserts a vendor interaction. Logs are never updated.
func (or *Repository) AppendVendorLog(ctx context.Context, log *domain.VendorTransactionLog) error {
	sql, args, err := or.db.QueryBuilder.
		Insert("vendor_transaction_logs").
		Columns("order_id", "action", "request", "response", "status", "retry_count").
		Values(log.OrderID, log.Action, nullJSON(log.Request), nullJSON(log.Response), log.Status, log.RetryCount).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return err
	}

	return or.db.QueryRow(ctx, sql, args...).Scan(&log.ID, &log.CreatedAt)
}

func (or *Repository) SaveVerificationRecord(ctx context.Context, record *domain.VerificationRecord) error {
	var result []byte
	if record.Result != nil {
		var err error
		result, err = json.Marshal(record.Result)
		if err != nil {
			return fmt.Errorf("error encoding verification result: %w", err)
		}
	}

	sql, args, err := or.db.QueryBuilder.
		Insert("verification_caches").
		Columns("signature", "verification_status", "confirmations", "last_verified_at", "result").
		Values(record.Signature, record.Status, record.Confirmations, record.LastVerifiedAt, nullJSON(result)).
		Suffix(`ON CONFLICT (signature) DO UPDATE SET
			verification_status = EXCLUDED.verification_status,
			confirmations = EXCLUDED.confirmations,
			last_verified_at = EXCLUDED.last_verified_at,
			result = EXCLUDED.result`).
		ToSql()
	if err != nil {
		return err
	}

	_, err = or.db.Exec(ctx, sql, args...)
	return err
}
