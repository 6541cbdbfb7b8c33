package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kohai/gamecredit/internal/adapter/storage"
	"github.com/kohai/gamecredit/internal/core/domain"
	"github.com/kohai/gamecredit/internal/core/port"
)

const (
	constraintOrderNumber = "orders_order_number_key"
	constraintSignature   = "crypto_transactions_signature_key"
	constraintActiveOrder = "orders_user_active_idx"
)

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

var orderColumns = []string{
	"o.id", "o.order_number", "o.user_id", "o.wallet",
	"o.amount", "o.original_amount", "o.currency", "o.crypto_amount", "o.crypto_currency",
	"o.status", "o.order_type", "o.product_id", "o.item_id",
	"o.tracking_number", "o.invoice_id", "o.awaiting_reconciliation", "o.error_message",
	"o.user_data", "o.metadata", "o.created_at", "o.updated_at",
	"t.id", "t.order_id", "t.transaction_signature", "t.wallet_from", "t.wallet_to",
	"t.amount", "t.token", "t.network", "t.decimals", "t.direction", "t.state",
	"t.confirmations", "t.fee", "t.block_number", "t.block_timestamp", "t.verified_at",
	"t.error_message", "t.created_at",
}

var activeStatuses = []string{
	string(domain.OrderStatusPending),
	string(domain.OrderStatusPaid),
	string(domain.OrderStatusProcessing),
}

func (or *Repository) selectOrders() sq.SelectBuilder {
	return or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders o").
		Join("crypto_transactions t ON t.order_id = o.id")
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	order := domain.Order{}
	tx := domain.CryptoTransaction{}
	var metadata []byte

	err := row.Scan(
		&order.ID,
		&order.Number,
		&order.UserID,
		&order.Wallet,
		&order.Amount,
		&order.OriginalAmount,
		&order.Currency,
		&order.CryptoAmount,
		&order.CryptoCurrency,
		&order.Status,
		&order.OrderType,
		&order.ProductID,
		&order.ItemID,
		&order.TrackingNumber,
		&order.InvoiceID,
		&order.AwaitingReconciliation,
		&order.ErrorMessage,
		&order.UserData,
		&metadata,
		&order.CreatedAt,
		&order.UpdatedAt,
		&tx.ID,
		&tx.OrderID,
		&tx.Signature,
		&tx.WalletFrom,
		&tx.WalletTo,
		&tx.Amount,
		&tx.Token,
		&tx.Network,
		&tx.Decimals,
		&tx.Direction,
		&tx.State,
		&tx.Confirmations,
		&tx.Fee,
		&tx.BlockNumber,
		&tx.BlockTimestamp,
		&tx.VerifiedAt,
		&tx.ErrorMessage,
		&tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Metadata = metadata
	order.CryptoTransaction = &tx
	return &order, nil
}

func (or *Repository) queryOrders(ctx context.Context, statement sq.SelectBuilder) ([]*domain.Order, error) {
	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, order)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

// CreateOrder stores the order and its pending crypto transaction together.
func (or *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx := order.CryptoTransaction
	if tx == nil {
		return nil, fmt.Errorf("%w: order without crypto transaction", domain.ErrBadRequest)
	}

	err := pgx.BeginFunc(ctx, or.db, func(dbtx pgx.Tx) error {
		orderSt := or.db.QueryBuilder.
			Insert("orders").
			Columns(
				"order_number", "user_id", "wallet",
				"amount", "original_amount", "currency", "crypto_amount", "crypto_currency",
				"status", "order_type", "product_id", "item_id",
				"user_data", "metadata").
			Values(
				order.Number, order.UserID, order.Wallet,
				order.Amount, order.OriginalAmount, order.Currency, order.CryptoAmount, order.CryptoCurrency,
				order.Status, order.OrderType, order.ProductID, order.ItemID,
				userData(order.UserData), nullJSON(order.Metadata)).
			Suffix("RETURNING id, created_at, updated_at")

		sql, args, err := orderSt.ToSql()
		if err != nil {
			return err
		}
		err = dbtx.QueryRow(ctx, sql, args...).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}

		tx.OrderID = order.ID
		txSt := or.db.QueryBuilder.
			Insert("crypto_transactions").
			Columns(
				"order_id", "transaction_signature", "wallet_from", "wallet_to",
				"amount", "token", "network", "decimals", "direction", "state").
			Values(
				tx.OrderID, tx.Signature, tx.WalletFrom, tx.WalletTo,
				tx.Amount, tx.Token, tx.Network, tx.Decimals, tx.Direction, tx.State).
			Suffix("RETURNING id, created_at")

		sql, args, err = txSt.ToSql()
		if err != nil {
			return err
		}
		return dbtx.QueryRow(ctx, sql, args...).Scan(&tx.ID, &tx.CreatedAt)
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			switch pgErr.ConstraintName {
			case constraintSignature:
				return nil, domain.ErrSignatureAlreadyUsed
			case constraintActiveOrder:
				return nil, domain.ErrActiveOrderExists
			}
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return order, nil
}

func (or *Repository) ReadOrder(ctx context.Context, number domain.OrderNumber) (*domain.Order, error) {
	sql, args, err := or.selectOrders().
		Where(sq.Eq{"o.order_number": number}).
		ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(or.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return order, nil
}

func (or *Repository) ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error) {
	return or.queryOrders(ctx, or.selectOrders().
		Where(sq.Eq{"o.user_id": userID}).
		OrderBy("o.created_at DESC"))
}

func (or *Repository) HasActiveOrder(ctx context.Context, userID uint64) (bool, error) {
	sql, args, err := or.db.QueryBuilder.
		Select("1").
		From("orders").
		Where(sq.Eq{"user_id": userID, "status": activeStatuses}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	err = or.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (or *Repository) ListOrdersByStatus(ctx context.Context, statuses []domain.OrderStatus) ([]*domain.Order, error) {
	return or.queryOrders(ctx, or.selectOrders().
		Where(sq.Eq{"o.status": statuses}).
		OrderBy("o.created_at"))
}

// ListOrdersForReconciliation returns pending and processing orders untouched
// since updatedBefore, oldest first.
func (or *Repository) ListOrdersForReconciliation(ctx context.Context, updatedBefore time.Time, limit uint64) ([]*domain.Order, error) {
	return or.queryOrders(ctx, or.selectOrders().
		Where(sq.Eq{"o.status": []string{
			string(domain.OrderStatusPending),
			string(domain.OrderStatusProcessing),
		}}).
		Where(sq.Lt{"o.updated_at": updatedBefore}).
		OrderBy("o.updated_at").
		Limit(limit))
}

// UpdateOrder locks the order row, hands it to updateFn and writes back
// whatever updateFn changed, all in one transaction.
func (or *Repository) UpdateOrder(ctx context.Context, number domain.OrderNumber, updateFn port.UpdateOrderFn) (*domain.Order, error) {
	var order *domain.Order

	err := pgx.BeginFunc(ctx, or.db, func(dbtx pgx.Tx) error {
		sql, args, err := or.selectOrders().
			Where(sq.Eq{"o.order_number": number}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return err
		}

		order, err = scanOrder(dbtx.QueryRow(ctx, sql, args...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrDataNotFound
			}
			return err
		}

		err = updateFn(order)
		if err != nil {
			return err
		}

		orderSt := or.db.QueryBuilder.
			Update("orders").
			SetMap(map[string]any{
				"crypto_amount":           order.CryptoAmount,
				"status":                  order.Status,
				"tracking_number":         order.TrackingNumber,
				"invoice_id":              order.InvoiceID,
				"awaiting_reconciliation": order.AwaitingReconciliation,
				"error_message":           order.ErrorMessage,
				"metadata":                nullJSON(order.Metadata),
				"updated_at":              sq.Expr("now()"),
			}).
			Where(sq.Eq{"id": order.ID}).
			Suffix("RETURNING updated_at")

		sql, args, err = orderSt.ToSql()
		if err != nil {
			return err
		}
		err = dbtx.QueryRow(ctx, sql, args...).Scan(&order.UpdatedAt)
		if err != nil {
			return err
		}

		tx := order.CryptoTransaction
		txSt := or.db.QueryBuilder.
			Update("crypto_transactions").
			SetMap(map[string]any{
				"wallet_from":     tx.WalletFrom,
				"wallet_to":       tx.WalletTo,
				"amount":          tx.Amount,
				"decimals":        tx.Decimals,
				"state":           tx.State,
				"confirmations":   tx.Confirmations,
				"fee":             tx.Fee,
				"block_number":    tx.BlockNumber,
				"block_timestamp": tx.BlockTimestamp,
				"verified_at":     tx.VerifiedAt,
				"error_message":   tx.ErrorMessage,
				"updated_at":      sq.Expr("now()"),
			}).
			Where(sq.Eq{"id": tx.ID})

		sql, args, err = txSt.ToSql()
		if err != nil {
			return err
		}
		_, err = dbtx.Exec(ctx, sql, args...)
		return err
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func userData(data map[string]string) map[string]string {
	if data == nil {
		return map[string]string{}
	}
	return data
}

func nullJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
