package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/kohai/gamecredit/internal/core/domain"
	"go.uber.org/zap"
)

const (
	maxCryptoScale       = 9
	orderNumberAttempts  = 3
	nativeDecimals       = 9
	orderCreatedLogState = "created"
)

// CreateOrder stores a pending order for a payment the buyer already sent
// and schedules its verification. It never talks to the chain.
func (s *Service) CreateOrder(ctx context.Context, input *domain.CreateOrderInput) (*domain.Order, error) {
	err := s.validateInput(input)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.HasActiveOrder(ctx, input.UserID)
	if err != nil {
		s.logger.Error("Check active order", zap.Error(err))
		return nil, domain.ErrInternal
	}
	if active {
		return nil, domain.ErrActiveOrderExists
	}

	if s.conf.ValidateAccounts && input.OrderType.RequiresVendorPurchase() {
		_, err := s.vendor.ValidateGameAccount(ctx, input.ProductID, input.UserData)
		if err != nil {
			s.logger.Info("Game account rejected", zap.String("product", input.ProductID), zap.Error(err))
			return nil, err
		}
	}

	token := input.Token
	if token == "" {
		token = domain.TokenSOL
	}
	decimals := 0
	if token.IsNative() {
		decimals = nativeDecimals
	}

	var order *domain.Order
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order, err = s.repo.CreateOrder(ctx, &domain.Order{
			Number:         s.newOrderNumber(),
			UserID:         input.UserID,
			Wallet:         strings.TrimSpace(input.Wallet),
			Amount:         input.Amount,
			OriginalAmount: input.OriginalAmount,
			Currency:       input.Currency,
			CryptoAmount:   input.CryptoAmount,
			CryptoCurrency: string(token),
			Status:         domain.OrderStatusPending,
			OrderType:      input.OrderType,
			ProductID:      input.ProductID,
			ItemID:         input.ItemID,
			UserData:       input.UserData,
			CryptoTransaction: &domain.CryptoTransaction{
				Signature:  strings.TrimSpace(input.Signature),
				WalletFrom: strings.TrimSpace(input.Wallet),
				WalletTo:   s.conf.PlatformWallet,
				Amount:     input.CryptoAmount,
				Token:      string(token),
				Network:    domain.NetworkSolana,
				Decimals:   decimals,
				Direction:  domain.DirectionInbound,
				State:      domain.CryptoTransactionPending,
			},
		})
		if !errors.Is(err, domain.ErrConflictingData) {
			break
		}
	}
	if err != nil {
		if errors.Is(err, domain.ErrSignatureAlreadyUsed) || errors.Is(err, domain.ErrActiveOrderExists) {
			return nil, err
		}
		s.logger.Error("Create order", zap.Error(err))
		return nil, domain.ErrInternal
	}

	s.appendVendorLog(ctx, order.ID, domain.VendorLogOrderCreated, orderCreatedRequest(order), nil,
		orderCreatedLogState, 0)
	s.enqueue(ctx, domain.JobVerifyPayment, order.Number, s.conf.VerifyDelay)

	s.logger.Info("Order created",
		zap.String("order", string(order.Number)),
		zap.String("signature", order.CryptoTransaction.Signature),
		zap.String("crypto_amount", order.CryptoAmount.String()))

	return order, nil
}

func (s *Service) validateInput(input *domain.CreateOrderInput) error {
	if _, err := solana.SignatureFromBase58(strings.TrimSpace(input.Signature)); err != nil {
		return domain.ErrInvalidSignature
	}
	if _, err := solana.PublicKeyFromBase58(strings.TrimSpace(input.Wallet)); err != nil {
		return domain.ErrInvalidAddress
	}

	if !positive(input.Amount) || !positive(input.CryptoAmount) || input.CryptoAmount.Scale() > maxCryptoScale {
		return domain.ErrInvalidAmount
	}
	if input.OriginalAmount.Sign() < 0 {
		return domain.ErrInvalidAmount
	}

	switch input.OrderType {
	case domain.OrderTypeGameCredit:
		if input.ProductID == "" || input.ItemID == "" || len(input.UserData) == 0 {
			return fmt.Errorf("%w: product, item and user data are required", domain.ErrBadRequest)
		}
	case domain.OrderTypeDirect:
	default:
		return fmt.Errorf("%w: unknown order type %q", domain.ErrBadRequest, input.OrderType)
	}

	if token := input.Token; !token.IsNative() {
		if _, ok := s.conf.TokenMints[string(token)]; !ok {
			return fmt.Errorf("%w: unsupported token %q", domain.ErrBadRequest, token)
		}
	}

	return nil
}

func positive(d decimal.Decimal) bool {
	return d.Sign() > 0
}

// newOrderNumber is the configured prefix followed by 12 upper-case hex digits.
func (s *Service) newOrderNumber() domain.OrderNumber {
	id := uuid.New()
	return domain.OrderNumber(s.conf.OrderPrefix + strings.ToUpper(hex.EncodeToString(id[:6])))
}

func orderCreatedRequest(o *domain.Order) map[string]any {
	return map[string]any{
		"order_number":    o.Number,
		"product_id":      o.ProductID,
		"item_id":         o.ItemID,
		"amount":          o.Amount.String(),
		"currency":        o.Currency,
		"crypto_amount":   o.CryptoAmount.String(),
		"crypto_currency": o.CryptoCurrency,
		"signature":       o.CryptoTransaction.Signature,
	}
}

// GetOrder returns the order only to its owner.
func (s *Service) GetOrder(ctx context.Context, userID uint64, number domain.OrderNumber) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, number)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrDataNotFound
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, userID uint64) ([]*domain.Order, error) {
	list, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Get orders for user", zap.Error(err))
		return nil, err
	}
	return list, nil
}

// CancelOrder cancels a pending order of the user. Its payment is marked expired.
func (s *Service) CancelOrder(ctx context.Context, userID uint64, number domain.OrderNumber) (*domain.Order, error) {
	order, err := s.repo.UpdateOrder(ctx, number, func(o *domain.Order) error {
		if o.UserID != userID {
			return domain.ErrDataNotFound
		}

		_, err := o.Fire(domain.EventCancel)
		if err != nil {
			if errors.Is(err, domain.ErrTransitionNoop) {
				return nil
			}
			return domain.ErrOrderNotCancellable
		}

		err = o.CryptoTransaction.Expire("order cancelled")
		if err != nil && !errors.Is(err, domain.ErrTransitionNoop) {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order cancelled", zap.String("order", string(number)))
	return order, nil
}

// CompleteOrder closes a succeeded order.
func (s *Service) CompleteOrder(ctx context.Context, number domain.OrderNumber) (*domain.Order, error) {
	order, err := s.repo.UpdateOrder(ctx, number, func(o *domain.Order) error {
		_, err := o.Fire(domain.EventComplete)
		if errors.Is(err, domain.ErrTransitionNoop) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
