package service

import (
	"context"

	"github.com/kohai/gamecredit/internal/core/domain"
	"go.uber.org/zap"
)

func (s *Service) ValidateGameAccount(ctx context.Context, productID string, userData map[string]string) (*domain.GameAccount, error) {
	account, err := s.vendor.ValidateGameAccount(ctx, productID, userData)
	if err != nil {
		s.logger.Info("Validate game account", zap.String("product", productID), zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.vendor.ListProducts(ctx)
}

func (s *Service) ListProductItems(ctx context.Context, productID string) ([]domain.ProductItem, error) {
	return s.vendor.ListProductItems(ctx, productID)
}
