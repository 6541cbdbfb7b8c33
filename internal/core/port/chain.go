package port

import (
	"context"

	"github.com/kohai/gamecredit/internal/core/domain"
)

//go:generate mockgen -source=chain.go -destination=mock/chain.go -package=mock
type ChainClient interface {
	GetSignaturesForAddress(ctx context.Context, address string, limit int) ([]domain.SignatureInfo, error)
	// GetTransaction returns domain.ErrTransactionNotIndexed while the node has no record yet.
	GetTransaction(ctx context.Context, signature string) (*domain.RawTransaction, error)
}

type PaymentVerifier interface {
	Verify(ctx context.Context, req *domain.VerificationRequest) (*domain.VerifiedTransaction, error)
}

type VerificationCache interface {
	Get(signature string) (*domain.VerificationRecord, bool)
	Set(record *domain.VerificationRecord)
}
