package verifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/govalues/decimal"
	"github.com/kohai/gamecredit/internal/core/domain"
	"github.com/kohai/gamecredit/internal/core/port"
	"go.uber.org/zap"
)

type Config struct {
	SignatureLimit  int
	Attempts        int
	RetryDelay      time.Duration
	NativeTolerance decimal.Decimal
	TokenTolerance  decimal.Decimal
}

type Verifier struct {
	chain  port.ChainClient
	cache  port.VerificationCache
	conf   Config
	logger *zap.Logger
	now    func() time.Time
}

func NewVerifier(chain port.ChainClient, cache port.VerificationCache, conf Config, logger *zap.Logger) *Verifier {
	if conf.Attempts < 1 {
		conf.Attempts = 1
	}
	if conf.SignatureLimit < 1 {
		conf.SignatureLimit = 100
	}
	return &Verifier{
		chain:  chain,
		cache:  cache,
		conf:   conf,
		logger: logger,
		now:    time.Now,
	}
}

// Verify checks that signature is a confirmed, successful transfer of at
// least the expected amount (minus tolerance) to the expected receiver.
func (v *Verifier) Verify(ctx context.Context, req *domain.VerificationRequest) (*domain.VerifiedTransaction, error) {
	signature := strings.TrimSpace(req.Signature)
	log := v.logger.With(zap.String("signature", signature))

	if res, ok, err := v.fromCache(req, signature); ok {
		log.Debug("verification cache hit")
		return res, err
	}

	info, err := v.findSignature(ctx, req, signature)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			v.remember(signature, domain.VerificationNotFound, 0, nil)
		}
		return nil, err
	}

	if info.ConfirmationStatus != domain.ConfirmationConfirmed &&
		info.ConfirmationStatus != domain.ConfirmationFinalized {
		v.remember(signature, domain.VerificationInsufficientConfirmation, 0, nil)
		return nil, fmt.Errorf("%w: status %q", domain.ErrInsufficientConfirmations, info.ConfirmationStatus)
	}
	if info.Err != nil {
		v.remember(signature, domain.VerificationFailed, 0, nil)
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidTransaction, domain.ErrTransactionFailedOnChain)
	}

	raw, err := v.fetchTransaction(ctx, signature)
	if err != nil {
		return nil, err
	}
	if raw.Meta.Failed() {
		v.remember(signature, domain.VerificationFailed, 0, nil)
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidTransaction, domain.ErrTransactionFailedOnChain)
	}

	transfer, err := ParseTransfer(raw)
	if err != nil {
		v.remember(signature, domain.VerificationFailed, 0, nil)
		return nil, err
	}

	result := &domain.VerifiedTransaction{
		Signature:          signature,
		Confirmations:      1,
		ConfirmationStatus: info.ConfirmationStatus,
		Transfer:           *transfer,
	}
	if err := v.validate(req, transfer); err != nil {
		v.remember(signature, domain.VerificationFailed, result.Confirmations, nil)
		return nil, err
	}

	v.remember(signature, domain.VerificationVerified, result.Confirmations, result)
	log.Info("transaction verified",
		zap.String("from", transfer.From),
		zap.String("to", transfer.To),
		zap.String("amount", transfer.Amount.String()))

	return result, nil
}

// fromCache answers from a recent attempt without any RPC call.
func (v *Verifier) fromCache(req *domain.VerificationRequest, signature string) (*domain.VerifiedTransaction, bool, error) {
	if v.cache == nil {
		return nil, false, nil
	}
	rec, ok := v.cache.Get(signature)
	if !ok {
		return nil, false, nil
	}

	switch rec.Status {
	case domain.VerificationVerified:
		if rec.Result == nil {
			return nil, false, nil
		}
		res := *rec.Result
		res.Cached = true
		if err := v.validate(req, &res.Transfer); err != nil {
			return nil, true, err
		}
		return &res, true, nil
	case domain.VerificationInsufficientConfirmation:
		return nil, true, fmt.Errorf("%w: recently checked", domain.ErrInsufficientConfirmations)
	}
	return nil, false, nil
}

func (v *Verifier) remember(signature string, status domain.VerificationStatus, confirmations int, res *domain.VerifiedTransaction) {
	if v.cache == nil {
		return
	}
	v.cache.Set(&domain.VerificationRecord{
		Signature:      signature,
		Status:         status,
		Confirmations:  confirmations,
		LastVerifiedAt: v.now(),
		Result:         res,
	})
}

// findSignature looks for signature in the history of the receiver and, when
// given, the sender. A missing entry is retried with a fixed delay since
// nodes index new transactions with some lag.
func (v *Verifier) findSignature(ctx context.Context, req *domain.VerificationRequest, signature string) (*domain.SignatureInfo, error) {
	addresses := []string{strings.TrimSpace(req.ExpectedReceiver)}
	if sender := strings.TrimSpace(req.ExpectedSender); sender != "" {
		addresses = append(addresses, sender)
	}

	var lastErr error
	looked := false
	for attempt := 1; attempt <= v.conf.Attempts; attempt++ {
		for _, address := range addresses {
			list, err := v.chain.GetSignaturesForAddress(ctx, address, v.conf.SignatureLimit)
			if err != nil {
				lastErr = err
				v.logger.Warn("signature lookup failed",
					zap.String("address", address), zap.Int("attempt", attempt), zap.Error(err))
				continue
			}
			looked = true
			for i := range list {
				if list[i].Signature == signature {
					return &list[i], nil
				}
			}
		}

		if attempt < v.conf.Attempts {
			v.logger.Debug("signature not found yet, retrying",
				zap.String("signature", signature), zap.Int("attempt", attempt))
			if err := sleep(ctx, v.conf.RetryDelay); err != nil {
				return nil, err
			}
		}
	}

	if !looked && lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("%w: %s after %d attempts", domain.ErrTransactionNotFound, signature, v.conf.Attempts)
}

func (v *Verifier) fetchTransaction(ctx context.Context, signature string) (*domain.RawTransaction, error) {
	var lastErr error
	for attempt := 1; attempt <= v.conf.Attempts; attempt++ {
		raw, err := v.chain.GetTransaction(ctx, signature)
		if err == nil {
			return raw, nil
		}
		if !domain.IsTransient(err) {
			return nil, err
		}
		lastErr = err

		if attempt < v.conf.Attempts {
			if err := sleep(ctx, v.conf.RetryDelay); err != nil {
				return nil, err
			}
		}
	}
	return nil, lastErr
}

func (v *Verifier) validate(req *domain.VerificationRequest, t *domain.TransferDetails) error {
	receiver := strings.TrimSpace(req.ExpectedReceiver)
	if strings.TrimSpace(t.To) != receiver {
		return fmt.Errorf("%w: %w: expected %s, got %s",
			domain.ErrInvalidTransaction, domain.ErrReceiverMismatch, receiver, strings.TrimSpace(t.To))
	}

	if sender := strings.TrimSpace(req.ExpectedSender); sender != "" && strings.TrimSpace(t.From) != sender {
		return fmt.Errorf("%w: %w: expected %s, got %s",
			domain.ErrInvalidTransaction, domain.ErrSenderMismatch, sender, strings.TrimSpace(t.From))
	}

	if req.Token.IsNative() == t.IsSPLToken {
		return fmt.Errorf("%w: %w: expected %s transfer", domain.ErrInvalidTransaction,
			domain.ErrAmountMismatch, tokenName(req.Token))
	}

	if t.IsSPLToken && req.Mint != "" && t.Mint != req.Mint {
		return fmt.Errorf("%w: %w: expected %s, got %s",
			domain.ErrInvalidTransaction, domain.ErrMintMismatch, req.Mint, t.Mint)
	}

	tolerance := v.conf.NativeTolerance
	if t.IsSPLToken {
		tolerance = v.conf.TokenTolerance
	}
	minimum, err := MinimumAmount(req.ExpectedAmount, tolerance)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidTransaction, err)
	}
	// Overpayment is accepted.
	if t.Amount.Cmp(minimum) < 0 {
		return fmt.Errorf("%w: %w: expected %s, got %s", domain.ErrInvalidTransaction,
			domain.ErrAmountMismatch, req.ExpectedAmount.String(), t.Amount.String())
	}

	return nil
}

// MinimumAmount is the smallest accepted payment: tolerance is the fraction
// of expected a payer may fall short by.
func MinimumAmount(expected, tolerance decimal.Decimal) (decimal.Decimal, error) {
	factor, err := decimal.One.Sub(tolerance)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return expected.Mul(factor)
}

func tokenName(t domain.Token) string {
	if t.IsNative() {
		return string(domain.TokenSOL)
	}
	return string(t)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
