package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kohai/gamecredit/internal/core/domain"
	"github.com/kohai/gamecredit/internal/core/port"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Config struct {
	PlatformWallet string
	// TokenMints maps a crypto currency symbol to its SPL mint.
	TokenMints       map[string]string
	CallbackURL      string
	OrderPrefix      string
	ValidateAccounts bool

	VerifyDelay        time.Duration
	VerifyMaxAttempts  int
	FulfillMaxAttempts int

	ReconcileMinAge   time.Duration
	ReconcileMaxAge   time.Duration
	ReconcileBatch    uint64
	ReconcileThrottle time.Duration
}

type Service struct {
	repo     port.Repository
	queue    port.JobQueue
	verifier port.PaymentVerifier
	vendor   port.VendorClient
	conf     Config
	limiter  *rate.Limiter
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(repo port.Repository, queue port.JobQueue, verifier port.PaymentVerifier,
	vendor port.VendorClient, conf Config, logger *zap.Logger) (*Service, error) {
	if conf.PlatformWallet == "" {
		return nil, errors.New("platform wallet is required")
	}

	limit := rate.Inf
	if conf.ReconcileThrottle > 0 {
		limit = rate.Every(conf.ReconcileThrottle)
	}

	return &Service{
		repo:     repo,
		queue:    queue,
		verifier: verifier,
		vendor:   vendor,
		conf:     conf,
		limiter:  rate.NewLimiter(limit, 1),
		now:      time.Now,
		logger:   logger,
	}, nil
}

// errSkip aborts an order update without writing anything.
var errSkip = errors.New("nothing to do")

func (s *Service) enqueue(ctx context.Context, kind domain.JobKind, number domain.OrderNumber, delay time.Duration) {
	maxAttempts := s.conf.VerifyMaxAttempts
	if kind == domain.JobFulfillOrder {
		maxAttempts = s.conf.FulfillMaxAttempts
	}

	err := s.queue.Enqueue(ctx, &domain.Job{
		Kind:        kind,
		OrderNumber: number,
		MaxAttempts: maxAttempts,
		RunAt:       s.now().Add(delay),
	})
	if err != nil {
		s.logger.Error("Enqueue job",
			zap.String("order", string(number)), zap.String("kind", string(kind)), zap.Error(err))
	}
}

// appendVendorLog records a vendor interaction. A failed write is logged and
// never affects the order.
func (s *Service) appendVendorLog(ctx context.Context, orderID int64, action domain.VendorLogAction,
	request any, response json.RawMessage, status string, retry int) {
	if orderID == 0 {
		return
	}

	var req json.RawMessage
	if request != nil {
		raw, err := json.Marshal(request)
		if err != nil {
			s.logger.Warn("Encode vendor log request", zap.Error(err))
		} else {
			req = raw
		}
	}
	if len(response) > 0 && !json.Valid(response) {
		response, _ = json.Marshal(string(response))
	}

	err := s.repo.AppendVendorLog(ctx, &domain.VendorTransactionLog{
		OrderID:    orderID,
		Action:     action,
		Request:    req,
		Response:   response,
		Status:     status,
		RetryCount: retry,
	})
	if err != nil {
		s.logger.Warn("Append vendor log",
			zap.Int64("order_id", orderID), zap.String("action", string(action)), zap.Error(err))
	}
}

var finalErrors = []error{
	domain.ErrDataNotFound,
	domain.ErrInvalidTransition,
	domain.ErrTransitionNoop,
	domain.ErrFailReasonRequired,
}

// retryable marks storage failures as transient so a job handler is run
// again. Lifecycle outcomes and missing orders are returned unchanged.
func retryable(err error) error {
	if err == nil || domain.IsTransient(err) {
		return err
	}
	for _, target := range finalErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrTransient, err)
}

// settled reports whether err means the order already is where an event wanted it.
func settled(err error) bool {
	return errors.Is(err, domain.ErrTransitionNoop) || errors.Is(err, domain.ErrInvalidTransition)
}
