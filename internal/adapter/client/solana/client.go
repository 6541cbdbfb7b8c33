package solana

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/kohai/gamecredit/internal/adapter/config"
	"github.com/kohai/gamecredit/internal/core/domain"
	"go.uber.org/zap"
)

const methodGetTransaction = "getTransaction"

type Client struct {
	rpc     *rpc.Client
	timeout time.Duration
	logger  *zap.Logger
}

func NewClient(conf *config.Solana, logger *zap.Logger) *Client {
	return &Client{
		rpc:     rpc.New(conf.RPCURL),
		timeout: conf.Timeout,
		logger:  logger,
	}
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) GetSignaturesForAddress(ctx context.Context, address string, limit int) ([]domain.SignatureInfo, error) {
	account, err := solanago.PublicKeyFromBase58(strings.TrimSpace(address))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, address)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	out, err := c.rpc.GetSignaturesForAddressWithOpts(ctx, account, &rpc.GetSignaturesForAddressOpts{
		Limit:      &limit,
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return nil, c.unavailable("getSignaturesForAddress", err)
	}

	list := make([]domain.SignatureInfo, 0, len(out))
	for _, s := range out {
		if s == nil {
			continue
		}
		info := domain.SignatureInfo{
			Signature:          s.Signature.String(),
			Slot:               s.Slot,
			ConfirmationStatus: domain.ConfirmationStatus(s.ConfirmationStatus),
			Err:                s.Err,
		}
		if s.BlockTime != nil {
			bt := int64(*s.BlockTime)
			info.BlockTime = &bt
		}
		list = append(list, info)
	}

	return list, nil
}

// GetTransaction fetches the jsonParsed transaction. A null or malformed
// result means the node has not indexed it yet.
func (c *Client) GetTransaction(ctx context.Context, signature string) (*domain.RawTransaction, error) {
	sig, err := solanago.SignatureFromBase58(strings.TrimSpace(signature))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidSignature, signature)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	params := []interface{}{
		sig.String(),
		map[string]interface{}{
			"encoding":                       "jsonParsed",
			"maxSupportedTransactionVersion": 0,
			"commitment":                     rpc.CommitmentConfirmed,
		},
	}

	var result json.RawMessage
	err = c.rpc.RPCCallForInto(ctx, &result, methodGetTransaction, params)
	if err != nil {
		return nil, c.unavailable(methodGetTransaction, err)
	}

	body := bytes.TrimSpace(result)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, domain.ErrTransactionNotIndexed
	}

	var tx domain.RawTransaction
	if err := json.Unmarshal(body, &tx); err != nil {
		c.logger.Warn("malformed transaction result", zap.String("signature", signature), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrTransactionNotIndexed, err)
	}
	if tx.Meta == nil {
		return nil, domain.ErrTransactionNotIndexed
	}

	return &tx, nil
}

func (c *Client) unavailable(method string, err error) error {
	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		c.logger.Warn("rpc error",
			zap.String("method", method), zap.Int("code", rpcErr.Code), zap.String("message", rpcErr.Message))
	} else {
		c.logger.Warn("rpc call failed", zap.String("method", method), zap.Error(err))
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrChainUnavailable, method, err)
}
