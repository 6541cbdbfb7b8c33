package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrNoUpdatedData   = errors.New("no data to update")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")
	ErrInvalidCallbackKey         = errors.New("callback key mismatch")

	// ErrTransient marks every error a worker may retry later.
	ErrTransient = errors.New("transient error")

	// * Chain errors.
	ErrChainUnavailable      = fmt.Errorf("%w: chain rpc unavailable", ErrTransient)
	ErrTransactionNotIndexed = fmt.Errorf("%w: transaction not indexed yet", ErrTransient)
	ErrInvalidAddress        = errors.New("invalid base58 address")
	ErrInvalidSignature      = errors.New("invalid transaction signature")

	// * Verification errors.
	ErrTransactionNotFound       = errors.New("transaction not found")
	ErrInsufficientConfirmations = fmt.Errorf("%w: insufficient confirmations", ErrTransient)
	ErrInvalidTransaction        = errors.New("invalid transaction")
	ErrAmountMismatch            = errors.New("amount mismatch")
	ErrReceiverMismatch          = errors.New("receiver mismatch")
	ErrSenderMismatch            = errors.New("sender mismatch")
	ErrMintMismatch              = errors.New("token mint mismatch")
	ErrTransactionFailedOnChain  = errors.New("transaction failed on chain")
	ErrNoTransferInstruction     = errors.New("no transfer instruction found")

	// * Vendor errors.
	ErrVendorMaintenance = errors.New("product temporarily unavailable")
	ErrVendorRejected    = errors.New("vendor rejected request")
	ErrVendorDuplicate   = errors.New("order already exists at vendor")
	ErrVendorUnavailable = fmt.Errorf("%w: vendor unavailable", ErrTransient)

	// * Lifecycle errors.
	ErrInvalidTransition  = errors.New("transition is not allowed from current state")
	ErrTransitionNoop     = errors.New("order already in requested state")
	ErrFailReasonRequired = errors.New("error message is required to fail order")

	// * Business errors.
	ErrSignatureAlreadyUsed = errors.New("transaction signature already used")
	ErrActiveOrderExists    = errors.New("user already has an active order")
	ErrOrderNotCancellable  = errors.New("order can not be cancelled")
	ErrInvalidAmount        = errors.New("amount must be positive with at most 9 fractional digits")
)

// IsTransient reports whether err may succeed on a later attempt.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// RetryAfterError asks the caller to hold further calls for Wait.
type RetryAfterError struct {
	Wait time.Duration
	Err  error
}

func (e *RetryAfterError) Error() string {
	return fmt.Sprintf("%s, retry after %s", e.Err, e.Wait)
}

func (e *RetryAfterError) Unwrap() error {
	return e.Err
}
