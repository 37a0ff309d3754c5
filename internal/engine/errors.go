package engine

import (
	"errors"
	"fmt"
)

// Error is a discriminated instruction failure. Every engine operation either
// applies all of its mutations or returns one of these with nothing applied.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

func newError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// State errors
var (
	ErrNotInitialized     = newError("NotInitialized", "registry has not been initialized")
	ErrAlreadyInitialized = newError("AlreadyInitialized", "registry is already initialized")
	ErrDuplicatePool      = newError("DuplicatePool", "a pool with this owner and name already exists")
	ErrPoolNotFound       = newError("PoolNotFound", "pool does not exist")
	ErrPoolNotReady       = newError("PoolNotReady", "pool droplet mint has not been created")
	ErrAlreadyMinted      = newError("AlreadyMinted", "pool droplet mint already exists")
	ErrPoolMatured        = newError("PoolMatured", "pool is no longer in its fundraising period")
	ErrPoolNotMatured     = newError("PoolNotMatured", "pool has not matured yet")
	ErrPoolClosed         = newError("PoolClosed", "pool trading window has ended")
)

// Authorization errors
var (
	ErrUnauthorized = newError("Unauthorized", "signer does not control this pool")
)

// Arithmetic errors
var (
	ErrOverflow                 = newError("Overflow", "amount exceeds the representable range")
	ErrInsufficientFunds        = newError("InsufficientFunds", "signer balance cannot cover this amount")
	ErrInsufficientSupply       = newError("InsufficientSupply", "amount exceeds outstanding droplet supply")
	ErrInsufficientVaultBalance = newError("InsufficientVaultBalance", "pool vault cannot cover this amount")
	ErrExceedsMaximumSupply     = newError("ExceedsMaximumSupply", "mint would exceed the maximum droplet supply")
)

// Input validation errors
var (
	ErrInvalidAmount   = newError("InvalidAmount", "amount must be greater than zero")
	ErrInvalidPoolName = newError("InvalidPoolName", "pool name must be between 1 and 24 characters")
	ErrInvalidSymbol   = newError("InvalidSymbol", "symbol must be between 1 and 10 characters")
	ErrInvalidURI      = newError("InvalidURI", "metadata uri exceeds the maximum length")
	ErrAddressMismatch = newError("AddressMismatch", "address is not a valid base58 public key")
)
