// Package pricing implements the droplet pricing strategies used by the
// internal market engine. All math is integer-only: amounts are uint64 base
// units and intermediates use 256-bit words, so no accounting result ever
// passes through floating point.
package pricing

import (
	"errors"

	"github.com/holiman/uint256"
)

var (
	ErrZeroAmount     = errors.New("pricing: amount must be greater than zero")
	ErrSupplyExceeded = errors.New("pricing: amount exceeds available supply")
	ErrPriceOverflow  = errors.New("pricing: price does not fit in 64 bits")
)

// Economics carries the per-pool parameters a strategy prices against.
type Economics struct {
	RaiseGoal uint64 // lamports the pool set out to raise
	MaxSupply uint64 // hard droplet supply cap, base units
}

// Strategy prices buys and sells against the current droplet supply. Buy
// costs round up and sell returns round down, so the pool vault never pays
// out more than it collected for the same supply interval.
type Strategy interface {
	Name() string
	BuyCost(econ Economics, supply, amount uint64) (uint64, error)
	SellReturn(econ Economics, supply, amount uint64) (uint64, error)
	SpotPrice(econ Economics, supply uint64) (uint64, error)
}

// ceilDiv returns ceil(num/den) for a 256-bit numerator, failing if the
// quotient does not fit in uint64.
func ceilDiv(num, den *uint256.Int) (uint64, error) {
	q := new(uint256.Int)
	r := new(uint256.Int)
	q.DivMod(num, den, r)
	if !r.IsZero() {
		q.AddUint64(q, 1)
	}
	if !q.IsUint64() {
		return 0, ErrPriceOverflow
	}
	return q.Uint64(), nil
}

func floorDiv(num, den *uint256.Int) (uint64, error) {
	q := new(uint256.Int).Div(num, den)
	if !q.IsUint64() {
		return 0, ErrPriceOverflow
	}
	return q.Uint64(), nil
}
