package engine

import (
	"github.com/holiman/uint256"
)

// feeOn returns ceil(value * bps / 10000). Rounding up means any nonzero
// trade value accrues at least one lamport of fee, which keeps the fee vault
// strictly increasing across market operations.
func feeOn(value, bps uint64) (uint64, error) {
	num := new(uint256.Int).SetUint64(value)
	num.Mul(num, new(uint256.Int).SetUint64(bps))
	den := uint256.NewInt(10_000)

	q := new(uint256.Int)
	r := new(uint256.Int)
	q.DivMod(num, den, r)
	if !r.IsZero() {
		q.AddUint64(q, 1)
	}
	if !q.IsUint64() {
		return 0, ErrOverflow
	}
	return q.Uint64(), nil
}
