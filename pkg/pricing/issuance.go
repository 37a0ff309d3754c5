package pricing

import "github.com/holiman/uint256"

// ContributionIssue converts a base-currency contribution into droplet base
// units at the pool's fixed fundraising ratio:
//
//	droplets = amount * maxSupply / raiseGoal
//
// The ratio is linear and fee-free, so contributing exactly the raise goal
// issues exactly the maximum supply.
func ContributionIssue(econ Economics, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, ErrZeroAmount
	}

	num := new(uint256.Int).SetUint64(amount)
	num.Mul(num, new(uint256.Int).SetUint64(econ.MaxSupply))
	return floorDiv(num, new(uint256.Int).SetUint64(econ.RaiseGoal))
}
