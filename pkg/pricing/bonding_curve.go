package pricing

import "github.com/holiman/uint256"

// BondingCurve is the default strategy: a reserve-backed quadratic curve.
//
//	cost(s1 -> s2) = (s2^2 - s1^2) * raiseGoal / maxSupply^2
//
// The denominator is calibrated so that the curve integral over the full
// supply equals the raise goal. Contributions issue supply linearly against
// the same goal, and the curve is convex, so the redemption value of any
// contribution-issued supply is always covered by the vault reserve, with
// exact equality at a full raise.
type BondingCurve struct{}

func (BondingCurve) Name() string { return "bonding_curve" }

// reserveAt returns (supply^2 * raiseGoal) as a 256-bit numerator and the
// maxSupply^2 denominator.
func curveTerms(econ Economics, s1, s2 uint64) (num, den *uint256.Int) {
	a := new(uint256.Int).SetUint64(s2)
	a.Mul(a, a)
	b := new(uint256.Int).SetUint64(s1)
	b.Mul(b, b)
	a.Sub(a, b)
	a.Mul(a, new(uint256.Int).SetUint64(econ.RaiseGoal))

	den = new(uint256.Int).SetUint64(econ.MaxSupply)
	den.Mul(den, den)
	return a, den
}

func (BondingCurve) BuyCost(econ Economics, supply, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, ErrZeroAmount
	}
	ending := supply + amount
	if ending < supply || ending > econ.MaxSupply {
		return 0, ErrSupplyExceeded
	}

	num, den := curveTerms(econ, supply, ending)
	return ceilDiv(num, den)
}

func (BondingCurve) SellReturn(econ Economics, supply, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, ErrZeroAmount
	}
	if amount > supply {
		return 0, ErrSupplyExceeded
	}

	num, den := curveTerms(econ, supply-amount, supply)
	return floorDiv(num, den)
}

// SpotPrice reports the marginal cost of the next whole droplet.
func (c BondingCurve) SpotPrice(econ Economics, supply uint64) (uint64, error) {
	const dropletUnit = 1_000_000
	amount := uint64(dropletUnit)
	if supply+amount > econ.MaxSupply {
		if supply == econ.MaxSupply {
			return c.SellReturn(econ, supply, amount)
		}
		amount = econ.MaxSupply - supply
	}
	return c.BuyCost(econ, supply, amount)
}
