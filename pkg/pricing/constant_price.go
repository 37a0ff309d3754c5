package pricing

import "github.com/holiman/uint256"

// ConstantPrice sells every droplet at a flat lamport price regardless of
// supply. Kept as an explicitly-named alternative to the bonding curve.
type ConstantPrice struct {
	// LamportsPerDroplet is the price of one whole droplet (1e6 base units).
	LamportsPerDroplet uint64
}

func (ConstantPrice) Name() string { return "constant_price" }

const dropletUnit = 1_000_000

func (p ConstantPrice) value(amount uint64, roundUp bool) (uint64, error) {
	num := new(uint256.Int).SetUint64(amount)
	num.Mul(num, new(uint256.Int).SetUint64(p.LamportsPerDroplet))
	den := new(uint256.Int).SetUint64(dropletUnit)
	if roundUp {
		return ceilDiv(num, den)
	}
	return floorDiv(num, den)
}

func (p ConstantPrice) BuyCost(econ Economics, supply, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, ErrZeroAmount
	}
	ending := supply + amount
	if ending < supply || ending > econ.MaxSupply {
		return 0, ErrSupplyExceeded
	}
	return p.value(amount, true)
}

func (p ConstantPrice) SellReturn(econ Economics, supply, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, ErrZeroAmount
	}
	if amount > supply {
		return 0, ErrSupplyExceeded
	}
	return p.value(amount, false)
}

func (p ConstantPrice) SpotPrice(econ Economics, supply uint64) (uint64, error) {
	return p.LamportsPerDroplet, nil
}
