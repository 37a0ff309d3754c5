package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEcon = Economics{
	RaiseGoal: 500_000_000,
	MaxSupply: 1_000_000_000_000_000,
}

func TestBondingCurve(t *testing.T) {
	curve := BondingCurve{}

	t.Run("Zero Amount Rejected", func(t *testing.T) {
		_, err := curve.BuyCost(testEcon, 0, 0)
		assert.ErrorIs(t, err, ErrZeroAmount)

		_, err = curve.SellReturn(testEcon, 1_000_000, 0)
		assert.ErrorIs(t, err, ErrZeroAmount)
	})

	t.Run("Supply Cap Enforced", func(t *testing.T) {
		_, err := curve.BuyCost(testEcon, testEcon.MaxSupply, 1)
		assert.ErrorIs(t, err, ErrSupplyExceeded)

		_, err = curve.BuyCost(testEcon, testEcon.MaxSupply-10, 11)
		assert.ErrorIs(t, err, ErrSupplyExceeded)

		_, err = curve.SellReturn(testEcon, 100, 101)
		assert.ErrorIs(t, err, ErrSupplyExceeded)
	})

	t.Run("Full Range Costs Exactly The Raise Goal", func(t *testing.T) {
		cost, err := curve.BuyCost(testEcon, 0, testEcon.MaxSupply)
		require.NoError(t, err)
		assert.Equal(t, testEcon.RaiseGoal, cost)

		back, err := curve.SellReturn(testEcon, testEcon.MaxSupply, testEcon.MaxSupply)
		require.NoError(t, err)
		assert.Equal(t, testEcon.RaiseGoal, back)
	})

	t.Run("Sell Never Returns More Than Buy Over Same Interval", func(t *testing.T) {
		supplies := []uint64{0, 1, 999_999, 1_000_000, 123_456_789_012, testEcon.MaxSupply / 2, testEcon.MaxSupply - 5_000_000}
		amounts := []uint64{1, 7, 1_000_000, 10_000 * 1_000_000, 4_999_999}

		for _, s := range supplies {
			for _, a := range amounts {
				if s+a > testEcon.MaxSupply {
					continue
				}
				cost, err := curve.BuyCost(testEcon, s, a)
				require.NoError(t, err)
				back, err := curve.SellReturn(testEcon, s+a, a)
				require.NoError(t, err)
				assert.LessOrEqual(t, back, cost, "supply=%d amount=%d", s, a)
			}
		}
	})

	t.Run("Split Buys Cost At Least The Single Buy", func(t *testing.T) {
		const a = 3_333_333
		const b = 7_777_777
		whole, err := curve.BuyCost(testEcon, 0, a+b)
		require.NoError(t, err)
		first, err := curve.BuyCost(testEcon, 0, a)
		require.NoError(t, err)
		second, err := curve.BuyCost(testEcon, a, b)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, first+second, whole)
	})

	t.Run("Spot Price Is Non Decreasing In Supply", func(t *testing.T) {
		var prev uint64
		for _, s := range []uint64{0, testEcon.MaxSupply / 4, testEcon.MaxSupply / 2, testEcon.MaxSupply - 1_000_000} {
			spot, err := curve.SpotPrice(testEcon, s)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, spot, prev, "supply=%d", s)
			prev = spot
		}
	})
}

func TestContributionIssue(t *testing.T) {
	t.Run("Linear Against The Raise Goal", func(t *testing.T) {
		droplets, err := ContributionIssue(testEcon, testEcon.RaiseGoal)
		require.NoError(t, err)
		assert.Equal(t, testEcon.MaxSupply, droplets)

		droplets, err = ContributionIssue(testEcon, testEcon.RaiseGoal/2)
		require.NoError(t, err)
		assert.Equal(t, testEcon.MaxSupply/2, droplets)
	})

	t.Run("Zero Amount Rejected", func(t *testing.T) {
		_, err := ContributionIssue(testEcon, 0)
		assert.ErrorIs(t, err, ErrZeroAmount)
	})

	t.Run("Issued Supply Is Always Reserve Backed", func(t *testing.T) {
		curve := BondingCurve{}
		for _, amount := range []uint64{1, 499, 1_000_000, 123_456_789, testEcon.RaiseGoal} {
			droplets, err := ContributionIssue(testEcon, amount)
			require.NoError(t, err)
			if droplets == 0 {
				continue
			}
			back, err := curve.SellReturn(testEcon, droplets, droplets)
			require.NoError(t, err)
			assert.LessOrEqual(t, back, amount, "amount=%d", amount)
		}
	})
}

func TestConstantPrice(t *testing.T) {
	p := ConstantPrice{LamportsPerDroplet: 1_000}

	t.Run("Flat Pricing", func(t *testing.T) {
		cost, err := p.BuyCost(testEcon, 0, 5*dropletUnit)
		require.NoError(t, err)
		assert.Equal(t, uint64(5_000), cost)

		back, err := p.SellReturn(testEcon, 5*dropletUnit, 5*dropletUnit)
		require.NoError(t, err)
		assert.Equal(t, uint64(5_000), back)

		spot, err := p.SpotPrice(testEcon, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(1_000), spot)
	})

	t.Run("Fractional Droplets Round Against The Caller", func(t *testing.T) {
		cost, err := p.BuyCost(testEcon, 0, 1)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), cost)

		back, err := p.SellReturn(testEcon, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), back)
	})

	t.Run("Supply Cap Enforced", func(t *testing.T) {
		_, err := p.BuyCost(testEcon, testEcon.MaxSupply, 1)
		assert.ErrorIs(t, err, ErrSupplyExceeded)
	})
}
