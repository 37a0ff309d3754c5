package engine

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"moonpool/internal/models"
	"moonpool/pkg/moonpool"
	"moonpool/pkg/pricing"
)

// TradeOutcome reports the full accounting of one market operation. On a buy,
// Value is the curve cost credited to the pool vault and the payer is debited
// Value + OwnerFee + ProgramFee. On a sell, Value is the curve return debited
// from the vault and Net is what the seller keeps after fees.
type TradeOutcome struct {
	Pool       *models.Pool `json:"pool"`
	Wallet     string       `json:"wallet"`
	Side       string       `json:"side"`
	Droplets   uint64       `json:"droplets"`
	Value      uint64       `json:"value"`
	OwnerFee   uint64       `json:"owner_fee"`
	ProgramFee uint64       `json:"program_fee"`
	Net        uint64       `json:"net"`
}

// BuyDroplets mints droplets to the payer against a base-currency payment
// priced by the pool's strategy. The curve cost goes to the pool vault; the
// owner and protocol fees are charged on top of it.
func (e *Engine) BuyDroplets(payer, poolAddress string, amount uint64) (*TradeOutcome, error) {
	payerKey, err := parseKey(payer)
	if err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}

	now := e.now()
	var outcome *TradeOutcome
	err = e.db.Transaction(func(tx *gorm.DB) error {
		registry, err := loadRegistry(tx)
		if err != nil {
			return err
		}
		pool, err := loadPool(tx, poolAddress)
		if err != nil {
			return err
		}
		if !pool.IsInitialized {
			return ErrPoolNotReady
		}
		switch pool.Status(now) {
		case models.PoolStatusFundraising:
			return ErrPoolNotMatured
		case models.PoolStatusClosed:
			return ErrPoolClosed
		}

		cost, err := e.strategy.BuyCost(e.economics(pool), pool.DropletSupply, amount)
		if err != nil {
			return mapPricingErr(err, ErrExceedsMaximumSupply)
		}
		ownerFee, err := feeOn(cost, moonpool.POOL_OWNER_FEE_BPS)
		if err != nil {
			return err
		}
		programFee, err := feeOn(cost, moonpool.PROGRAM_FEE_BPS)
		if err != nil {
			return err
		}
		total, err := checkedAdd(cost, ownerFee)
		if err != nil {
			return err
		}
		total, err = checkedAdd(total, programFee)
		if err != nil {
			return err
		}

		vaultPDA, err := moonpool.DeriveWsolVault(solanaKeyMust(pool.Address))
		if err != nil {
			return err
		}
		accounts := newAccountSet(tx)
		payerAccount, err := accounts.getOrCreate(payer, moonpool.WSOL_MINT.String(), payer)
		if err != nil {
			return err
		}
		if payerAccount.Balance < total {
			return ErrInsufficientFunds
		}
		vault, err := accounts.get(vaultPDA.Address.String())
		if err != nil {
			return err
		}
		ownerAccount, err := accounts.getOrCreate(pool.Owner, moonpool.WSOL_MINT.String(), pool.Owner)
		if err != nil {
			return err
		}
		feeVault, err := accounts.get(registry.FeeVault)
		if err != nil {
			return err
		}

		if err := transfer(tx, payerAccount, vault, cost, ErrInsufficientFunds); err != nil {
			return err
		}
		if err := transfer(tx, payerAccount, ownerAccount, ownerFee, ErrInsufficientFunds); err != nil {
			return err
		}
		if err := transfer(tx, payerAccount, feeVault, programFee, ErrInsufficientFunds); err != nil {
			return err
		}

		holderAddr, err := moonpool.DeriveHolderAccount(payerKey, solanaKeyMust(pool.DropletMint))
		if err != nil {
			return err
		}
		holder, err := accounts.getOrCreate(holderAddr.String(), pool.DropletMint, payer)
		if err != nil {
			return err
		}
		if err := credit(tx, holder, amount); err != nil {
			return err
		}

		pool.DropletSupply += amount
		if err := tx.Model(pool).Update("droplet_supply", pool.DropletSupply).Error; err != nil {
			return err
		}

		record := models.TradeRecord{
			PoolAddress: pool.Address,
			Wallet:      payer,
			Side:        models.TradeSideBuy,
			Droplets:    amount,
			Value:       cost,
			OwnerFee:    ownerFee,
			ProgramFee:  programFee,
			Timestamp:   now.Unix(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		outcome = &TradeOutcome{
			Pool:       pool,
			Wallet:     payer,
			Side:       models.TradeSideBuy,
			Droplets:   amount,
			Value:      cost,
			OwnerFee:   ownerFee,
			ProgramFee: programFee,
			Net:        total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"pool":     poolAddress,
		"wallet":   payer,
		"droplets": amount,
		"cost":     outcome.Value,
	}).Info("droplets bought")
	e.publishTrade(outcome, now.Unix())
	return outcome, nil
}

// mapPricingErr converts strategy errors into instruction failure codes.
func mapPricingErr(err error, supplyErr error) error {
	switch err {
	case pricing.ErrZeroAmount:
		return ErrInvalidAmount
	case pricing.ErrSupplyExceeded:
		return supplyErr
	case pricing.ErrPriceOverflow:
		return ErrOverflow
	}
	return err
}

func (e *Engine) publishTrade(outcome *TradeOutcome, ts int64) {
	e.publish(QueueDropletTrades, TradeEvent{
		PoolAddress: outcome.Pool.Address,
		Wallet:      outcome.Wallet,
		Side:        outcome.Side,
		Droplets:    outcome.Droplets,
		Value:       outcome.Value,
		OwnerFee:    outcome.OwnerFee,
		ProgramFee:  outcome.ProgramFee,
		Supply:      outcome.Pool.DropletSupply,
		Timestamp:   ts,
	})
}
