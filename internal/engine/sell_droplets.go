package engine

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"moonpool/internal/models"
	"moonpool/pkg/moonpool"
)

// SellDroplets burns droplets from the payer and pays base currency out of
// the pool vault at the strategy's sell price. The owner and protocol fees
// are deducted from the proceeds, clamped so the net payout never underflows;
// the vault is debited the full curve value and every lamport of it lands in
// exactly one of {seller, owner, fee vault}.
func (e *Engine) SellDroplets(payer, poolAddress string, amount uint64) (*TradeOutcome, error) {
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
		if amount > pool.DropletSupply {
			return ErrInsufficientSupply
		}

		value, err := e.strategy.SellReturn(e.economics(pool), pool.DropletSupply, amount)
		if err != nil {
			return mapPricingErr(err, ErrInsufficientSupply)
		}
		programFee, err := feeOn(value, moonpool.PROGRAM_FEE_BPS)
		if err != nil {
			return err
		}
		if programFee > value {
			programFee = value
		}
		ownerFee, err := feeOn(value, moonpool.POOL_OWNER_FEE_BPS)
		if err != nil {
			return err
		}
		if ownerFee > value-programFee {
			ownerFee = value - programFee
		}
		net := value - programFee - ownerFee

		holderAddr, err := moonpool.DeriveHolderAccount(payerKey, solanaKeyMust(pool.DropletMint))
		if err != nil {
			return err
		}
		accounts := newAccountSet(tx)
		holder, err := accounts.get(holderAddr.String())
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrInsufficientFunds
			}
			return err
		}
		if err := debit(tx, holder, amount, ErrInsufficientFunds); err != nil {
			return err
		}

		vaultPDA, err := moonpool.DeriveWsolVault(solanaKeyMust(pool.Address))
		if err != nil {
			return err
		}
		vault, err := accounts.get(vaultPDA.Address.String())
		if err != nil {
			return err
		}
		if vault.Balance < value {
			return ErrInsufficientVaultBalance
		}
		payerAccount, err := accounts.getOrCreate(payer, moonpool.WSOL_MINT.String(), payer)
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

		if err := transfer(tx, vault, payerAccount, net, ErrInsufficientVaultBalance); err != nil {
			return err
		}
		if err := transfer(tx, vault, ownerAccount, ownerFee, ErrInsufficientVaultBalance); err != nil {
			return err
		}
		if err := transfer(tx, vault, feeVault, programFee, ErrInsufficientVaultBalance); err != nil {
			return err
		}

		pool.DropletSupply -= amount
		if err := tx.Model(pool).Update("droplet_supply", pool.DropletSupply).Error; err != nil {
			return err
		}

		record := models.TradeRecord{
			PoolAddress: pool.Address,
			Wallet:      payer,
			Side:        models.TradeSideSell,
			Droplets:    amount,
			Value:       value,
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
			Side:       models.TradeSideSell,
			Droplets:   amount,
			Value:      value,
			OwnerFee:   ownerFee,
			ProgramFee: programFee,
			Net:        net,
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
		"value":    outcome.Value,
	}).Info("droplets sold")
	e.publishTrade(outcome, now.Unix())
	return outcome, nil
}
