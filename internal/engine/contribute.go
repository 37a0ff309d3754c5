package engine

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moonpool/internal/models"
	"moonpool/pkg/moonpool"
	"moonpool/pkg/pricing"
)

// ContributeResult reports the effect of one contribution.
type ContributeResult struct {
	Pool        *models.Pool `json:"pool"`
	Contributor string       `json:"contributor"`
	Amount      uint64       `json:"amount"`
	Droplets    uint64       `json:"droplets"`
	Matured     bool         `json:"matured"`
}

// Contribute moves base currency from the payer into the pool vault and mints
// droplets back at the pool's fixed issuance ratio. Fee-free and linear:
// droplet_supply / total_raised stays constant for the whole raise.
func (e *Engine) Contribute(payer, poolAddress string, amount uint64) (*ContributeResult, error) {
	payerKey, err := parseKey(payer)
	if err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}

	now := e.now()
	var result *ContributeResult
	err = e.db.Transaction(func(tx *gorm.DB) error {
		pool, err := loadPool(tx, poolAddress)
		if err != nil {
			return err
		}
		if !pool.IsInitialized {
			return ErrPoolNotReady
		}
		switch pool.Status(now) {
		case models.PoolStatusFundraising:
		default:
			return ErrPoolMatured
		}

		droplets, err := pricing.ContributionIssue(e.economics(pool), amount)
		if err != nil {
			if err == pricing.ErrPriceOverflow {
				return ErrOverflow
			}
			return err
		}
		newSupply, err := checkedAdd(pool.DropletSupply, droplets)
		if err != nil {
			return err
		}
		if newSupply > moonpool.MAX_DROPLET_SUPPLY {
			return ErrExceedsMaximumSupply
		}
		newRaised, err := checkedAdd(pool.TotalRaised, amount)
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
		vault, err := accounts.get(vaultPDA.Address.String())
		if err != nil {
			return err
		}
		if err := transfer(tx, payerAccount, vault, amount, ErrInsufficientFunds); err != nil {
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
		if err := credit(tx, holder, droplets); err != nil {
			return err
		}

		pool.DropletSupply = newSupply
		pool.TotalRaised = newRaised
		if err := tx.Model(pool).Updates(map[string]interface{}{
			"droplet_supply": newSupply,
			"total_raised":   newRaised,
		}).Error; err != nil {
			return err
		}

		member := models.PoolMember{PoolAddress: pool.Address, User: payer}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error; err != nil {
			return err
		}
		record := models.ContributionRecord{
			PoolAddress: pool.Address,
			Contributor: payer,
			Amount:      amount,
			Droplets:    droplets,
			Timestamp:   now.Unix(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		result = &ContributeResult{
			Pool:        pool,
			Contributor: payer,
			Amount:      amount,
			Droplets:    droplets,
			Matured:     pool.Status(now) == models.PoolStatusMatured,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.publish(QueuePoolContributions, ContributionEvent{
		PoolAddress: result.Pool.Address,
		Contributor: payer,
		Amount:      amount,
		Droplets:    result.Droplets,
		TotalRaised: result.Pool.TotalRaised,
		Supply:      result.Pool.DropletSupply,
		Matured:     result.Matured,
		Timestamp:   now.Unix(),
	})
	return result, nil
}
