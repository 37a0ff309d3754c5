package engine

import (
	"gorm.io/gorm"

	"moonpool/internal/models"
	"moonpool/pkg/moonpool"
)

// AddAsset deposits an external token into the pool's treasury. Owner-only.
// The asset record and its custody vault are created on the first deposit for
// a (pool, mint) pair; later deposits accumulate into the same vault. The
// treasury is accrete-only: no withdrawal path exists.
func (e *Engine) AddAsset(owner, poolAddress, mint string, amount uint64) (*models.Asset, error) {
	if _, err := parseKey(owner); err != nil {
		return nil, err
	}
	mintKey, err := parseKey(mint)
	if err != nil {
		return nil, err
	}
	poolKey, err := parseKey(poolAddress)
	if err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}

	assetPDA, err := moonpool.DeriveAsset(poolKey, mintKey)
	if err != nil {
		return nil, err
	}
	vaultPDA, err := moonpool.DeriveAssetVault(poolKey, mintKey)
	if err != nil {
		return nil, err
	}

	now := e.now()
	var asset *models.Asset
	err = e.db.Transaction(func(tx *gorm.DB) error {
		pool, err := loadPool(tx, poolAddress)
		if err != nil {
			return err
		}
		if pool.Owner != owner {
			return ErrUnauthorized
		}
		if pool.Status(now) == models.PoolStatusClosed {
			return ErrPoolClosed
		}

		ownerKey := solanaKeyMust(owner)
		depositorAddr, err := moonpool.DeriveHolderAccount(ownerKey, mintKey)
		if err != nil {
			return err
		}
		accounts := newAccountSet(tx)
		depositor, err := accounts.get(depositorAddr.String())
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrInsufficientFunds
			}
			return err
		}
		vault, err := accounts.getOrCreate(vaultPDA.Address.String(), mint, assetPDA.Address.String())
		if err != nil {
			return err
		}
		if err := transfer(tx, depositor, vault, amount, ErrInsufficientFunds); err != nil {
			return err
		}

		asset = &models.Asset{}
		err = tx.Where("pool_address = ? AND mint = ?", poolAddress, mint).First(asset).Error
		if err == gorm.ErrRecordNotFound {
			asset = &models.Asset{
				Address:     assetPDA.Address.String(),
				PoolAddress: pool.Address,
				Mint:        mint,
				Vault:       vaultPDA.Address.String(),
				Amount:      amount,
			}
			return tx.Create(asset).Error
		}
		if err != nil {
			return err
		}

		total, err := checkedAdd(asset.Amount, amount)
		if err != nil {
			return err
		}
		asset.Amount = total
		return tx.Model(asset).Update("amount", total).Error
	})
	if err != nil {
		return nil, err
	}

	e.log.WithField("pool", poolAddress).WithField("mint", mint).Info("asset deposited")
	return asset, nil
}
