package engine

import (
	"gorm.io/gorm"

	"moonpool/internal/models"
	"moonpool/pkg/moonpool"
)

// CreatePoolMint attaches the droplet mint and the pool's droplet vault to an
// existing pool. Second phase of pool setup; must run before any contribution
// and cannot run twice. The metadata reference is stored verbatim, the engine
// never interprets it.
func (e *Engine) CreatePoolMint(owner, poolAddress, metadataURI string) (*models.Pool, error) {
	if _, err := parseKey(owner); err != nil {
		return nil, err
	}
	if len(metadataURI) > moonpool.MAX_URI_LEN {
		return nil, ErrInvalidURI
	}
	poolKey, err := parseKey(poolAddress)
	if err != nil {
		return nil, err
	}

	mintPDA, err := moonpool.DeriveDropletMint(poolKey)
	if err != nil {
		return nil, err
	}
	dropletVaultPDA, err := moonpool.DeriveDropletVault(poolKey)
	if err != nil {
		return nil, err
	}

	var pool *models.Pool
	err = e.db.Transaction(func(tx *gorm.DB) error {
		pool, err = loadPool(tx, poolAddress)
		if err != nil {
			return err
		}
		if pool.Owner != owner {
			return ErrUnauthorized
		}
		if pool.IsInitialized {
			return ErrAlreadyMinted
		}

		pool.DropletMint = mintPDA.Address.String()
		pool.URI = metadataURI
		pool.IsInitialized = true
		if err := tx.Model(pool).Updates(map[string]interface{}{
			"droplet_mint":   pool.DropletMint,
			"uri":            pool.URI,
			"is_initialized": true,
		}).Error; err != nil {
			return err
		}

		_, err = getOrCreateAccount(tx, dropletVaultPDA.Address.String(), pool.DropletMint, pool.Address)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.log.WithField("pool", pool.Address).WithField("mint", pool.DropletMint).Info("droplet mint created")
	return pool, nil
}
