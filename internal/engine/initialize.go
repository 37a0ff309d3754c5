package engine

import (
	"gorm.io/gorm"

	"moonpool/internal/models"
	"moonpool/pkg/moonpool"
)

// Initialize creates the registry and the protocol fee vault at their derived
// addresses. Callable exactly once; any later call fails AlreadyInitialized.
func (e *Engine) Initialize(admin string) (*models.Registry, error) {
	if _, err := parseKey(admin); err != nil {
		return nil, err
	}

	registryPDA, err := moonpool.DeriveRegistry()
	if err != nil {
		return nil, err
	}
	feeVaultPDA, err := moonpool.DeriveFeeVault()
	if err != nil {
		return nil, err
	}

	var registry *models.Registry
	err = e.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Registry{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyInitialized
		}

		registry = &models.Registry{
			Address:  registryPDA.Address.String(),
			Admin:    admin,
			FeeVault: feeVaultPDA.Address.String(),
		}
		if err := tx.Create(registry).Error; err != nil {
			return err
		}

		_, err := getOrCreateAccount(tx, registry.FeeVault, moonpool.WSOL_MINT.String(), registry.Address)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.log.WithField("fee_vault", registry.FeeVault).Info("registry initialized")
	return registry, nil
}

// Airdrop credits base currency to a wallet. This is the localnet faucet the
// surrounding harness depends on; production deployments leave it disabled.
func (e *Engine) Airdrop(address string, amount uint64) error {
	if _, err := parseKey(address); err != nil {
		return err
	}
	if amount == 0 {
		return ErrInvalidAmount
	}

	return e.db.Transaction(func(tx *gorm.DB) error {
		account, err := getOrCreateAccount(tx, address, moonpool.WSOL_MINT.String(), address)
		if err != nil {
			return err
		}
		return credit(tx, account, amount)
	})
}
