package moonpool

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// PDAResult represents a derived program address together with its bump seed.
type PDAResult struct {
	Address solana.PublicKey
	Bump    uint8
}

func derive(program solana.PublicKey, seeds ...[]byte) (PDAResult, error) {
	address, bump, err := solana.FindProgramAddress(seeds, program)
	if err != nil {
		return PDAResult{}, fmt.Errorf("failed to find program address: %w", err)
	}

	return PDAResult{
		Address: address,
		Bump:    bump,
	}, nil
}

// DeriveRegistry returns the singleton registry PDA.
func DeriveRegistry() (PDAResult, error) {
	return derive(PROGRAM_ID, SEED_MOONPOOL)
}

// DeriveFeeVault returns the protocol-wide fee vault PDA.
func DeriveFeeVault() (PDAResult, error) {
	return derive(PROGRAM_ID, SEED_FEE_VAULT)
}

// DerivePool returns the pool PDA for an (owner, name) pair. The pair is part
// of the seeds, so one owner can never hold two pools under the same name.
func DerivePool(owner solana.PublicKey, name string) (PDAResult, error) {
	return derive(PROGRAM_ID, SEED_POOL, owner[:], []byte(name))
}

// DeriveWsolVault returns the base-currency vault PDA for a pool.
func DeriveWsolVault(pool solana.PublicKey) (PDAResult, error) {
	return derive(PROGRAM_ID, SEED_WSOL_VAULT, pool[:])
}

// DeriveDropletMint returns the droplet mint PDA for a pool.
func DeriveDropletMint(pool solana.PublicKey) (PDAResult, error) {
	return derive(PROGRAM_ID, SEED_DROPLET_MINT, pool[:])
}

// DeriveDropletVault returns the pool-owned droplet vault PDA.
func DeriveDropletVault(pool solana.PublicKey) (PDAResult, error) {
	return derive(PROGRAM_ID, SEED_DROPLET_VAULT, pool[:])
}

// DeriveAsset returns the asset record PDA for a (pool, mint) pair.
func DeriveAsset(pool, mint solana.PublicKey) (PDAResult, error) {
	return derive(PROGRAM_ID, SEED_ASSET, pool[:], mint[:])
}

// DeriveAssetVault returns the asset custody vault PDA for a (pool, mint) pair.
func DeriveAssetVault(pool, mint solana.PublicKey) (PDAResult, error) {
	return derive(PROGRAM_ID, SEED_ASSET_VAULT, pool[:], mint[:])
}

// DeriveMetadata returns the Metaplex metadata PDA for a droplet mint.
func DeriveMetadata(mint solana.PublicKey) (PDAResult, error) {
	return derive(MPL_TOKEN_METADATA_PROGRAM_ID, SEED_METADATA, MPL_TOKEN_METADATA_PROGRAM_ID[:], mint[:])
}

// DeriveHolderAccount returns the associated token account that holds a
// wallet's balance of the given mint.
func DeriveHolderAccount(wallet, mint solana.PublicKey) (solana.PublicKey, error) {
	address, _, err := solana.FindAssociatedTokenAddress(wallet, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to find associated token address: %w", err)
	}
	return address, nil
}

// PoolAddresses bundles every PDA attached to a single pool.
type PoolAddresses struct {
	Pool         PDAResult
	WsolVault    PDAResult
	DropletMint  PDAResult
	DropletVault PDAResult
	Metadata     PDAResult
}

// DerivePoolAddresses derives the full address set for an (owner, name) pair.
func DerivePoolAddresses(owner solana.PublicKey, name string) (*PoolAddresses, error) {
	addrs := &PoolAddresses{}
	var err error

	addrs.Pool, err = DerivePool(owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to derive pool PDA: %w", err)
	}

	addrs.WsolVault, err = DeriveWsolVault(addrs.Pool.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to derive wsol vault PDA: %w", err)
	}

	addrs.DropletMint, err = DeriveDropletMint(addrs.Pool.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to derive droplet mint PDA: %w", err)
	}

	addrs.DropletVault, err = DeriveDropletVault(addrs.Pool.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to derive droplet vault PDA: %w", err)
	}

	addrs.Metadata, err = DeriveMetadata(addrs.DropletMint.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to derive metadata PDA: %w", err)
	}

	return addrs, nil
}
