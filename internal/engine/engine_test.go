package engine

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"moonpool/internal/models"
	"moonpool/pkg/moonpool"
)

const (
	testRaiseGoal = uint64(500_000_000)
	testFunding   = uint64(10_000_000_000)
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type recordingPublisher struct {
	queues   []string
	messages []interface{}
}

func (p *recordingPublisher) Publish(queueName string, message interface{}) error {
	p.queues = append(p.queues, queueName)
	p.messages = append(p.messages, message)
	return nil
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *testClock, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "moonpool.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Registry{},
		&models.Pool{},
		&models.TokenAccount{},
		&models.Asset{},
		&models.PoolMember{},
		&models.ContributionRecord{},
		&models.TradeRecord{},
		&models.PoolStat{},
		&models.WalletPoolStat{},
	))

	clk := &testClock{now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
	opts = append([]Option{WithClock(clk.Now)}, opts...)
	return New(db, opts...), clk, db
}

func newWallet(t *testing.T) string {
	t.Helper()
	return solana.NewWallet().PublicKey().String()
}

func newFundedWallet(t *testing.T, eng *Engine) string {
	t.Helper()
	address := newWallet(t)
	require.NoError(t, eng.Airdrop(address, testFunding))
	return address
}

// wsolTotal sums every base-currency balance in the ledger.
func wsolTotal(t *testing.T, db *gorm.DB) uint64 {
	t.Helper()
	var accounts []models.TokenAccount
	require.NoError(t, db.Where("mint = ?", moonpool.WSOL_MINT.String()).Find(&accounts).Error)
	var total uint64
	for _, a := range accounts {
		total += a.Balance
	}
	return total
}

func balanceOf(t *testing.T, eng *Engine, wallet, mint string) uint64 {
	t.Helper()
	balance, err := eng.GetBalance(wallet, mint)
	require.NoError(t, err)
	return balance
}

func TestInitialize(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	admin := newWallet(t)

	t.Run("Creates The Singleton Registry", func(t *testing.T) {
		registry, err := eng.Initialize(admin)
		require.NoError(t, err)

		registryPDA, err := moonpool.DeriveRegistry()
		require.NoError(t, err)
		feeVaultPDA, err := moonpool.DeriveFeeVault()
		require.NoError(t, err)

		assert.Equal(t, registryPDA.Address.String(), registry.Address)
		assert.Equal(t, feeVaultPDA.Address.String(), registry.FeeVault)
		assert.Equal(t, admin, registry.Admin)
		assert.Equal(t, uint64(0), registry.Pools)

		assert.Equal(t, uint64(0), balanceOf(t, eng, registry.Address, moonpool.WSOL_MINT.String()))
	})

	t.Run("Second Initialize Is Rejected", func(t *testing.T) {
		_, err := eng.Initialize(newWallet(t))
		assert.ErrorIs(t, err, ErrAlreadyInitialized)
	})

	t.Run("Invalid Admin Address Is Rejected", func(t *testing.T) {
		eng2, _, _ := newTestEngine(t)
		_, err := eng2.Initialize("not-a-key")
		assert.ErrorIs(t, err, ErrAddressMismatch)
	})
}

func TestCreatePool(t *testing.T) {
	t.Run("Requires An Initialized Registry", func(t *testing.T) {
		eng, _, _ := newTestEngine(t)
		owner := newFundedWallet(t, eng)
		_, err := eng.CreatePool(owner, "Moon Villa", "MVLA", testRaiseGoal)
		assert.ErrorIs(t, err, ErrNotInitialized)
	})

	eng, _, _ := newTestEngine(t)
	_, err := eng.Initialize(newWallet(t))
	require.NoError(t, err)
	owner := newFundedWallet(t, eng)

	t.Run("Charges The Creation Fee", func(t *testing.T) {
		before := balanceOf(t, eng, owner, moonpool.WSOL_MINT.String())

		pool, err := eng.CreatePool(owner, "Moon Villa", "MVLA", testRaiseGoal)
		require.NoError(t, err)

		ownerKey := solana.MustPublicKeyFromBase58(owner)
		poolPDA, err := moonpool.DerivePool(ownerKey, "Moon Villa")
		require.NoError(t, err)
		assert.Equal(t, poolPDA.Address.String(), pool.Address)
		assert.Equal(t, poolPDA.Bump, pool.Bump)
		assert.False(t, pool.IsInitialized)
		assert.Equal(t, testRaiseGoal, pool.RaiseGoal)

		after := balanceOf(t, eng, owner, moonpool.WSOL_MINT.String())
		assert.Equal(t, before-moonpool.POOL_CREATION_FEE, after)

		registry, err := eng.GetRegistry()
		require.NoError(t, err)
		assert.Equal(t, uint64(1), registry.Pools)
		assert.Equal(t, uint64(moonpool.POOL_CREATION_FEE),
			balanceOf(t, eng, registry.FeeVault, moonpool.WSOL_MINT.String()))
	})

	t.Run("Duplicate Owner Name Pair Is Rejected", func(t *testing.T) {
		_, err := eng.CreatePool(owner, "Moon Villa", "MVLA", testRaiseGoal)
		assert.ErrorIs(t, err, ErrDuplicatePool)
	})

	t.Run("Same Name Under Another Owner Is Allowed", func(t *testing.T) {
		other := newFundedWallet(t, eng)
		_, err := eng.CreatePool(other, "Moon Villa", "MVLA", testRaiseGoal)
		assert.NoError(t, err)
	})

	t.Run("Input Validation", func(t *testing.T) {
		_, err := eng.CreatePool(owner, "", "MVLA", testRaiseGoal)
		assert.ErrorIs(t, err, ErrInvalidPoolName)

		_, err = eng.CreatePool(owner, "this pool name is far too long", "MVLA", testRaiseGoal)
		assert.ErrorIs(t, err, ErrInvalidPoolName)

		_, err = eng.CreatePool(owner, "Sea Villa", "WAYTOOLONGSYM", testRaiseGoal)
		assert.ErrorIs(t, err, ErrInvalidSymbol)

		_, err = eng.CreatePool(owner, "Sea Villa", "SVLA", 0)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("Owner Without Funds Is Rejected", func(t *testing.T) {
		broke := newWallet(t)
		_, err := eng.CreatePool(broke, "Sea Villa", "SVLA", testRaiseGoal)
		assert.ErrorIs(t, err, ErrInsufficientFunds)
	})
}

func TestCreatePoolMint(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	_, err := eng.Initialize(newWallet(t))
	require.NoError(t, err)
	owner := newFundedWallet(t, eng)

	pool, err := eng.CreatePool(owner, "Moon Villa", "MVLA", testRaiseGoal)
	require.NoError(t, err)

	t.Run("Only The Owner May Mint", func(t *testing.T) {
		_, err := eng.CreatePoolMint(newWallet(t), pool.Address, "https://example.com/meta.json")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Attaches The Droplet Mint", func(t *testing.T) {
		minted, err := eng.CreatePoolMint(owner, pool.Address, "https://example.com/meta.json")
		require.NoError(t, err)

		mintPDA, err := moonpool.DeriveDropletMint(solana.MustPublicKeyFromBase58(pool.Address))
		require.NoError(t, err)
		assert.Equal(t, mintPDA.Address.String(), minted.DropletMint)
		assert.True(t, minted.IsInitialized)
		assert.Equal(t, "https://example.com/meta.json", minted.URI)
	})

	t.Run("Minting Twice Is Rejected", func(t *testing.T) {
		_, err := eng.CreatePoolMint(owner, pool.Address, "https://example.com/meta.json")
		assert.ErrorIs(t, err, ErrAlreadyMinted)
	})

	t.Run("Overlong URI Is Rejected", func(t *testing.T) {
		other, err := eng.CreatePool(owner, "Sea Villa", "SVLA", testRaiseGoal)
		require.NoError(t, err)
		longURI := "https://example.com/" + strings.Repeat("a", moonpool.MAX_URI_LEN)
		_, err = eng.CreatePoolMint(owner, other.Address, longURI)
		assert.ErrorIs(t, err, ErrInvalidURI)
	})

	t.Run("Unknown Pool Is Rejected", func(t *testing.T) {
		_, err := eng.CreatePoolMint(owner, newWallet(t), "https://example.com/meta.json")
		assert.ErrorIs(t, err, ErrPoolNotFound)
	})
}

func TestContribute(t *testing.T) {
	eng, clk, db := newTestEngine(t)
	_, err := eng.Initialize(newWallet(t))
	require.NoError(t, err)
	owner := newFundedWallet(t, eng)
	contributor := newFundedWallet(t, eng)

	pool, err := eng.CreatePool(owner, "Moon Villa", "MVLA", testRaiseGoal)
	require.NoError(t, err)

	t.Run("Requires The Droplet Mint", func(t *testing.T) {
		_, err := eng.Contribute(contributor, pool.Address, 1_000_000)
		assert.ErrorIs(t, err, ErrPoolNotReady)
	})

	_, err = eng.CreatePoolMint(owner, pool.Address, "https://example.com/meta.json")
	require.NoError(t, err)

	t.Run("Issues Droplets At The Fixed Ratio", func(t *testing.T) {
		totalBefore := wsolTotal(t, db)

		result, err := eng.Contribute(contributor, pool.Address, testRaiseGoal/2)
		require.NoError(t, err)
		assert.Equal(t, uint64(moonpool.MAX_DROPLET_SUPPLY/2), result.Droplets)
		assert.False(t, result.Matured)
		assert.Equal(t, testRaiseGoal/2, result.Pool.TotalRaised)

		view, err := eng.GetPool(pool.Address)
		require.NoError(t, err)
		assert.Equal(t, models.PoolStatusFundraising, view.Status)

		reserve, err := eng.ReserveBalance(pool.Address)
		require.NoError(t, err)
		assert.Equal(t, testRaiseGoal/2, reserve)

		holder := balanceOf(t, eng, contributor, view.DropletMint)
		assert.Equal(t, uint64(moonpool.MAX_DROPLET_SUPPLY/2), holder)

		assert.Equal(t, totalBefore, wsolTotal(t, db), "contributions move lamports, never create them")
	})

	t.Run("Reaching The Goal Matures The Pool", func(t *testing.T) {
		result, err := eng.Contribute(contributor, pool.Address, testRaiseGoal/2)
		require.NoError(t, err)
		assert.True(t, result.Matured)
		assert.Equal(t, uint64(moonpool.MAX_DROPLET_SUPPLY), result.Pool.DropletSupply)
		assert.Equal(t, testRaiseGoal, result.Pool.TotalRaised)

		view, err := eng.GetPool(pool.Address)
		require.NoError(t, err)
		assert.Equal(t, models.PoolStatusMatured, view.Status)
	})

	t.Run("Matured Pool Rejects Contributions", func(t *testing.T) {
		_, err := eng.Contribute(contributor, pool.Address, 1_000_000)
		assert.ErrorIs(t, err, ErrPoolMatured)
	})

	t.Run("Raise Window Expiry Matures The Pool", func(t *testing.T) {
		expired, err := eng.CreatePool(owner, "Sea Villa", "SVLA", testRaiseGoal)
		require.NoError(t, err)
		_, err = eng.CreatePoolMint(owner, expired.Address, "")
		require.NoError(t, err)

		clk.Advance(moonpool.RAISE_PERIOD + time.Hour)
		_, err = eng.Contribute(contributor, expired.Address, 1_000_000)
		assert.ErrorIs(t, err, ErrPoolMatured)
	})

	t.Run("Insufficient Payer Funds", func(t *testing.T) {
		fresh, err := eng.CreatePool(owner, "Bay Villa", "BVLA", testRaiseGoal)
		require.NoError(t, err)
		_, err = eng.CreatePoolMint(owner, fresh.Address, "")
		require.NoError(t, err)

		broke := newWallet(t)
		require.NoError(t, eng.Airdrop(broke, 100))
		_, err = eng.Contribute(broke, fresh.Address, 1_000_000)
		assert.ErrorIs(t, err, ErrInsufficientFunds)
	})

	t.Run("Records Membership Once Per Wallet", func(t *testing.T) {
		var members int64
		require.NoError(t, db.Model(&models.PoolMember{}).
			Where("pool_address = ?", pool.Address).Count(&members).Error)
		assert.Equal(t, int64(1), members)

		var contributions int64
		require.NoError(t, db.Model(&models.ContributionRecord{}).
			Where("pool_address = ?", pool.Address).Count(&contributions).Error)
		assert.Equal(t, int64(2), contributions)
	})
}

func TestContributePublishesEvent(t *testing.T) {
	pub := &recordingPublisher{}
	eng, _, _ := newTestEngine(t, WithPublisher(pub))
	_, err := eng.Initialize(newWallet(t))
	require.NoError(t, err)
	owner := newFundedWallet(t, eng)
	contributor := newFundedWallet(t, eng)

	pool, err := eng.CreatePool(owner, "Moon Villa", "MVLA", testRaiseGoal)
	require.NoError(t, err)
	_, err = eng.CreatePoolMint(owner, pool.Address, "")
	require.NoError(t, err)

	_, err = eng.Contribute(contributor, pool.Address, 1_000_000)
	require.NoError(t, err)

	require.Len(t, pub.messages, 1)
	assert.Equal(t, QueuePoolContributions, pub.queues[0])
	event, ok := pub.messages[0].(ContributionEvent)
	require.True(t, ok)
	assert.Equal(t, pool.Address, event.PoolAddress)
	assert.Equal(t, contributor, event.Contributor)
	assert.Equal(t, uint64(1_000_000), event.Amount)
}

func TestAddAsset(t *testing.T) {
	eng, clk, db := newTestEngine(t)
	_, err := eng.Initialize(newWallet(t))
	require.NoError(t, err)
	owner := newFundedWallet(t, eng)

	pool, err := eng.CreatePool(owner, "Moon Villa", "MVLA", testRaiseGoal)
	require.NoError(t, err)

	assetMint := newWallet(t)
	ownerKey := solana.MustPublicKeyFromBase58(owner)
	holderAddr, err := moonpool.DeriveHolderAccount(ownerKey, solana.MustPublicKeyFromBase58(assetMint))
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.TokenAccount{
		Address: holderAddr.String(),
		Mint:    assetMint,
		Owner:   owner,
		Balance: 1_000,
	}).Error)

	t.Run("Only The Owner May Deposit", func(t *testing.T) {
		_, err := eng.AddAsset(newWallet(t), pool.Address, assetMint, 100)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("First Deposit Creates The Asset Record", func(t *testing.T) {
		asset, err := eng.AddAsset(owner, pool.Address, assetMint, 400)
		require.NoError(t, err)
		assert.Equal(t, uint64(400), asset.Amount)
		assert.Equal(t, pool.Address, asset.PoolAddress)

		var vault models.TokenAccount
		require.NoError(t, db.Where("address = ?", asset.Vault).First(&vault).Error)
		assert.Equal(t, uint64(400), vault.Balance)
	})

	t.Run("Later Deposits Accumulate", func(t *testing.T) {
		asset, err := eng.AddAsset(owner, pool.Address, assetMint, 250)
		require.NoError(t, err)
		assert.Equal(t, uint64(650), asset.Amount)

		assets, err := eng.ListAssets(pool.Address)
		require.NoError(t, err)
		require.Len(t, assets, 1)
		assert.Equal(t, uint64(650), assets[0].Amount)
	})

	t.Run("Deposit Beyond The Holder Balance", func(t *testing.T) {
		_, err := eng.AddAsset(owner, pool.Address, assetMint, 10_000)
		assert.ErrorIs(t, err, ErrInsufficientFunds)
	})

	t.Run("Closed Pool Rejects Deposits", func(t *testing.T) {
		clk.Advance(moonpool.TRADING_WINDOW + time.Hour)
		_, err := eng.AddAsset(owner, pool.Address, assetMint, 10)
		assert.ErrorIs(t, err, ErrPoolClosed)
	})
}
