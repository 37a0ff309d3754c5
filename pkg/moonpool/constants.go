package moonpool

import (
	"time"

	"github.com/gagliardetto/solana-go"
)

// Program constants
var (
	// Moonpool program address
	PROGRAM_ID = solana.MustPublicKeyFromBase58("6ebivbQFHXnU7TqinCBugwnQWNduvQ3q34Xrug8kTkc2")

	// Metaplex Token Metadata program address
	MPL_TOKEN_METADATA_PROGRAM_ID = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")

	// Wrapped native SOL mint, the base currency of every pool
	WSOL_MINT = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
)

// PDA seed constants
var (
	SEED_MOONPOOL      = []byte("moonpool")
	SEED_POOL          = []byte("pool")
	SEED_WSOL_VAULT    = []byte("wsol_vault")
	SEED_DROPLET_VAULT = []byte("droplet_vault")
	SEED_DROPLET_MINT  = []byte("mint")
	SEED_ASSET         = []byte("asset")
	SEED_ASSET_VAULT   = []byte("asset_vault")
	SEED_FEE_VAULT     = []byte("fee_vault")
	SEED_METADATA      = []byte("metadata")
)

// Economic constants. Quantities are unsigned base units: lamports for the
// base currency, millionths of a droplet for the droplet mint.
const (
	DROPLET_MINT_DECIMALS = 6
	DROPLET_UNIT          = 1_000_000
	LAMPORTS_PER_SOL      = 1_000_000_000

	// Whole droplets issued across a full raise
	TARGET_DROPLET_ISSUE = 1_000_000_000
	// TARGET_DROPLET_ISSUE * DROPLET_UNIT, the hard supply cap per pool
	MAX_DROPLET_SUPPLY = 1_000_000_000_000_000

	// Flat fee charged to the creator of a new pool, in lamports
	POOL_CREATION_FEE = 50_000_000

	// Market fees in basis points, each 1%
	POOL_OWNER_FEE_BPS = 100
	PROGRAM_FEE_BPS    = 100

	MAX_POOL_NAME_LEN = 24
	MAX_SYMBOL_LEN    = 10
	MAX_URI_LEN       = 64
)

// Lifecycle windows
const (
	// Contributions are accepted for this long after pool creation unless the
	// raise goal is hit first
	RAISE_PERIOD = 72 * time.Hour

	// The internal market stays open this long after pool creation
	TRADING_WINDOW = 365 * 24 * time.Hour
)
