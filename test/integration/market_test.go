package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TradeOutcome struct {
	Wallet     string `json:"wallet"`
	Side       string `json:"side"`
	Droplets   uint64 `json:"droplets"`
	Value      uint64 `json:"value"`
	OwnerFee   uint64 `json:"owner_fee"`
	ProgramFee uint64 `json:"program_fee"`
	Net        uint64 `json:"net"`
}

type Quote struct {
	PoolAddress string `json:"pool_address"`
	Side        string `json:"side"`
	Droplets    uint64 `json:"droplets"`
	Value       uint64 `json:"value"`
	OwnerFee    uint64 `json:"owner_fee"`
	ProgramFee  uint64 `json:"program_fee"`
	Total       uint64 `json:"total"`
}

// Funds a pool to its goal so it matures immediately, then trades against
// the internal market. Selling first frees supply headroom for the buy.
func TestMarketAPI(t *testing.T) {
	owner := newWallet(t, 2_000_000_000)
	contributor := newWallet(t, 2_000_000_000)
	ensureInitialized(t, owner)

	raiseGoal := uint64(100_000_000)
	poolName := fmt.Sprintf("mtest %d", time.Now().UnixNano()%1_000_000_000)

	var pool Pool
	resp := postJSON(t, "/pool", map[string]interface{}{
		"owner":      owner,
		"name":       poolName,
		"symbol":     "MTST",
		"raise_goal": raiseGoal,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pool))
	resp.Body.Close()

	resp = postJSON(t, "/pool/"+pool.Address+"/mint", map[string]interface{}{
		"owner": owner,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var contribution ContributeResult

	// Test Case 1: Funding the goal matures the pool
	t.Run("Full Contribution Matures The Pool", func(t *testing.T) {
		resp := postJSON(t, "/pool/"+pool.Address+"/contribute", map[string]interface{}{
			"payer":  contributor,
			"amount": raiseGoal,
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&contribution))
		assert.True(t, contribution.Matured)
		assert.Greater(t, contribution.Droplets, uint64(0))
	})

	// Test Case 2: Buying at the supply cap is rejected
	t.Run("Buy At Full Supply Rejected", func(t *testing.T) {
		resp := postJSON(t, "/pool/"+pool.Address+"/buy", map[string]interface{}{
			"payer":  contributor,
			"amount": 1_000_000,
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	sellAmount := contribution.Droplets / 4

	// Test Case 3: Sell quote matches the executed trade
	t.Run("Sell Quote Then Execute", func(t *testing.T) {
		url := fmt.Sprintf("%s/pool/%s/quote?side=sell&amount=%d", BaseURL, pool.Address, sellAmount)
		resp, err := http.Get(url)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var quote Quote
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&quote))
		assert.Equal(t, "sell", quote.Side)

		sellResp := postJSON(t, "/pool/"+pool.Address+"/sell", map[string]interface{}{
			"payer":  contributor,
			"amount": sellAmount,
		})
		defer sellResp.Body.Close()

		assert.Equal(t, http.StatusOK, sellResp.StatusCode)
		var outcome TradeOutcome
		require.NoError(t, json.NewDecoder(sellResp.Body).Decode(&outcome))
		assert.Equal(t, "sell", outcome.Side)
		assert.Equal(t, quote.Value, outcome.Value)
		assert.Equal(t, quote.Total, outcome.Net)
		assert.Equal(t, outcome.Value, outcome.Net+outcome.OwnerFee+outcome.ProgramFee)
	})

	// Test Case 4: Buy into the freed headroom
	t.Run("Buy After Sell", func(t *testing.T) {
		buyer := newWallet(t, 2_000_000_000)

		resp := postJSON(t, "/pool/"+pool.Address+"/buy", map[string]interface{}{
			"payer":  buyer,
			"amount": sellAmount / 2,
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var outcome TradeOutcome
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&outcome))
		assert.Equal(t, "buy", outcome.Side)
		assert.Equal(t, outcome.Net, outcome.Value+outcome.OwnerFee+outcome.ProgramFee)
		assert.GreaterOrEqual(t, outcome.ProgramFee, uint64(1))
	})

	// Test Case 5: Selling without droplets is rejected
	t.Run("Sell Without Holdings Rejected", func(t *testing.T) {
		stranger := newWallet(t, 1_000_000_000)

		resp := postJSON(t, "/pool/"+pool.Address+"/sell", map[string]interface{}{
			"payer":  stranger,
			"amount": 1_000_000,
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}
