package handlers

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moonpool/internal/engine"
	"moonpool/internal/models"
)

func TestTradeFeedConcurrentBroadcast(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/trades", TradeFeed)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/trades"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.Eventually(t, func() bool {
		feed.mu.Lock()
		defer feed.mu.Unlock()
		return len(feed.subs) > 0
	}, time.Second, 10*time.Millisecond, "subscriber should register after the upgrade")

	outcome := &engine.TradeOutcome{
		Pool:     &models.Pool{Address: "pool"},
		Wallet:   "wallet",
		Side:     models.TradeSideBuy,
		Droplets: 1_000_000,
		Value:    42,
	}

	// concurrent trades all broadcast to the same subscriber
	const trades = 25
	var wg sync.WaitGroup
	for i := 0; i < trades; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			feed.broadcast(outcome)
		}()
	}
	wg.Wait()

	for i := 0; i < trades; i++ {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var got engine.TradeOutcome
		require.NoError(t, conn.ReadJSON(&got), "frame %d should arrive intact", i)
		assert.Equal(t, models.TradeSideBuy, got.Side)
		assert.Equal(t, uint64(42), got.Value)
	}
}
