package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
)

// BaseURL points at a running api instance started with DEV_FAUCET=1.
var BaseURL = "http://localhost:8080"

func TestMain(m *testing.M) {
	if url := os.Getenv("API_BASE_URL"); url != "" {
		BaseURL = url
	}

	// wait for the service to come up
	time.Sleep(5 * time.Second)

	code := m.Run()

	cleanup()

	os.Exit(code)
}

func cleanup() {
	// pools are append-only, there is nothing to tear down
}

func postJSON(t *testing.T, path string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	resp, err := http.Post(BaseURL+path, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		t.Fatalf("failed to send request: %v", err)
	}
	return resp
}

// newWallet returns a fresh base58 address funded through the dev faucet.
func newWallet(t *testing.T, lamports uint64) string {
	t.Helper()

	address := solana.NewWallet().PublicKey().String()
	resp := postJSON(t, "/airdrop", map[string]interface{}{
		"address": address,
		"amount":  lamports,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("airdrop failed with status %d, is the api running with DEV_FAUCET=1?", resp.StatusCode)
	}
	return address
}

// ensureInitialized creates the registry if this is a fresh database.
func ensureInitialized(t *testing.T, admin string) {
	t.Helper()

	resp := postJSON(t, "/initialize", map[string]interface{}{"admin": admin})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusConflict {
		t.Fatalf("initialize failed with status %d", resp.StatusCode)
	}
}
