// Package pinata wraps the Pinata pinning API used to host pool metadata
// documents. Pools reference the pinned document through its gateway URL,
// which is what ends up in the pool's uri field.
package pinata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultBaseURL    = "https://api.pinata.cloud"
	defaultGatewayURL = "https://lavender-far-hyena-367.mypinata.cloud/ipfs/"
)

// Client represents a Pinata API client
type Client struct {
	jwt        string
	baseURL    string
	gatewayURL string
	httpClient *http.Client
}

// NewClient creates a new Pinata API client authenticated with a JWT
func NewClient(jwt string) *Client {
	return &Client{
		jwt:        jwt,
		baseURL:    defaultBaseURL,
		gatewayURL: defaultGatewayURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				IdleConnTimeout:       10 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
}

// PoolMetadata is the off-chain metadata document pinned for a pool
type PoolMetadata struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// pinRequest is the payload for pinJSONToIPFS
type pinRequest struct {
	PinataContent  interface{}       `json:"pinataContent"`
	PinataMetadata map[string]string `json:"pinataMetadata,omitempty"`
}

// pinResponse is the response from pinJSONToIPFS
type pinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int    `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// PinPoolMetadata pins a pool metadata document and returns its CID
func (c *Client) PinPoolMetadata(meta *PoolMetadata) (string, error) {
	payload := pinRequest{
		PinataContent:  meta,
		PinataMetadata: map[string]string{"name": meta.Name},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request payload: %w", err)
	}

	url := fmt.Sprintf("%s/pinning/pinJSONToIPFS", c.baseURL)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.jwt)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status code: %d", resp.StatusCode)
	}

	var pinResp pinResponse
	if err := json.NewDecoder(resp.Body).Decode(&pinResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return pinResp.IpfsHash, nil
}

// GatewayURL returns the public gateway URL for a pinned CID
func (c *Client) GatewayURL(cid string) string {
	return c.gatewayURL + cid
}

// Unpin removes a previously pinned CID
func (c *Client) Unpin(cid string) error {
	url := fmt.Sprintf("%s/pinning/unpin/%s", c.baseURL, cid)
	req, err := http.NewRequest("DELETE", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.jwt)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed with status code: %d", resp.StatusCode)
	}

	return nil
}
