// Package razorpay is the payment gateway adapter. Only two pieces of
// the gateway contract are consumed: order creation and callback
// signature verification.
package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.razorpay.com"

var ErrOrderCreation = errors.New("razorpay order creation failed")

type Client struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

func NewClient(keyID, keySecret, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type OrderRequest struct {
	Amount   int64             `json:"amount"` // minor currency units
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder registers a payment order with the gateway. The call is
// bounded by the client timeout and safe to retry; the gateway treats
// each create as a fresh order.
func (c *Client) CreateOrder(ctx context.Context, orderReq OrderRequest) (Order, error) {
	body, err := json.Marshal(orderReq)
	if err != nil {
		return Order{}, fmt.Errorf("json.Marshal -> %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return Order{}, fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Order{}, fmt.Errorf("httpClient.Do -> %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain without logging; gateway error bodies can carry
		// account details.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

		return Order{}, fmt.Errorf("%w: status %d", ErrOrderCreation, resp.StatusCode)
	}

	var order Order
	if err = json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return Order{}, fmt.Errorf("json.Decode -> %w", err)
	}

	return order, nil
}

// VerifySignature checks a payment callback against the shared secret.
// This is the sole trust boundary protecting against forged client-side
// "payment succeeded" calls.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(c.keySecret, orderID, paymentID, signature)
}

// VerifySignature recomputes HMAC-SHA256 over "orderID|paymentID" and
// compares hex digests in constant time.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
