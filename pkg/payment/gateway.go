package payment

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"propmarket/pkg/config"
)

// Client wraps the payment gateway's hosted checkout (Snap) API.
type Client struct {
	client    *http.Client
	baseURL   string
	serverKey string
}

// SnapSession is the hosted payment page handle returned at checkout.
type SnapSession struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		client:    &http.Client{Timeout: 10 * time.Second},
		baseURL:   cfg.PaymentBaseURL,
		serverKey: cfg.PaymentServerKey,
	}
}

// CreateTransaction requests a hosted payment page for an order. grossAmount
// is in minor units and converted to the gateway's decimal format on the wire.
func (pc *Client) CreateTransaction(orderID string, grossAmount int64, customerName, customerEmail string) (*SnapSession, error) {
	url := fmt.Sprintf("%s/snap/v1/transactions", pc.baseURL)
	body := map[string]interface{}{
		"transaction_details": map[string]interface{}{
			"order_id":     orderID,
			"gross_amount": FormatGross(grossAmount),
		},
		"customer_details": map[string]string{
			"first_name": customerName,
			"email":      customerEmail,
		},
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checkout request: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	auth := base64.StdEncoding.EncodeToString([]byte(pc.serverKey + ":"))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := pc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var session SnapSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if session.Token == "" {
		return nil, fmt.Errorf("gateway returned empty token")
	}

	return &session, nil
}
