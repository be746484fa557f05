package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/digitalseva/courseshop/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config is the checkout configuration served by the backend so the
// initiator and the Order Service share one price definition
type Config struct {
	Key         string `json:"key"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ClientOptions provides initialization parameters for Client
type ClientOptions struct {
	BaseURL string
	Logger  *zap.Logger

	// HTTPClient defaults to http.DefaultClient. There is deliberately no
	// timeout anywhere in the flow; a hung call leaves the UI loading until
	// the toast cleanup runs.
	HTTPClient *http.Client
}

// Client talks to the Order Service and the Customer Record Store on
// behalf of the initiator
type Client struct {
	ClientOptions
}

// NewClient will return a new initiator-side API client
func NewClient(option ClientOptions) (*Client, error) {
	if option.BaseURL == "" {
		return nil, fmt.Errorf("empty BaseURL is invalid")
	}
	if option.Logger == nil {
		return nil, fmt.Errorf("nil Logger is invalid")
	}
	if option.HTTPClient == nil {
		option.HTTPClient = http.DefaultClient
	}
	return &Client{
		ClientOptions: option,
	}, nil
}

// FetchConfig gets the checkout configuration from the backend, falling
// back to the built-in course defaults when the backend is unreachable
func (c *Client) FetchConfig(ctx context.Context) *Config {
	fallback := &Config{
		Amount:   product.DefaultPrice,
		Currency: product.DefaultCurrency,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/checkout/config", nil)
	if err != nil {
		return fallback
	}
	res, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Error("Error fetching checkout config",
			zap.Error(err),
		)
		return fallback
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fallback
	}

	var cfg Config
	if err := json.NewDecoder(res.Body).Decode(&cfg); err != nil {
		return fallback
	}
	return &cfg
}

// CreateOrder asks the Order Service for a gateway order. When the service
// is unreachable or errors out, a locally fabricated order is returned so
// checkout can still reach the payment widget. The mock identifier will not
// be recognized by the gateway, so the charge itself is expected to fail
// downstream.
func (c *Client) CreateOrder(ctx context.Context, cfg *Config) *GatewayOrder {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/order", nil)
	if err != nil {
		return c.mockOrder(cfg)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Error("Error creating order",
			zap.Error(err),
		)
		return c.mockOrder(cfg)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		c.Logger.Error("Error creating order",
			zap.Int("StatusCode", res.StatusCode),
		)
		return c.mockOrder(cfg)
	}

	var order GatewayOrder
	if err := json.NewDecoder(res.Body).Decode(&order); err != nil {
		c.Logger.Error("Error decoding order",
			zap.Error(err),
		)
		return c.mockOrder(cfg)
	}
	return &order
}

func (c *Client) mockOrder(cfg *Config) *GatewayOrder {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:7]
	return &GatewayOrder{
		ID:       "order_mock_" + suffix,
		Amount:   cfg.Amount,
		Currency: cfg.Currency,
	}
}

// SaveCustomer persists the buyer's details after the widget reports
// success. Fire-and-forget from the initiator's point of view.
func (c *Client) SaveCustomer(ctx context.Context, fields Fields) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/save-customer", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("save-customer returned HTTP %d", res.StatusCode)
	}
	return nil
}
