package product

import (
	"fmt"
	"os"
	"strconv"

	extErrors "github.com/pkg/errors"
)

// Defaults for the course being sold. Price is in the minor currency unit
// (paise), so 19900 is Rs. 199.
const (
	DefaultPrice    int64 = 19900
	DefaultCurrency       = "INR"
	DefaultReceipt        = "receipt_order_1"
)

// Product is the single definition of what is being sold. Both the Order
// Service and the checkout initiator read from it, so the price can never
// diverge between the two sides.
type Product struct {
	Name        string `json:"name"`        // Shown in the payment widget header
	Description string `json:"description"` // Shown under the name in the widget
	Price       int64  `json:"amount"`      // Amount in the minor currency unit
	Currency    string `json:"currency"`    // ISO currency code (e.g. INR)
	Receipt     string `json:"-"`           // Receipt label attached to every gateway order
	WidgetKey   string `json:"key"`         // Publishable key for the client-side widget
}

func (p *Product) validate() error {
	if p.Name == "" {
		return fmt.Errorf("empty Name is invalid")
	}
	if p.Price <= 0 {
		return fmt.Errorf("non-positive Price is invalid")
	}
	if len(p.Currency) != 3 {
		return fmt.Errorf("Currency must be a 3-letter code")
	}
	if p.Receipt == "" {
		return fmt.Errorf("empty Receipt is invalid")
	}
	return nil
}

// FromEnv will build the Product from environment variables, falling back
// to the fixed course defaults where an override is not set
func FromEnv() (*Product, error) {
	price := DefaultPrice
	if override := os.Getenv("COURSE_PRICE"); override != "" {
		parsed, err := strconv.ParseInt(override, 10, 64)
		if err != nil {
			return nil, extErrors.Wrap(err, "Cannot parse COURSE_PRICE")
		}
		price = parsed
	}

	p := &Product{
		Name:        envOrDefault("COURSE_NAME", "Cybercafe Services"),
		Description: envOrDefault("COURSE_DESCRIPTION", "Cybercafe Services & Practical Course"),
		Price:       price,
		Currency:    envOrDefault("COURSE_CURRENCY", DefaultCurrency),
		Receipt:     envOrDefault("COURSE_RECEIPT", DefaultReceipt),
		WidgetKey:   os.Getenv("RAZORPAY_KEY_ID"),
	}

	if err := p.validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
