package order

import (
	"context"
	"fmt"

	"github.com/digitalseva/courseshop/product"

	extErrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

// OrderAPI matches the Orders endpoint of the Razorpay SDK client
type OrderAPI interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// ManagerOptions provides initialization parameters for Manager
type ManagerOptions struct {
	Orders  OrderAPI
	Product *product.Product
	Logger  *zap.Logger
}

// Manager handles order creation against the payment gateway. No order is
// persisted locally; the gateway holds the only durable copy.
type Manager struct {
	ManagerOptions
}

// NewManager returns a new Manager for gateway orders
func NewManager(option ManagerOptions) (*Manager, error) {
	if option.Orders == nil {
		return nil, fmt.Errorf("nil Orders is invalid")
	}
	if option.Product == nil {
		return nil, fmt.Errorf("nil Product is invalid")
	}
	if option.Logger == nil {
		return nil, fmt.Errorf("nil Logger is invalid")
	}
	return &Manager{
		ManagerOptions: option,
	}, nil
}

// CreateOrder will ask the gateway to open a new order for the fixed course
// price, and return the gateway's order object untouched. Every call
// creates a fresh order; reloading the checkout page simply makes another.
func (m *Manager) CreateOrder(ctx context.Context) (map[string]interface{}, error) {
	data := map[string]interface{}{
		"amount":   m.Product.Price,
		"currency": m.Product.Currency,
		"receipt":  m.Product.Receipt,
	}

	gatewayOrder, err := m.Orders.Create(data, nil)
	if err != nil {
		m.Logger.Error("Gateway returned error",
			zap.Error(err),
		)
		return nil, extErrors.Wrap(err, "Cannot create order with the payment gateway")
	}

	return gatewayOrder, nil
}
