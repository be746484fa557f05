package checkout

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// WidgetOptions initializes the payment widget for one order
type WidgetOptions struct {
	Key         string
	Amount      int64
	Currency    string
	Name        string
	Description string
	OrderID     string
	Prefill     Fields

	OnSuccess func(paymentID string)
	OnFailure func(reason string)
}

// Widget abstracts the gateway's client-side payment widget. The real one
// is rendered by the browser; tests substitute their own.
type Widget interface {
	Open(opts WidgetOptions)
}

// DriverOptions provides initialization parameters for Driver
type DriverOptions struct {
	Client *Client
	Widget Widget
	Logger *zap.Logger
}

// Driver executes the machine's commands against the backend and the
// payment widget, feeding outcomes back in as events
type Driver struct {
	DriverOptions

	mu      sync.Mutex
	machine *Machine
	config  *Config
}

// NewDriver will return a new Driver around a fresh Machine
func NewDriver(option DriverOptions) (*Driver, error) {
	if option.Client == nil {
		return nil, fmt.Errorf("nil Client is invalid")
	}
	if option.Widget == nil {
		return nil, fmt.Errorf("nil Widget is invalid")
	}
	if option.Logger == nil {
		return nil, fmt.Errorf("nil Logger is invalid")
	}
	return &Driver{
		DriverOptions: option,
		machine:       NewMachine(),
	}, nil
}

// Machine exposes the underlying state for inspection
func (d *Driver) Machine() *Machine {
	return d.machine
}

// Dispatch applies an event and executes whatever commands result. The
// widget callbacks and the async save re-enter through Dispatch, so the
// machine is guarded by a mutex even though the flow is sequential.
func (d *Driver) Dispatch(ctx context.Context, ev Event) {
	d.mu.Lock()
	commands := d.machine.Apply(ev)
	d.mu.Unlock()

	for _, command := range commands {
		d.execute(ctx, command)
	}
}

func (d *Driver) execute(ctx context.Context, command Command) {
	switch cmd := command.(type) {
	case FetchOrder:
		if d.config == nil {
			d.config = d.Client.FetchConfig(ctx)
		}
		order := d.Client.CreateOrder(ctx, d.config)
		d.Dispatch(ctx, OrderReady{Order: order})
	case OpenWidget:
		d.Widget.Open(WidgetOptions{
			Key:         d.config.Key,
			Amount:      cmd.Order.Amount,
			Currency:    cmd.Order.Currency,
			Name:        d.config.Name,
			Description: d.config.Description,
			OrderID:     cmd.Order.ID,
			Prefill:     cmd.Fields,
			OnSuccess: func(paymentID string) {
				d.Dispatch(ctx, PaymentSucceeded{PaymentID: paymentID})
			},
			OnFailure: func(reason string) {
				d.Dispatch(ctx, PaymentFailed{Reason: reason})
			},
		})
	case SaveCustomer:
		go func() {
			err := d.Client.SaveCustomer(ctx, cmd.Fields)
			if err != nil {
				d.Logger.Error("Unable to save customer after payment",
					zap.Error(err),
				)
			}
			d.Dispatch(ctx, SaveFinished{Err: err})
		}()
	}
}
