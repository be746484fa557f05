package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeWidget struct {
	opened []WidgetOptions
}

func (f *fakeWidget) Open(opts WidgetOptions) {
	f.opened = append(f.opened, opts)
}

func newTestDriver(t *testing.T, baseURL string) (*Driver, *fakeWidget) {
	t.Helper()
	widget := &fakeWidget{}
	client, err := NewClient(ClientOptions{
		BaseURL: baseURL,
		Logger:  zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	driver, err := NewDriver(DriverOptions{
		Client: client,
		Widget: widget,
		Logger: zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}
	return driver, widget
}

// TestDriverOpensWidgetWithMockOrderWhenBackendDown verifies that a broken
// backend is silently masked: the widget still opens, initialized with the
// fabricated order and the default price.
func TestDriverOpensWidgetWithMockOrderWhenBackendDown(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	driver, widget := newTestDriver(t, srv.URL)
	ctx := context.Background()

	driver.Dispatch(ctx, Navigate{To: StateCheckout})
	driver.Dispatch(ctx, Submit{Fields: Fields{Name: "Ravi", Email: "ravi@example.com", Mobile: "9999999999"}})

	if len(widget.opened) != 1 {
		t.Fatalf("expected widget opened once, got %d", len(widget.opened))
	}
	opts := widget.opened[0]
	if !strings.HasPrefix(opts.OrderID, "order_mock_") {
		t.Fatalf("expected order_mock_ order id, got %q", opts.OrderID)
	}
	if opts.Amount != 19900 || opts.Currency != "INR" {
		t.Fatalf("unexpected widget amount/currency: %d %s", opts.Amount, opts.Currency)
	}
	if opts.Prefill.Name != "Ravi" {
		t.Fatalf("expected prefilled name, got %q", opts.Prefill.Name)
	}
}

// TestDriverSavesCustomerAfterSuccess verifies the async best-effort save
// fires after the widget's success callback and the flow lands on success.
func TestDriverSavesCustomerAfterSuccess(t *testing.T) {
	t.Parallel()

	saved := make(chan Fields, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/checkout/config":
			json.NewEncoder(w).Encode(Config{Key: "rzp_test_key", Amount: 19900, Currency: "INR", Name: "Cybercafe Services"})
		case "/order":
			json.NewEncoder(w).Encode(map[string]interface{}{"id": "order_real_9", "amount": 19900, "currency": "INR"})
		case "/save-customer":
			var f Fields
			json.NewDecoder(r.Body).Decode(&f)
			saved <- f
			json.NewEncoder(w).Encode(map[string]string{"message": "Customer saved successfully"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	driver, widget := newTestDriver(t, srv.URL)
	ctx := context.Background()

	driver.Dispatch(ctx, Navigate{To: StateCheckout})
	driver.Dispatch(ctx, Submit{Fields: Fields{Name: "Sana", Email: "sana@example.com", Mobile: "8888888888"}})

	if len(widget.opened) != 1 {
		t.Fatalf("expected widget opened once, got %d", len(widget.opened))
	}
	if widget.opened[0].OrderID != "order_real_9" {
		t.Fatalf("expected the real order, got %q", widget.opened[0].OrderID)
	}
	if widget.opened[0].Key != "rzp_test_key" {
		t.Fatalf("expected publishable key from config, got %q", widget.opened[0].Key)
	}

	widget.opened[0].OnSuccess("pay_123")

	if driver.Machine().State() != StateSuccess {
		t.Fatalf("expected state success, got %s", driver.Machine().State())
	}

	select {
	case f := <-saved:
		if f.Name != "Sana" || f.Mobile != "8888888888" {
			t.Fatalf("unexpected saved fields %+v", f)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("save-customer was never called")
	}
}
