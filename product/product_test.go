package product

import (
	"os"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"COURSE_PRICE", "COURSE_NAME", "COURSE_DESCRIPTION", "COURSE_CURRENCY", "COURSE_RECEIPT", "RAZORPAY_KEY_ID"} {
		old := os.Getenv(key)
		os.Unsetenv(key)
		key, old := key, old
		t.Cleanup(func() {
			if old != "" {
				os.Setenv(key, old)
			}
		})
	}
}

// TestFromEnvDefaults verifies the fixed course parameters when nothing is
// overridden: Rs. 199 in paise, INR, the fixed receipt label.
func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	p, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if p.Price != 19900 {
		t.Fatalf("expected price 19900, got %d", p.Price)
	}
	if p.Currency != "INR" {
		t.Fatalf("expected currency INR, got %s", p.Currency)
	}
	if p.Receipt != "receipt_order_1" {
		t.Fatalf("expected fixed receipt, got %s", p.Receipt)
	}
}

// TestFromEnvOverrides verifies a price change needs exactly one knob.
func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	os.Setenv("COURSE_PRICE", "29900")
	os.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Cleanup(func() {
		os.Unsetenv("COURSE_PRICE")
		os.Unsetenv("RAZORPAY_KEY_ID")
	})

	p, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if p.Price != 29900 {
		t.Fatalf("expected price 29900, got %d", p.Price)
	}
	if p.WidgetKey != "rzp_test_key" {
		t.Fatalf("expected widget key from env, got %q", p.WidgetKey)
	}
}

// TestFromEnvInvalidPrice verifies a malformed override fails loudly
// instead of silently selling at the wrong price.
func TestFromEnvInvalidPrice(t *testing.T) {
	clearEnv(t)
	os.Setenv("COURSE_PRICE", "one-ninety-nine")
	t.Cleanup(func() { os.Unsetenv("COURSE_PRICE") })

	if _, err := FromEnv(); err == nil {
		t.Fatal("expected an error for a malformed price")
	}
}
