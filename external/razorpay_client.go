package external

import razorpay "github.com/razorpay/razorpay-go"

// NewRazorpayClient returns an authenticated client for the Razorpay REST API
func NewRazorpayClient(keyID, keySecret string) *razorpay.Client {
	return razorpay.NewClient(keyID, keySecret)
}
