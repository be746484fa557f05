package fulfillment

import "context"

// CustomerSaved is published after a customer record lands in the
// database, so the worker can deliver the course access email
type CustomerSaved struct {
	RecordID string `json:"recordId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
}

// Producer pushes fulfillment events to the message broker
type Producer interface {
	PublishCustomerSaved(e *CustomerSaved) error
}

// Consumer receives fulfillment events from the message broker
type Consumer interface {
	ReceiveCustomerSaved(ctx context.Context) (<-chan *CustomerSaved, error)
}
