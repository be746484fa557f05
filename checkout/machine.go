package checkout

import (
	"regexp"
	"strings"
)

// State is a named page of the checkout flow
type State string

// The business states plus the display-only pages. Display states carry no
// logic; they exist so navigation events stay exhaustive.
const (
	StateHome     State = "home"
	StateCheckout State = "checkout"
	StateSuccess  State = "success"
	StateTerms    State = "terms"
	StatePrivacy  State = "privacy"
	StateRefund   State = "refund"
	StateAdmin    State = "admin"
)

// Fields holds the buyer's input on the checkout page
type Fields struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

// GatewayOrder is the amount/currency-bound transaction handle used to
// initialize the payment widget
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Event is an input to the state machine
type Event interface {
	isEvent()
}

// Navigate moves between pages; always allowed, from any state
type Navigate struct {
	To State
}

// Submit is the buyer pressing the pay button with the current fields
type Submit struct {
	Fields Fields
}

// OrderReady carries the order descriptor the driver obtained (real or fallback)
type OrderReady struct {
	Order *GatewayOrder
}

// PaymentSucceeded is the widget's success callback
type PaymentSucceeded struct {
	PaymentID string
}

// PaymentFailed is the widget's failure callback
type PaymentFailed struct {
	Reason string
}

// SaveFinished reports the outcome of the best-effort customer save
type SaveFinished struct {
	Err error
}

// ToastExpired dismisses the current notification
type ToastExpired struct{}

func (Navigate) isEvent()         {}
func (Submit) isEvent()           {}
func (OrderReady) isEvent()       {}
func (PaymentSucceeded) isEvent() {}
func (PaymentFailed) isEvent()    {}
func (SaveFinished) isEvent()     {}
func (ToastExpired) isEvent()     {}

// Command is a side effect the machine asks its driver to perform
type Command interface {
	isCommand()
}

// FetchOrder asks the driver to obtain an order descriptor from the Order Service
type FetchOrder struct {
	Fields Fields
}

// OpenWidget asks the driver to launch the payment widget for the order
type OpenWidget struct {
	Order  *GatewayOrder
	Fields Fields
}

// SaveCustomer asks the driver to persist the buyer, async and best-effort
type SaveCustomer struct {
	Fields Fields
}

func (FetchOrder) isCommand()   {}
func (OpenWidget) isCommand()   {}
func (SaveCustomer) isCommand() {}

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[A-Za-z]{2,}$`)
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// Machine is the Order Initiator's state: the current page, the loading
// flag, and the transient toast, driven purely by events. It performs no
// I/O itself; side effects come back as Commands for a driver to execute.
type Machine struct {
	state   State
	loading bool
	toast   string
	fields  Fields
	queue   []Event
}

// NewMachine returns a Machine on the home page
func NewMachine() *Machine {
	return &Machine{
		state: StateHome,
		queue: make([]Event, 0),
	}
}

// State returns the current page
func (m *Machine) State() State {
	return m.state
}

// Loading reports whether a submit is in flight
func (m *Machine) Loading() bool {
	return m.loading
}

// Toast returns the current notification text, empty when dismissed
func (m *Machine) Toast() string {
	return m.toast
}

// Enqueue adds an event to the queue without applying it
func (m *Machine) Enqueue(ev Event) {
	m.queue = append(m.queue, ev)
}

// Drain applies every queued event in order and collects the resulting commands
func (m *Machine) Drain() []Command {
	commands := make([]Command, 0)
	for len(m.queue) > 0 {
		ev := m.queue[0]
		m.queue = m.queue[1:]
		commands = append(commands, m.apply(ev)...)
	}
	return commands
}

// Apply enqueues a single event and drains the queue
func (m *Machine) Apply(ev Event) []Command {
	m.Enqueue(ev)
	return m.Drain()
}

// apply is the transition function. One event, one deterministic outcome.
func (m *Machine) apply(ev Event) []Command {
	switch e := ev.(type) {
	case Navigate:
		m.state = e.To
		return nil
	case Submit:
		if m.state != StateCheckout {
			return nil
		}
		if msg, ok := validateFields(e.Fields); !ok {
			m.toast = msg
			return nil
		}
		m.fields = e.Fields
		m.fields.Name = strings.TrimSpace(m.fields.Name)
		m.loading = true
		return []Command{FetchOrder{Fields: m.fields}}
	case OrderReady:
		if !m.loading {
			return nil
		}
		return []Command{OpenWidget{Order: e.Order, Fields: m.fields}}
	case PaymentSucceeded:
		m.state = StateSuccess
		m.toast = "Payment successful! Thank you."
		m.loading = false
		return []Command{SaveCustomer{Fields: m.fields}}
	case PaymentFailed:
		m.toast = "Payment failed, please retry."
		m.loading = false
		return nil
	case SaveFinished:
		// the buyer already saw the success page, a failed save never
		// rolls that back
		return nil
	case ToastExpired:
		m.toast = ""
		return nil
	}
	return nil
}

// validateFields checks the buyer's input before any network call is made:
// trimmed non-empty name, a plausible email, and exactly 10 digits of mobile
func validateFields(f Fields) (string, bool) {
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Email) == "" || strings.TrimSpace(f.Mobile) == "" {
		return "Name, email, and mobile are required.", false
	}
	if !emailPattern.MatchString(strings.TrimSpace(f.Email)) {
		return "Please enter a valid email address.", false
	}
	if !mobilePattern.MatchString(strings.TrimSpace(f.Mobile)) {
		return "Mobile number must be exactly 10 digits.", false
	}
	return "", true
}
