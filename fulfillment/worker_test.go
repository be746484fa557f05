package fulfillment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeConsumer struct {
	events chan *CustomerSaved
}

func (f *fakeConsumer) ReceiveCustomerSaved(ctx context.Context) (<-chan *CustomerSaved, error) {
	return f.events, nil
}

// TestWorkerSurvivesDeliveryFailure feeds an event whose email delivery
// cannot succeed and checks the loop keeps running until cancelled.
func TestWorkerSurvivesDeliveryFailure(t *testing.T) {
	mailer := testMailer(t)
	// unroutable SMTP endpoint, delivery will fail fast
	mailer.Hostname = "127.0.0.1:1"

	consumer := &fakeConsumer{events: make(chan *CustomerSaved, 1)}

	worker, err := NewWorker(WorkerOptions{
		Consumer: consumer,
		Mailer:   mailer,
		Logger:   zap.NewNop(),
	})
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- worker.Run(ctx)
	}()

	consumer.events <- &CustomerSaved{
		RecordID: "rec1",
		Name:     "Ravi",
		Email:    "ravi@example.com",
	}

	// give the loop a beat to process before shutting down
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on cancel")
	}
}

// TestNewWorkerValidation checks the option guards.
func TestNewWorkerValidation(t *testing.T) {
	mailer := testMailer(t)
	consumer := &fakeConsumer{events: make(chan *CustomerSaved)}

	_, err := NewWorker(WorkerOptions{Consumer: nil, Mailer: mailer, Logger: zap.NewNop()})
	assert.Error(t, err)

	_, err = NewWorker(WorkerOptions{Consumer: consumer, Mailer: nil, Logger: zap.NewNop()})
	assert.Error(t, err)

	_, err = NewWorker(WorkerOptions{Consumer: consumer, Mailer: mailer, Logger: nil})
	assert.Error(t, err)
}
