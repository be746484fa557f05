package fulfillment

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// WorkerOptions provides initialization parameters for Worker
type WorkerOptions struct {
	Consumer Consumer
	Mailer   *Mailer
	Logger   *zap.Logger
}

// Worker consumes CustomerSaved events and delivers course access. Delivery
// is best-effort: a failed email is logged, never retried, and never rolls
// back the saved record.
type Worker struct {
	WorkerOptions
}

// NewWorker will return a new instance of the fulfillment Worker
func NewWorker(option WorkerOptions) (*Worker, error) {
	if option.Consumer == nil {
		return nil, fmt.Errorf("nil Consumer is invalid")
	}
	if option.Mailer == nil {
		return nil, fmt.Errorf("nil Mailer is invalid")
	}
	if option.Logger == nil {
		return nil, fmt.Errorf("nil Logger is invalid")
	}
	return &Worker{
		WorkerOptions: option,
	}, nil
}

// Run will consume events until the context is cancelled
func (w *Worker) Run(ctx context.Context) error {
	eventChan, err := w.Consumer.ReceiveCustomerSaved(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-eventChan:
			logger := w.Logger.With(
				zap.String("RecordID", e.RecordID),
				zap.String("Email", e.Email),
			)
			if err := w.Mailer.SendAccess(e); err != nil {
				logger.Error("Unable to deliver access email",
					zap.Error(err),
				)
				continue
			}
			logger.Info("Access email delivered")
		}
	}
}
