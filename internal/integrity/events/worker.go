package events

import (
	"context"
	"log/slog"

	"devicegate/internal/integrity/metrics"
)

// Publisher is the delivery side consumed by the worker.
type Publisher interface {
	Publish(ctx context.Context, event IntegrityLogCreated) error
}

// Recorder accepts events from the request path without blocking it. A full
// outbox drops the event; durability lives in the integrity_logs table, the
// stream is a convenience for downstream consumers.
type Recorder struct {
	outbox chan IntegrityLogCreated
	logger *slog.Logger
}

// NewRecorder builds a Recorder with the given outbox capacity.
func NewRecorder(capacity int, logger *slog.Logger) *Recorder {
	if capacity <= 0 {
		capacity = 256
	}
	return &Recorder{
		outbox: make(chan IntegrityLogCreated, capacity),
		logger: logger,
	}
}

// Emit queues an event for publishing. Never blocks.
func (r *Recorder) Emit(event IntegrityLogCreated) {
	select {
	case r.outbox <- event:
	default:
		metrics.EventDropped()
		r.logger.Warn("integrity event dropped, outbox full", "idfa", event.Data.IDFA)
	}
}

// Worker drains the recorder's outbox into a publisher.
type Worker struct {
	recorder  *Recorder
	publisher Publisher
	logger    *slog.Logger
}

// NewWorker wires a worker to a recorder and publisher.
func NewWorker(recorder *Recorder, publisher Publisher, logger *slog.Logger) *Worker {
	return &Worker{recorder: recorder, publisher: publisher, logger: logger}
}

// Run consumes events until the context is cancelled. Publish failures are
// logged and the event is discarded; the audit row already committed.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-w.recorder.outbox:
			if err := w.publisher.Publish(ctx, event); err != nil {
				w.logger.Error("publish integrity event failed",
					"idfa", event.Data.IDFA,
					"error", err,
				)
			}
		}
	}
}
