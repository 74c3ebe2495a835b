// Package service orchestrates one ban-status evaluation: load-or-create the
// device, honor the terminal banned state, run the checker chain, and persist
// the outcome atomically together with its audit entry.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"devicegate/internal/integrity"
	"devicegate/internal/integrity/checker"
	"devicegate/internal/integrity/events"
	"devicegate/internal/integrity/metrics"
	"devicegate/internal/integrity/store"
	dErrors "devicegate/pkg/domain-errors"
	"devicegate/pkg/requestcontext"
)

var tracer = otel.Tracer("devicegate/internal/integrity/service")

// DeviceStore is the persistence contract for tracked devices.
type DeviceStore interface {
	Get(ctx context.Context, idfa string) (integrity.Device, error)
	Upsert(ctx context.Context, d integrity.Device) error
}

// LogStore appends audit entries.
type LogStore interface {
	Append(ctx context.Context, entry *integrity.IntegrityLog) error
}

// Chain is the ordered checker sequence producing a single verdict.
type Chain interface {
	Evaluate(ctx context.Context, in checker.Input) (checker.Outcome, error)
}

// TxRunner provides the transactional boundary for the device upsert plus
// audit append. Implementations may wrap a database transaction or, in
// memory, nothing at all.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventRecorder receives an event for each committed audit entry.
type EventRecorder interface {
	Emit(event events.IntegrityLogCreated)
}

// Service is the ban status processor.
type Service struct {
	devices DeviceStore
	logs    LogStore
	chain   Chain
	tx      TxRunner
	logger  *slog.Logger
	events  EventRecorder
}

// Option configures a Service.
type Option func(*Service)

// WithEventRecorder enables integrity event emission after commits.
func WithEventRecorder(recorder EventRecorder) Option {
	return func(s *Service) {
		s.events = recorder
	}
}

// New constructs the processor.
func New(devices DeviceStore, logs LogStore, chain Chain, tx TxRunner, logger *slog.Logger, opts ...Option) (*Service, error) {
	if devices == nil {
		return nil, fmt.Errorf("device store is required")
	}
	if logs == nil {
		return nil, fmt.Errorf("log store is required")
	}
	if chain == nil {
		return nil, fmt.Errorf("checker chain is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	svc := &Service{devices: devices, logs: logs, chain: chain, tx: tx, logger: logger}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Check evaluates one device and returns its resulting ban status.
//
// Banned is terminal: a device already banned is returned immediately with no
// chain evaluation, no persistence and no audit entry. Otherwise the chain
// verdict maps to the new status, which is persisted together with the audit
// entry in one transaction. The audit entry is written only for new devices
// and for not_banned -> banned transitions.
func (s *Service) Check(ctx context.Context, in integrity.CheckInput) (integrity.BanStatus, error) {
	ctx, span := tracer.Start(ctx, "integrity.evaluate")
	defer span.End()

	if in.IDFA == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "idfa is required")
	}
	span.SetAttributes(attribute.String("integrity.idfa", in.IDFA))

	device, err := s.devices.Get(ctx, in.IDFA)
	isNew := false
	switch {
	case errors.Is(err, store.ErrNotFound):
		isNew = true
		device = integrity.Device{IDFA: in.IDFA}
	case err != nil:
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "load device")
	}

	if !isNew && device.BanStatus == integrity.BanStatusBanned {
		span.SetAttributes(attribute.Bool("integrity.terminal", true))
		return integrity.BanStatusBanned, nil
	}

	outcome, err := s.chain.Evaluate(ctx, checker.Input{
		Country:      in.Country,
		RootedDevice: in.RootedDevice,
		IP:           in.IP,
	})
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "evaluate checkers")
	}

	status := integrity.BanStatusNotBanned
	if outcome.Failed() {
		status = integrity.BanStatusBanned
	}

	transitioned := !isNew && device.BanStatus == integrity.BanStatusNotBanned && status == integrity.BanStatusBanned
	writeLog := isNew || transitioned

	entry := &integrity.IntegrityLog{
		IDFA:         in.IDFA,
		BanStatus:    status,
		IP:           in.IP,
		RootedDevice: in.RootedDevice,
		Country:      in.Country,
		VPN:          outcome.Signals.VPN,
		Tor:          outcome.Signals.Tor,
		CreatedAt:    requestcontext.Now(ctx).UTC(),
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		// Audit entry first: if it cannot be persisted, the status update
		// must not be retained either.
		if writeLog {
			if err := s.logs.Append(ctx, entry); err != nil {
				return err
			}
		}
		device.BanStatus = status
		return s.devices.Upsert(ctx, device)
	})
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "persist evaluation")
	}

	if writeLog && s.events != nil {
		s.events.Emit(events.New(events.IntegrityLogCreatedData{
			IDFA:         entry.IDFA,
			BanStatus:    string(entry.BanStatus),
			IP:           entry.IP,
			RootedDevice: entry.RootedDevice,
			Country:      entry.Country,
			VPN:          entry.VPN,
			Tor:          entry.Tor,
			CreatedAt:    entry.CreatedAt,
		}))
	}

	metrics.Evaluation(string(status))
	s.logger.InfoContext(ctx, "evaluation persisted",
		"request_id", requestcontext.RequestID(ctx),
		"idfa", in.IDFA,
		"ban_status", status,
		"new_device", isNew,
		"audit_entry", writeLog,
		"reason", string(outcome.Reason),
	)

	return status, nil
}
