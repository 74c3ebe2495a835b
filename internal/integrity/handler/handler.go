// Package handler is the thin HTTP layer for the evaluation endpoint. It
// delegates to the processor without embedding business logic so transport
// concerns remain isolated.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"devicegate/internal/integrity"
	"devicegate/pkg/platform/httputil"
	"devicegate/pkg/requestcontext"
)

// Service defines the processor operation the handler depends on.
type Service interface {
	Check(ctx context.Context, in integrity.CheckInput) (integrity.BanStatus, error)
}

// Handler wires the check-status endpoint to the processor.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs the handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the evaluation endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/user/check_status", h.HandleCheckStatus)
}

// HandleCheckStatus handles POST /v1/user/check_status requests.
func (h *Handler) HandleCheckStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, err := httputil.Decode[CheckStatusRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	status, err := h.service.Check(ctx, integrity.CheckInput{
		IDFA:         req.IDFA,
		RootedDevice: req.RootedDevice,
		IP:           requestcontext.ClientIP(ctx),
		Country:      requestcontext.Country(ctx),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "check status failed",
			"request_id", requestID,
			"idfa", req.IDFA,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "check status evaluated",
		"request_id", requestID,
		"idfa", req.IDFA,
		"ban_status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromStatus(status))
}
