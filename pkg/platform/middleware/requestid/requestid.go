// Package requestid stamps every request with a UUID and the request time so
// logs and audit entries within one evaluation line up.
package requestid

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"devicegate/pkg/requestcontext"
)

const headerRequestID = "X-Request-Id"

// RequestID propagates an inbound X-Request-Id or mints a new UUID, storing
// both the ID and the request time in the context. The ID is echoed on the
// response for caller-side correlation.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), id)
		ctx = requestcontext.WithTime(ctx, time.Now().UTC())

		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
