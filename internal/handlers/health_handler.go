package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/ruralpay/cashcard/internal/services"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ready(ctx context.Context) error
}

// Health always answers 200 while the process is serving.
func Health(w http.ResponseWriter, r *http.Request) {
	services.SendJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Ready answers 503 when the record store cannot be reached.
func Ready(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := p.Ready(ctx); err != nil {
			services.SendErrorResponse(w, "store not ready", http.StatusServiceUnavailable, nil)
			return
		}
		services.SendJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
