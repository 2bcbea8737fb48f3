package api

import (
	"net/http"

	"github.com/stockroom-io/erp-go/internal/util"
)

// GetHealth reports liveness and storage reachability.
func (h *handlers) GetHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		util.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "degraded",
			"database": "unreachable",
		})
		return
	}
	util.WriteJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "ok",
	})
}
