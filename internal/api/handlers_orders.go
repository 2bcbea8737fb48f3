package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/stockroom-io/erp-go/internal/pagination"
	"github.com/stockroom-io/erp-go/internal/store"
	"github.com/stockroom-io/erp-go/internal/util"
)

// PostOrder creates an order. When the client supplies an
// Idempotency-Key header, a retry within the key's TTL replays the
// stored response instead of creating a second order. Expired records
// are reclaimed by the janitor, never here.
func (h *handlers) PostOrder(w http.ResponseWriter, r *http.Request) {
	idemKey := r.Header.Get("Idempotency-Key")
	if idemKey != "" {
		rec, err := h.repos.Idempotency.Get(r.Context(), idemKey)
		switch {
		case err == nil:
			w.Header().Set("Idempotency-Replayed", "true")
			util.WriteRawJSON(w, rec.ResponseStatus, rec.ResponseBody)
			return
		case !errors.Is(err, store.ErrNotFound):
			util.WriteError(w, http.StatusInternalServerError, "failed to check idempotency key")
			return
		}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, h.maxBody+1))
	if err != nil {
		util.WriteError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	if int64(len(body)) > h.maxBody {
		util.WriteError(w, http.StatusRequestEntityTooLarge, "body too large")
		return
	}

	var in struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}
	if err := json.Unmarshal(body, &in); err != nil {
		util.WriteError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if in.ProductID < 1 || in.Quantity < 1 {
		util.WriteError(w, http.StatusUnprocessableEntity, "product_id and quantity must be positive")
		return
	}

	o := &store.Order{
		OrderUID:  uuid.New(),
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Status:    store.OrderStatusPending,
	}
	if err := h.repos.Orders.Insert(r.Context(), o); err != nil {
		util.WriteError(w, http.StatusInternalServerError, "failed to store order")
		return
	}

	resp, err := json.Marshal(o)
	if err != nil {
		util.WriteError(w, http.StatusInternalServerError, "failed to encode order")
		return
	}

	if idemKey != "" {
		rec := &store.IdempotencyRecord{
			Key:            idemKey,
			TTLAt:          time.Now().Add(h.cfg.IdempotencyTTL),
			ResponseStatus: http.StatusCreated,
			ResponseBody:   resp,
		}
		// A conflict means a concurrent request with the same key won
		// the insert; the order above already exists, so losing the
		// record race is harmless and only logged.
		if err := h.repos.Idempotency.Put(r.Context(), rec); err != nil && !errors.Is(err, store.ErrConflict) {
			slog.Error("store idempotency key failed", "component", "api", "error", err)
		}
	}

	util.WriteRawJSON(w, http.StatusCreated, resp)
}

// ListOrders pages orders ordered by (created_at, id).
func (h *handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit := util.ParseLimit(r, h.cfg.PageSizeDefault, h.cfg.PageSizeMax)
	after, err := timeSeek(r, createdAtCursor)
	if err != nil {
		util.WriteError(w, http.StatusUnprocessableEntity, "invalid cursor")
		return
	}

	items, err := h.repos.Orders.List(r.Context(), limit, after)
	if err != nil {
		util.WriteError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	page := pagination.Paginate(items, limit, createdAtCursor, func(o store.Order) (pagination.Value, int64) {
		return pagination.TimeValue(o.CreatedAt), o.ID
	})
	util.WriteJSON(w, http.StatusOK, page)
}

// GetOrder fetches one order by its public UID.
func (h *handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	uid, err := uuid.Parse(chi.URLParam(r, "orderUID"))
	if err != nil {
		util.WriteError(w, http.StatusUnprocessableEntity, "invalid order uid")
		return
	}
	o, err := h.repos.Orders.GetByUID(r.Context(), uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.WriteError(w, http.StatusNotFound, "order not found")
			return
		}
		util.WriteError(w, http.StatusInternalServerError, "failed to fetch order")
		return
	}
	util.WriteJSON(w, http.StatusOK, o)
}
