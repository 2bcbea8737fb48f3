package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/stockroom-io/erp-go/internal/pagination"
	"github.com/stockroom-io/erp-go/internal/store"
	"github.com/stockroom-io/erp-go/internal/util"
)

// PostProduct creates a product. Duplicate SKUs are rejected with 409.
func (h *handlers) PostProduct(w http.ResponseWriter, r *http.Request) {
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
		SKU        string `json:"sku"`
		Name       string `json:"name"`
		PriceCents int64  `json:"price_cents"`
		Currency   string `json:"currency"`
	}
	if err := json.Unmarshal(body, &in); err != nil {
		util.WriteError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if in.SKU == "" || in.Name == "" {
		util.WriteError(w, http.StatusUnprocessableEntity, "sku and name are required")
		return
	}
	if in.PriceCents < 0 {
		util.WriteError(w, http.StatusUnprocessableEntity, "price_cents must not be negative")
		return
	}
	if in.Currency == "" {
		in.Currency = "RON"
	}

	p := &store.Product{SKU: in.SKU, Name: in.Name, PriceCents: in.PriceCents, Currency: in.Currency}
	if err := h.repos.Products.Insert(r.Context(), p); err != nil {
		if errors.Is(err, store.ErrConflict) {
			util.WriteError(w, http.StatusConflict, "sku already exists")
			return
		}
		util.WriteError(w, http.StatusInternalServerError, "failed to store product")
		return
	}
	util.WriteJSON(w, http.StatusCreated, p)
}

// ListProducts pages products ordered by (created_at, id).
func (h *handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit := util.ParseLimit(r, h.cfg.PageSizeDefault, h.cfg.PageSizeMax)
	after, err := timeSeek(r, createdAtCursor)
	if err != nil {
		util.WriteError(w, http.StatusUnprocessableEntity, "invalid cursor")
		return
	}

	items, err := h.repos.Products.List(r.Context(), limit, after)
	if err != nil {
		util.WriteError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	page := pagination.Paginate(items, limit, createdAtCursor, func(p store.Product) (pagination.Value, int64) {
		return pagination.TimeValue(p.CreatedAt), p.ID
	})
	util.WriteJSON(w, http.StatusOK, page)
}

// GetProduct fetches one product by id.
func (h *handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		util.WriteError(w, http.StatusUnprocessableEntity, "invalid product id")
		return
	}
	p, err := h.repos.Products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.WriteError(w, http.StatusNotFound, "product not found")
			return
		}
		util.WriteError(w, http.StatusInternalServerError, "failed to fetch product")
		return
	}
	util.WriteJSON(w, http.StatusOK, p)
}
