package api

import (
	"net/http"

	"github.com/stockroom-io/erp-go/internal/pagination"
	"github.com/stockroom-io/erp-go/internal/store"
	"github.com/stockroom-io/erp-go/internal/util"
)

// ListSuppliers pages suppliers ordered by (name, id).
func (h *handlers) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	limit := util.ParseLimit(r, h.cfg.PageSizeDefault, h.cfg.PageSizeMax)
	after, err := textSeek(r, nameCursor)
	if err != nil {
		util.WriteError(w, http.StatusUnprocessableEntity, "invalid cursor")
		return
	}

	items, err := h.repos.Suppliers.List(r.Context(), limit, after)
	if err != nil {
		util.WriteError(w, http.StatusInternalServerError, "failed to list suppliers")
		return
	}

	page := pagination.Paginate(items, limit, nameCursor, func(s store.Supplier) (pagination.Value, int64) {
		return pagination.StringValue(s.Name), s.ID
	})
	util.WriteJSON(w, http.StatusOK, page)
}
