package api

import (
	"fmt"
	"net/http"

	"github.com/stockroom-io/erp-go/internal/pagination"
	"github.com/stockroom-io/erp-go/internal/store"
)

// timeSeek decodes the `after` query parameter for listings ordered by
// (timestamp, id). An absent parameter means start-of-sequence, not an
// error; any malformed or wrongly-typed token fails with ErrInvalidCursor.
func timeSeek(r *http.Request, codec pagination.Codec) (*store.TimeSeek, error) {
	token := r.URL.Query().Get("after")
	if token == "" {
		return nil, nil
	}
	v, id, err := codec.Decode(token)
	if err != nil {
		return nil, err
	}
	at, ok := v.Time()
	if !ok {
		return nil, fmt.Errorf("%w: expected timestamp value", pagination.ErrInvalidCursor)
	}
	return &store.TimeSeek{At: at, ID: id}, nil
}

// textSeek decodes the `after` query parameter for listings ordered by
// (text, id).
func textSeek(r *http.Request, codec pagination.Codec) (*store.TextSeek, error) {
	token := r.URL.Query().Get("after")
	if token == "" {
		return nil, nil
	}
	v, id, err := codec.Decode(token)
	if err != nil {
		return nil, err
	}
	text, ok := v.Text()
	if !ok {
		return nil, fmt.Errorf("%w: expected text value", pagination.ErrInvalidCursor)
	}
	return &store.TextSeek{Text: text, ID: id}, nil
}
