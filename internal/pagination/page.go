package pagination

// Page is one window of a listed result set.
type Page[T any] struct {
	Items      []T     `json:"data"`
	NextCursor *string `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}

// Paginate turns an over-fetched result batch into a Page. The caller
// must have fetched limit+1 rows ordered by (codec.Field, id), already
// seeked past any supplied cursor; the extra row is how has_more is
// known without a second COUNT query.
//
// key extracts the (ordering value, id) pair from an item; it is only
// invoked on the last retained item when another page exists.
func Paginate[T any](items []T, limit int, codec Codec, key func(T) (Value, int64)) Page[T] {
	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}
	if items == nil {
		items = []T{}
	}
	page := Page[T]{Items: items, HasMore: hasMore}
	if hasMore && len(items) > 0 {
		v, id := key(items[len(items)-1])
		token := codec.Encode(v, id)
		page.NextCursor = &token
	}
	return page
}
