// Package pagination implements opaque cursor encoding and keyset
// pagination for list endpoints.
package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/stockroom-io/erp-go/internal/canonicaljson"
)

// ErrInvalidCursor is returned when a cursor token cannot be decoded back
// into a seek position. Callers should map it to a 4xx response.
var ErrInvalidCursor = errors.New("invalid cursor")

// ValueKind discriminates the types a cursor value can carry.
type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
	KindTime
)

// Value is the ordering-field half of a seek position. It is a tagged
// union over the types list endpoints sort by: strings, integers and
// timestamps.
type Value struct {
	kind ValueKind
	str  string
	num  int64
	ts   time.Time
}

// StringValue wraps a string ordering value.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// IntValue wraps an integer ordering value.
func IntValue(n int64) Value {
	return Value{kind: KindInt, num: n}
}

// TimeValue wraps a timestamp ordering value. The timestamp is normalized
// to UTC so the same instant always encodes to the same token.
func TimeValue(t time.Time) Value {
	return Value{kind: KindTime, ts: t.UTC()}
}

// Kind reports which member of the union is set.
func (v Value) Kind() ValueKind { return v.kind }

// Text returns the string member. Valid only when Kind is KindString.
func (v Value) Text() (string, bool) {
	return v.str, v.kind == KindString
}

// Int returns the integer member. Valid only when Kind is KindInt.
func (v Value) Int() (int64, bool) {
	return v.num, v.kind == KindInt
}

// Time returns the timestamp member. Valid only when Kind is KindTime.
func (v Value) Time() (time.Time, bool) {
	return v.ts, v.kind == KindTime
}

// Equal reports whether two values carry the same kind and payload.
// Timestamps compare by instant, not by location.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindTime:
		return v.ts.Equal(o.ts)
	case KindInt:
		return v.num == o.num
	default:
		return v.str == o.str
	}
}

// jsonValue returns the canonical serialized form of the value.
// Timestamps become RFC 3339 text in UTC; RFC3339Nano drops trailing
// zeros, so sub-second precision drift cannot produce two encodings of
// the same instant.
func (v Value) jsonValue() any {
	switch v.kind {
	case KindTime:
		return v.ts.UTC().Format(time.RFC3339Nano)
	case KindInt:
		return v.num
	default:
		return v.str
	}
}

// Codec encodes and decodes seek positions for one ordering field.
// Both directions are pure; a Codec carries no state beyond the field name.
type Codec struct {
	// Field is the payload key the ordering value is stored under,
	// conventionally the column name the listing sorts by.
	Field string
}

// Encode serializes a seek position into a URL-safe opaque token.
// The payload is a JSON object {Field: value, "id": id} in RFC 8785
// canonical form, so identical inputs always yield byte-identical tokens.
func (c Codec) Encode(v Value, id int64) string {
	payload := map[string]any{
		c.Field: v.jsonValue(),
		"id":    id,
	}
	raw, err := canonicaljson.Canonicalize(payload)
	if err != nil {
		// Only reachable with a non-serializable value, which the
		// tagged union rules out.
		panic(fmt.Sprintf("pagination: marshal cursor: %v", err))
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Decode reverses Encode. It fails with ErrInvalidCursor when the token
// is not valid base64, the payload is not a JSON object, or either of
// the two required keys is missing.
func (c Codec) Decode(token string) (Value, int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Value{}, 0, fmt.Errorf("%w: bad encoding", ErrInvalidCursor)
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Value{}, 0, fmt.Errorf("%w: bad payload", ErrInvalidCursor)
	}
	fieldRaw, ok := payload[c.Field]
	if !ok {
		return Value{}, 0, fmt.Errorf("%w: missing %q", ErrInvalidCursor, c.Field)
	}
	idRaw, ok := payload["id"]
	if !ok {
		return Value{}, 0, fmt.Errorf("%w: missing id", ErrInvalidCursor)
	}

	var id int64
	if err := json.Unmarshal(idRaw, &id); err != nil {
		return Value{}, 0, fmt.Errorf("%w: bad id", ErrInvalidCursor)
	}

	v, err := decodeValue(fieldRaw)
	if err != nil {
		return Value{}, 0, err
	}
	return v, id, nil
}

// decodeValue maps a raw JSON value back onto the tagged union. JSON
// strings that parse as RFC 3339 timestamps decode as KindTime, matching
// how Encode serialized them.
func decodeValue(raw json.RawMessage) (Value, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if t, perr := time.Parse(time.RFC3339Nano, s); perr == nil {
			return TimeValue(t), nil
		}
		return StringValue(s), nil
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return IntValue(n), nil
	}
	return Value{}, fmt.Errorf("%w: unsupported value type", ErrInvalidCursor)
}
