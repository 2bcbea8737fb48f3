package pagination

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"
)

func TestRoundTrip(t *testing.T) {
	codec := Codec{Field: "created_at"}

	cases := []struct {
		name  string
		value Value
		id    int64
	}{
		{"string", StringValue("acme supplies"), 7},
		{"string empty", StringValue(""), 1},
		{"int", IntValue(42), 9000},
		{"int negative", IntValue(-3), 1},
		{"timestamp", TimeValue(time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)), 58},
		{"timestamp subsecond", TimeValue(time.Date(2025, 3, 14, 9, 26, 53, 123456789, time.UTC)), 59},
		{"timestamp non-utc", TimeValue(time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("EET", 2*3600))), 60},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token := codec.Encode(tc.value, tc.id)
			v, id, err := codec.Decode(token)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !v.Equal(tc.value) {
				t.Errorf("value mismatch: got %+v want %+v", v, tc.value)
			}
			if id != tc.id {
				t.Errorf("id mismatch: got %d want %d", id, tc.id)
			}
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	codec := Codec{Field: "created_at"}
	v := TimeValue(time.Date(2025, 3, 14, 9, 26, 53, 500000000, time.UTC))

	a := codec.Encode(v, 12)
	b := codec.Encode(v, 12)
	if a != b {
		t.Errorf("encode not deterministic: %q vs %q", a, b)
	}
}

func TestTimestampPrecisionNormalized(t *testing.T) {
	codec := Codec{Field: "created_at"}
	// Same instant, different sub-second representation and zone.
	utc := time.Date(2025, 3, 14, 9, 26, 53, 100000000, time.UTC)
	eet := utc.In(time.FixedZone("EET", 2*3600))

	if a, b := codec.Encode(TimeValue(utc), 1), codec.Encode(TimeValue(eet), 1); a != b {
		t.Errorf("same instant encoded differently: %q vs %q", a, b)
	}
}

func TestDecodeInvalid(t *testing.T) {
	codec := Codec{Field: "created_at"}

	missingID := base64.RawURLEncoding.EncodeToString([]byte(`{"created_at":"2025-01-01T00:00:00Z"}`))
	missingField := base64.RawURLEncoding.EncodeToString([]byte(`{"id":5}`))
	notObject := base64.RawURLEncoding.EncodeToString([]byte(`[1,2,3]`))
	badID := base64.RawURLEncoding.EncodeToString([]byte(`{"created_at":"2025-01-01T00:00:00Z","id":"x"}`))
	badValue := base64.RawURLEncoding.EncodeToString([]byte(`{"created_at":{"a":1},"id":5}`))

	cases := []struct {
		name  string
		token string
	}{
		{"not base64", "not-valid-base64!!"},
		{"not json", base64.RawURLEncoding.EncodeToString([]byte("garbage"))},
		{"not an object", notObject},
		{"missing id", missingID},
		{"missing field", missingField},
		{"non-integer id", badID},
		{"unsupported value", badValue},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := codec.Decode(tc.token)
			if !errors.Is(err, ErrInvalidCursor) {
				t.Fatalf("want ErrInvalidCursor, got %v", err)
			}
		})
	}
}

func TestDecodeForeignField(t *testing.T) {
	// A token minted for one ordering field must not decode under another.
	token := Codec{Field: "created_at"}.Encode(IntValue(10), 3)
	if _, _, err := (Codec{Field: "name"}).Decode(token); !errors.Is(err, ErrInvalidCursor) {
		t.Fatalf("want ErrInvalidCursor, got %v", err)
	}
}
