// Package canonicaljson implements RFC 8785 (JCS) JSON canonicalization.
// Cursor tokens are canonicalized before encoding so identical seek
// positions always produce byte-identical tokens.
package canonicaljson

import (
	"fmt"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
	"github.com/goccy/go-json"
)

// Canonicalize takes a Go value, marshals it to JSON, then applies RFC 8785
// JCS canonicalization and returns the canonical UTF-8 bytes.
func Canonicalize(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonicaljson: marshal: %w", err)
	}
	out, err := jsoncanonicalizer.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("canonicaljson: transform: %w", err)
	}
	return out, nil
}
