package services

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"vellashop/internal/domain"
)

// The shareable cart token is the minimized line list as JSON, wrapped in
// URL-safe base64 and carried in the "cart" query parameter. Only product id,
// quantity and variant go into the token; display fields are re-resolved from
// the catalog on decode.

// EncodeCartToken serializes cart lines into a share token.
func EncodeCartToken(lines []domain.CartLine) string {
	snapshot := make([]domain.SnapshotLine, 0, len(lines))
	for _, l := range lines {
		snapshot = append(snapshot, domain.SnapshotLine{ID: l.ID, ProductID: l.Product.ID, Quantity: l.Quantity, Variant: l.Variant})
	}
	b, _ := json.Marshal(snapshot)
	return base64.URLEncoding.EncodeToString(b)
}

// DecodeCartToken parses a share token back into snapshot lines. Any
// malformed token yields an error; callers treat that as "no shared cart"
// and must not surface it.
func DecodeCartToken(token string) ([]domain.SnapshotLine, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		// tolerate tokens minted by older clients with standard base64
		raw, err = base64.StdEncoding.DecodeString(token)
		if err != nil {
			return nil, fmt.Errorf("decode cart token: %w", err)
		}
	}
	var snapshot []domain.SnapshotLine
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("parse cart token: %w", err)
	}
	return snapshot, nil
}

// ShareURL embeds a token in a shareable storefront URL.
func ShareURL(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/?cart=" + url.QueryEscape(token)
}
