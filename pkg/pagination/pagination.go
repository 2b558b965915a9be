// Package pagination implements the keyset cursor used by the order
// listing: an opaque base64 token carrying the last row's creation time
// and id, so pages stay stable while new orders arrive at the head.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 25
	MaxLimit     = 100

	cursorSeparator = "|"
)

// Params carries the caller's page size and the cursor from the
// previous page, if any.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor is the decoded keyset position. Rows strictly older than
// (CreatedAt, ID) belong to the next page.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// NormalizeLimit clamps the requested page size into [1, MaxLimit],
// substituting DefaultLimit for zero and negatives.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

// LimitWithBuffer adds one row to the normalized limit; the extra row
// signals whether another page exists without a count query.
func LimitWithBuffer(limit int) int {
	return NormalizeLimit(limit) + 1
}

// EncodeCursor serializes the position as base64("createdAt|id").
// CreatedAt is rendered in UTC RFC3339Nano so the token round-trips
// sub-second precision.
func EncodeCursor(cursor Cursor) string {
	token := cursor.CreatedAt.UTC().Format(time.RFC3339Nano) + cursorSeparator + cursor.ID.String()
	return base64.StdEncoding.EncodeToString([]byte(token))
}

// ParseCursor reverses EncodeCursor. A blank value means first page and
// yields a nil cursor without error; anything else malformed is
// rejected.
func ParseCursor(value string) (*Cursor, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("cursor is not valid base64: %w", err)
	}

	tsPart, idPart, found := strings.Cut(string(raw), cursorSeparator)
	if !found {
		return nil, fmt.Errorf("cursor is missing its separator")
	}

	createdAt, err := time.Parse(time.RFC3339Nano, tsPart)
	if err != nil {
		return nil, fmt.Errorf("cursor timestamp: %w", err)
	}
	id, err := uuid.Parse(idPart)
	if err != nil {
		return nil, fmt.Errorf("cursor id: %w", err)
	}

	return &Cursor{CreatedAt: createdAt, ID: id}, nil
}
