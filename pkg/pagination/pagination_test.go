package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(-3); got != DefaultLimit {
		t.Fatalf("expected default limit for negatives, got %d", got)
	}
	if got := NormalizeLimit(1000); got != MaxLimit {
		t.Fatalf("expected max cap, got %d", got)
	}
	if got := LimitWithBuffer(10); got != 11 {
		t.Fatalf("expected buffered limit 11, got %d", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	id := uuid.New()

	encoded := EncodeCursor(Cursor{CreatedAt: now, ID: id})
	decoded, err := ParseCursor(encoded)
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if decoded == nil {
		t.Fatal("expected cursor")
	}
	if !decoded.CreatedAt.Equal(now) || decoded.ID != id {
		t.Fatalf("cursor mismatch: %+v", decoded)
	}
}

func TestParseCursorEmptyAndInvalid(t *testing.T) {
	cursor, err := ParseCursor("   ")
	if err != nil || cursor != nil {
		t.Fatalf("expected nil cursor for blank input, got %v %v", cursor, err)
	}
	if _, err := ParseCursor("not-base64!!"); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := ParseCursor("aGVsbG8="); err == nil {
		t.Fatal("expected format error")
	}
}
