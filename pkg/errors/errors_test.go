package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code   Code
		status int
	}{
		{CodeStockInsufficient, http.StatusConflict},
		{CodeOrderNotFound, http.StatusNotFound},
		{CodeOrderMemberNotMatched, http.StatusForbidden},
		{CodeOrderNotCompleted, http.StatusUnprocessableEntity},
		{CodeOrderAlreadyCanceled, http.StatusConflict},
		{CodeDeliveryNotFoundByLine, http.StatusNotFound},
		{CodeAlreadyWrote, http.StatusConflict},
		{CodeGateway, http.StatusBadGateway},
	}
	for _, tc := range tests {
		meta := MetadataFor(tc.code)
		if meta.HTTPStatus != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.code, tc.status, meta.HTTPStatus)
		}
		if meta.PublicMessage == "" {
			t.Fatalf("%s: missing public message", tc.code)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestGatewayIsRetryable(t *testing.T) {
	if !MetadataFor(CodeGateway).Retryable {
		t.Fatal("gateway failures should be marked retryable")
	}
	if MetadataFor(CodeStockInsufficient).Retryable {
		t.Fatal("stock failures are not retryable")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("socket closed")
	err := Wrap(CodeGateway, cause, "ready call failed")

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to survive errors.Is")
	}
	typed := As(fmt.Errorf("outer: %w", err))
	if typed == nil || typed.Code() != CodeGateway {
		t.Fatalf("expected typed gateway error, got %v", typed)
	}
}

func TestIsCode(t *testing.T) {
	err := New(CodeOrderAlreadyCanceled, "order already canceled")
	if !IsCode(err, CodeOrderAlreadyCanceled) {
		t.Fatal("expected IsCode match")
	}
	if IsCode(err, CodeOrderNotFound) {
		t.Fatal("unexpected IsCode match")
	}
	if IsCode(errors.New("plain"), CodeOrderNotFound) {
		t.Fatal("plain errors carry no code")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeStockInsufficient, "stock insufficient").
		WithDetails(map[string]any{"requested": 7, "available": 3})
	if err.Details() == nil {
		t.Fatal("expected details to be attached")
	}
}
