package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOfWrapped(t *testing.T) {
	base := NotFound("Complaint not found")
	wrapped := fmt.Errorf("assign: %w", base)

	if got := KindOf(wrapped); got != KindNotFound {
		t.Errorf("expected KindNotFound, got %v", got)
	}
	if !Is(wrapped, KindNotFound) {
		t.Error("expected Is to match through wrapping")
	}
	if Is(nil, KindNotFound) {
		t.Error("nil must not match any kind")
	}
	if got := KindOf(errors.New("boom")); got != KindInternal {
		t.Errorf("plain errors must be internal, got %v", got)
	}
}

func TestStatusAndLabel(t *testing.T) {
	tests := []struct {
		kind   Kind
		status int
		label  string
	}{
		{KindValidation, http.StatusBadRequest, "Validation error"},
		{KindUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{KindForbidden, http.StatusForbidden, "Forbidden"},
		{KindNotFound, http.StatusNotFound, "Not found"},
		{KindConflict, http.StatusConflict, "Conflict"},
		{KindInternal, http.StatusInternalServerError, "Internal error"},
	}
	for _, tt := range tests {
		if got := tt.kind.Status(); got != tt.status {
			t.Errorf("kind %d: expected status %d, got %d", tt.kind, tt.status, got)
		}
		if got := tt.kind.Label(); got != tt.label {
			t.Errorf("kind %d: expected label %q, got %q", tt.kind, tt.label, got)
		}
	}
}

func TestPublicMessageHidesRawErrors(t *testing.T) {
	raw := errors.New(`pq: duplicate key value violates unique constraint "reporters_email_key"`)
	if got := PublicMessage(raw); got != "Unexpected server error" {
		t.Errorf("raw error leaked: %q", got)
	}
	c := Conflict("Email already registered", raw)
	if got := PublicMessage(fmt.Errorf("register: %w", c)); got != "Email already registered" {
		t.Errorf("unexpected message %q", got)
	}
	if !errors.Is(c, raw) {
		t.Error("cause must stay reachable through Unwrap")
	}
}
