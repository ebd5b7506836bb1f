package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{NewValidation("bad", nil), http.StatusBadRequest},
		{NewConflict("dup", nil), http.StatusConflict},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{New(Unauthorized, "no token", nil), http.StatusUnauthorized},
		{New(Forbidden, "not yours", nil), http.StatusForbidden},
		{NewNotFound("gone"), http.StatusNotFound},
		{NewStorage("db", errors.New("boom")), http.StatusInternalServerError},
		{NewConfig("cfg", nil), http.StatusInternalServerError},
		{NewInternal("oops", nil), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.err.StatusCode(); got != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.err.Kind, got, tc.want)
		}
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	base := NewNotFound("task not found")
	wrapped := fmt.Errorf("get task: %w", base)
	if !IsNotFound(wrapped) {
		t.Fatal("expected wrapped error to be not found")
	}
	if IsConflict(wrapped) {
		t.Fatal("did not expect conflict")
	}
	if As(wrapped) != base {
		t.Fatal("As should return the original AppError")
	}
}

func TestAsWrapsForeignErrors(t *testing.T) {
	cause := errors.New("socket closed")
	ae := As(cause)
	if ae.Kind != Internal {
		t.Fatalf("kind = %v, want internal", ae.Kind)
	}
	if !errors.Is(ae, cause) {
		t.Fatal("expected cause to stay in the chain")
	}
}

func TestErrorIncludesCause(t *testing.T) {
	err := NewStorage("failed to create task", errors.New("connection refused"))
	if got := err.Error(); got != "failed to create task: connection refused" {
		t.Fatalf("Error() = %q", got)
	}
	if got := NewNotFound("task not found").Error(); got != "task not found" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestNilIsNoKind(t *testing.T) {
	if IsNotFound(nil) || IsInvalidCredentials(nil) || IsStorage(nil) || IsValidation(nil) {
		t.Fatal("nil must not match any kind")
	}
}
