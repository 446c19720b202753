package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", NotFound("task not found"), KindNotFound},
		{"wrapped forbidden", fmt.Errorf("delete: %w", Forbidden("nope")), KindForbidden},
		{"foreign error", errors.New("boom"), KindInternal},
		{"internal", Internal("db down", errors.New("dial tcp")), KindInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Fatalf("KindOf=%s want=%s", got, tc.want)
			}
		})
	}
}

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("wrap: %w", Conflict("User already exists"))
	if !errors.Is(err, Conflict("")) {
		t.Fatalf("expected errors.Is to match conflict kind")
	}
	if errors.Is(err, NotFound("")) {
		t.Fatalf("conflict must not match not found")
	}
}

func TestMessageOfHidesInternalCause(t *testing.T) {
	err := Internal("query tasks", errors.New("pq: password authentication failed"))
	if got := MessageOf(err); got != "Server error" {
		t.Fatalf("MessageOf=%q", got)
	}
	if got := MessageOf(InvalidCredential("Invalid credentials")); got != "Invalid credentials" {
		t.Fatalf("MessageOf=%q", got)
	}
}
