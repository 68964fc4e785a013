package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{NotFound("gone"), KindNotFound},
		{Validation("bad"), KindValidation},
		{Conflict("dup"), KindConflict},
		{Forbidden("no"), KindForbidden},
		{Unauthenticated("who"), KindUnauthenticated},
		{Internal("boom", errors.New("cause")), KindInternal},
		{errors.New("plain"), KindInternal},
		{fmt.Errorf("wrapped: %w", NotFound("gone")), KindNotFound},
	}

	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Errorf("KindOf(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Internal("wrapper", cause)
	if !errors.Is(err, cause) {
		t.Error("Internal should wrap its cause")
	}
	if err.Error() != "wrapper: root cause" {
		t.Errorf("Error() = %q", err.Error())
	}
}
