package handler

import (
	"strings"
	"testing"
)

func TestValidator_Messages(t *testing.T) {
	v := NewValidator()

	type form struct {
		Email  string  `validate:"required,email"`
		Role   string  `validate:"omitempty,oneof=DEVELOPER ADMIN"`
		Budget float64 `validate:"gte=0"`
	}

	err := v.Validate(&form{Email: "not-an-email", Role: "WIZARD", Budget: -5})
	if err == nil {
		t.Fatalf("expected validation errors")
	}

	msg := err.Error()
	for _, want := range []string{
		"email must be a valid email",
		"role must be one of: DEVELOPER ADMIN",
		"budget must be 0 or more",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}

	if err := v.Validate(&form{Email: "dev@example.com", Role: "DEVELOPER"}); err != nil {
		t.Fatalf("valid form must pass, got %v", err)
	}
}
