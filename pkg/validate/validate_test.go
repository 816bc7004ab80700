package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/bistro/pkg/validate"
)

type menuInput struct {
	Name     string  `json:"name"     validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price"    validate:"required,gte=0"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(menuInput{Name: "French Onion Soup", Category: "soup", Price: 8.5})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(menuInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["category"]; !ok {
		t.Error("expected category to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestGteRule(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"gte=0"`
	}
	if errs := validate.Struct(in{Price: -1}); !validate.HasErrors(errs) {
		t.Error("expected negative price to fail")
	}
	if errs := validate.Struct(in{Price: 0}); validate.HasErrors(errs) {
		t.Errorf("expected zero price to pass gte=0, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Role string `json:"role" validate:"required,in=customer,admin"`
	}
	if errs := validate.Struct(in{Role: "moderator"}); !validate.HasErrors(errs) {
		t.Error("expected unknown role to fail")
	}
	if errs := validate.Struct(in{Role: "admin"}); validate.HasErrors(errs) {
		t.Errorf("expected admin role to pass, got: %v", errs)
	}
}
