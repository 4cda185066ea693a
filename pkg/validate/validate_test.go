package validate_test

import (
	"testing"

	"github.com/epicurean/epicurean/pkg/validate"
)

type checkoutInput struct {
	PaymentMethod   string  `json:"paymentMethod"   validate:"required,in=card,cash,wallet"`
	DeliveryOption  string  `json:"deliveryOption"  validate:"nullable,in=standard,express,scheduled"`
	DeliveryAddress string  `json:"deliveryAddress" validate:"required,min=5"`
	Email           string  `json:"email"           validate:"required,email"`
	Quantity        int     `json:"quantity"        validate:"required,gte=1,lte=50"`
	Tip             float64 `json:"tip"             validate:"nullable,numeric,max=100"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(checkoutInput{
		PaymentMethod:   "card",
		DeliveryOption:  "", // nullable, allowed to be empty
		DeliveryAddress: "1 Analytical Way",
		Email:           "ada@example.com",
		Quantity:        2,
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(checkoutInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["paymentMethod"]; !ok {
		t.Error("expected paymentMethod to be required")
	}
	if _, ok := errs["deliveryAddress"]; !ok {
		t.Error("expected deliveryAddress to be required")
	}
}

func TestRequiredMessage(t *testing.T) {
	type in struct {
		City string `json:"city" validate:"required"`
	}
	errs := validate.Struct(in{})
	if got := errs["city"]; got != "The city field is required." {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	if errs := validate.Struct(in{Email: "not-an-email"}); len(errs) == 0 {
		t.Error("expected email validation error")
	}
	if errs := validate.Struct(in{Email: "valid@example.com"}); validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Option string `json:"deliveryOption" validate:"required,in=standard,express,scheduled"`
	}
	if errs := validate.Struct(in{Option: "teleport"}); len(errs) == 0 {
		t.Error("expected in rule to reject unknown option")
	}
	if errs := validate.Struct(in{Option: "express"}); validate.HasErrors(errs) {
		t.Errorf("expected express to pass, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Quantity int `json:"quantity" validate:"required,gte=1,lte=50"`
	}
	if errs := validate.Struct(in{Quantity: 51}); !validate.HasErrors(errs) {
		t.Error("expected quantity > 50 to fail")
	}
	if errs := validate.Struct(in{Quantity: 3}); validate.HasErrors(errs) {
		t.Errorf("expected quantity 3 to pass, got: %v", errs)
	}
}

func TestMinOnStrings(t *testing.T) {
	type in struct {
		Address string `json:"deliveryAddress" validate:"required,min=5"`
	}
	if errs := validate.Struct(in{Address: "abc"}); !validate.HasErrors(errs) {
		t.Error("expected short address to fail")
	}
	if errs := validate.Struct(in{Address: "1 Analytical Way"}); validate.HasErrors(errs) {
		t.Errorf("expected long address to pass, got: %v", errs)
	}
}

func TestNullableSkipsRemainingRules(t *testing.T) {
	type in struct {
		Instructions string `json:"deliveryInstructions" validate:"nullable,min=10"`
	}
	if errs := validate.Struct(in{}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable field to pass, got: %v", errs)
	}
	if errs := validate.Struct(in{Instructions: "short"}); !validate.HasErrors(errs) {
		t.Error("expected non-empty nullable field to hit min rule")
	}
}

func TestPointerFields(t *testing.T) {
	type in struct {
		Quantity *int `json:"quantity" validate:"required"`
	}
	if errs := validate.Struct(in{}); !validate.HasErrors(errs) {
		t.Error("expected nil pointer to fail required")
	}
	zero := 0
	if errs := validate.Struct(in{Quantity: &zero}); validate.HasErrors(errs) {
		t.Errorf("expected non-nil pointer to pass required, got: %v", errs)
	}
}
