package dto

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

type samplePayload struct {
	Title string `validate:"required"`
	Year  int    `validate:"gte=1900"`
	Kind  string `validate:"oneof=journal conference"`
}

func TestHandleValidationErrorFieldMessages(t *testing.T) {
	v := validator.New()
	err := v.Struct(samplePayload{Year: 1500, Kind: "pamphlet"})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	detail := HandleValidationError(err)
	if detail.Code != ErrorCodeValidationFailed {
		t.Errorf("code = %q, want %q", detail.Code, ErrorCodeValidationFailed)
	}

	fields, ok := detail.Details.([]FieldError)
	if !ok {
		t.Fatalf("details type = %T, want []FieldError", detail.Details)
	}
	if len(fields) != 3 {
		t.Fatalf("got %d field errors, want 3", len(fields))
	}

	messages := map[string]string{}
	for _, fe := range fields {
		messages[fe.Field] = fe.Message
	}
	if messages["Title"] != "Title is required" {
		t.Errorf("Title message = %q", messages["Title"])
	}
	if messages["Year"] != "Year must be at least 1900" {
		t.Errorf("Year message = %q", messages["Year"])
	}
	if messages["Kind"] != "Kind must be one of: journal conference" {
		t.Errorf("Kind message = %q", messages["Kind"])
	}
}

func TestHandleValidationErrorNonValidatorError(t *testing.T) {
	detail := HandleValidationError(errors.New("unexpected EOF"))
	if detail.Code != ErrorCodeValidationFailed {
		t.Errorf("code = %q, want %q", detail.Code, ErrorCodeValidationFailed)
	}
	if detail.Details != "unexpected EOF" {
		t.Errorf("details = %v, want the raw error text", detail.Details)
	}
}
