package peopledatalabs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestNewError(t *testing.T) {
	err := NewError(CodeInvalidEndpoint, "no such endpoint")
	if err.Code != CodeInvalidEndpoint {
		t.Errorf("expected code %s, got %s", CodeInvalidEndpoint, err.Code)
	}
	if err.Message != "no such endpoint" {
		t.Errorf("expected message 'no such endpoint', got %s", err.Message)
	}
}

func TestErrorf(t *testing.T) {
	err := Errorf(CodeUnknownField, "unknown field: %s", "favorite_color")
	if err.Code != CodeUnknownField {
		t.Errorf("expected code %s, got %s", CodeUnknownField, err.Code)
	}
	if err.Message != "unknown field: favorite_color" {
		t.Errorf("expected formatted message, got %s", err.Message)
	}
}

func TestErrorError(t *testing.T) {
	err := NewError(CodeEmptyParameters, "no parameters supplied")
	expected := "empty_parameters: no parameters supplied"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestErrorIs(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"same code", Errorf(CodeRangeViolation, "size: too big"), ErrRangeViolation, true},
		{"different code", Errorf(CodeRangeViolation, "size: too big"), ErrEnumViolation, false},
		{"wrapped", fmt.Errorf("call failed: %w", NewError(CodeTypeMismatch, "x")), ErrTypeMismatch, true},
		{"plain error", errors.New("boom"), ErrTypeMismatch, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(NewError(CodeInvalidConfig, "bad")); got != CodeInvalidConfig {
		t.Errorf("expected %s, got %s", CodeInvalidConfig, got)
	}
	if got := CodeOf(fmt.Errorf("wrap: %w", NewError(CodeUnknownField, "x"))); got != CodeUnknownField {
		t.Errorf("expected %s, got %s", CodeUnknownField, got)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("expected empty code, got %s", got)
	}
	if got := CodeOf(nil); got != "" {
		t.Errorf("expected empty code for nil, got %s", got)
	}
}

func TestWithDetail_DoesNotMutate(t *testing.T) {
	base := NewError(CodeTypeMismatch, "mismatch")
	withField := base.WithDetail("field", "size")

	if base.Details != nil {
		t.Errorf("expected original details to stay nil, got %v", base.Details)
	}
	if withField.Details["field"] != "size" {
		t.Errorf("expected field detail, got %v", withField.Details)
	}

	both := withField.WithDetails(map[string]any{"min": 1, "max": 100})
	if len(withField.Details) != 1 {
		t.Errorf("expected WithDetails to leave receiver unchanged, got %v", withField.Details)
	}
	if len(both.Details) != 3 {
		t.Errorf("expected 3 details, got %v", both.Details)
	}
}

func TestWithDetails_Empty(t *testing.T) {
	base := NewError(CodeTypeMismatch, "mismatch")
	if got := base.WithDetails(nil); got != base {
		t.Error("expected WithDetails(nil) to return the receiver")
	}
}

func TestFieldError(t *testing.T) {
	err := fieldError(CodeRangeViolation, "size", "must be between %d and %d", 1, 100)
	if err.Message != "size: must be between 1 and 100" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Details["field"] != "size" {
		t.Errorf("expected field detail, got %v", err.Details)
	}
}

func TestFromValidationErrors(t *testing.T) {
	type TestStruct struct {
		Email string `validate:"required,email"`
		Age   int    `validate:"gte=0,lte=120"`
	}

	v := validator.New()
	err := v.Struct(TestStruct{Email: "invalid", Age: -1})

	result := fromValidationErrors(CodeInvalidConfig, err)
	if result.Code != CodeInvalidConfig {
		t.Errorf("expected code %s, got %s", CodeInvalidConfig, result.Code)
	}
	if result.Details["Email"] != "must be a valid email address" {
		t.Errorf("expected Email detail, got %v", result.Details["Email"])
	}
	if result.Details["Age"] != "failed gte=0 validation" {
		t.Errorf("expected Age detail, got %v", result.Details["Age"])
	}
}

func TestFromValidationErrors_PlainError(t *testing.T) {
	result := fromValidationErrors(CodeInvalidConfig, errors.New("something failed"))
	if result.Code != CodeInvalidConfig {
		t.Errorf("expected code %s, got %s", CodeInvalidConfig, result.Code)
	}
	if result.Message != "something failed" {
		t.Errorf("expected message passthrough, got %q", result.Message)
	}
}
