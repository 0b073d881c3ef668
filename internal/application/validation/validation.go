// Package validation checks and normalizes request fields before they reach persistence.
// Every failure is a domainerror.KindValidation error whose message names the field.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

const (
	// MaxNameLength is the maximum allowed length for category and goal names.
	MaxNameLength = 50
	// MaxIconLength is the maximum allowed length for icon names.
	MaxIconLength = 50
	// MaxDescriptionLength is the maximum allowed length for spend and contribution descriptions.
	MaxDescriptionLength = 255
	// MaxNotesLength is the maximum allowed length for spend notes.
	MaxNotesLength = 1000
)

// hexColorRegex accepts #RGB and #RRGGBB.
var hexColorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

const dateOnlyLayout = "2006-01-02"

// NonEmptyString trims value and requires at least one character and at most
// maxLen runes. field is the display name used in messages, e.g. "Name".
func NonEmptyString(value string, maxLen int, field string, code domainerror.Code) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", domainerror.Validation(code, field+" must be a non-empty string")
	}
	if maxLen > 0 && len([]rune(trimmed)) > maxLen {
		return "", domainerror.Validation(code, fmt.Sprintf("%s must not exceed %d characters", field, maxLen))
	}
	return trimmed, nil
}

// OptionalString trims value and enforces maxLen. Empty input is allowed.
func OptionalString(value string, maxLen int, field string, code domainerror.Code) (string, error) {
	trimmed := strings.TrimSpace(value)
	if maxLen > 0 && len([]rune(trimmed)) > maxLen {
		return "", domainerror.Validation(code, fmt.Sprintf("%s must not exceed %d characters", field, maxLen))
	}
	return trimmed, nil
}

// PositiveAmount converts a JSON number to a money amount rounded to cents.
// Amounts that are not positive after rounding are rejected.
func PositiveAmount(value float64, field string, code domainerror.Code) (decimal.Decimal, error) {
	amount := decimal.NewFromFloat(value).Round(2)
	if value <= 0 || !amount.IsPositive() {
		return decimal.Zero, domainerror.Validation(code, AmountMessage(field))
	}
	return amount, nil
}

// NonNegativeAmount is PositiveAmount that also accepts zero.
func NonNegativeAmount(value float64, field string, code domainerror.Code) (decimal.Decimal, error) {
	amount := decimal.NewFromFloat(value).Round(2)
	if value < 0 || amount.IsNegative() {
		return decimal.Zero, domainerror.Validation(code, field+" must be a non-negative number")
	}
	return amount, nil
}

// AmountMessage is the message for an amount field that is missing, not a number or not positive.
func AmountMessage(field string) string {
	return field + " must be a positive number"
}

// HexColor validates a #RGB or #RRGGBB color.
func HexColor(value string, code domainerror.Code) (string, error) {
	trimmed := strings.TrimSpace(value)
	if !hexColorRegex.MatchString(trimmed) {
		return "", domainerror.Validation(code, domainerror.MsgInvalidColor)
	}
	return trimmed, nil
}

// PaymentMethod validates a payment method against the closed set.
func PaymentMethod(value string, code domainerror.Code) (entity.PaymentMethod, error) {
	method := entity.PaymentMethod(strings.TrimSpace(value))
	if !method.IsValid() {
		return "", domainerror.Validation(code, PaymentMethodMessage())
	}
	return method, nil
}

// PaymentMethodMessage lists the accepted payment methods.
func PaymentMethodMessage() string {
	names := make([]string, len(entity.PaymentMethods))
	for i, m := range entity.PaymentMethods {
		names[i] = string(m)
	}
	return "Invalid payment method. Must be one of: " + strings.Join(names, ", ")
}

// ParseDate accepts RFC 3339 timestamps and YYYY-MM-DD dates. Results are UTC.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(dateOnlyLayout, value); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// Date parses a date field, failing with a validation error.
func Date(value, field string, code domainerror.Code) (time.Time, error) {
	t, ok := ParseDate(value)
	if !ok {
		return time.Time{}, domainerror.Validation(code, "Invalid "+strings.ToLower(field))
	}
	return t, nil
}

// FutureDate parses a date field that must be strictly later than now.
func FutureDate(value string, now time.Time, code domainerror.Code) (time.Time, error) {
	t, ok := ParseDate(value)
	if !ok || !t.After(now) {
		return time.Time{}, domainerror.Validation(code, "Target Date must be a valid date and in the future.")
	}
	return t, nil
}

// ID parses a resource ID taken from the query string or path.
// resource is the display name, e.g. "Category".
func ID(raw, resource string, requiredCode, invalidCode domainerror.Code) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, domainerror.Validation(requiredCode, resource+" ID is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domainerror.Validation(invalidCode, fmt.Sprintf("Invalid %s ID format", strings.ToLower(resource)))
	}
	return id, nil
}

// MissingFields builds the message for absent required fields.
func MissingFields(fields ...string) string {
	switch len(fields) {
	case 0:
		return "Missing required fields"
	case 1:
		return "Missing required field: " + fields[0] + " is required"
	case 2:
		return "Missing required fields: " + fields[0] + " and " + fields[1] + " are required"
	default:
		return "Missing required fields: " + strings.Join(fields[:len(fields)-1], ", ") +
			", and " + fields[len(fields)-1] + " are required"
	}
}
