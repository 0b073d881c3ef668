package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

const testCode = domainerror.Code("TST-010001")

func requireValidation(t *testing.T, err error, message string) {
	t.Helper()
	de, ok := domainerror.As(err)
	require.True(t, ok, "expected DomainError, got %v", err)
	assert.Equal(t, domainerror.KindValidation, de.Kind)
	assert.Equal(t, testCode, de.Code)
	assert.Equal(t, message, de.Message)
}

func TestNonEmptyString(t *testing.T) {
	got, err := NonEmptyString("  Groceries ", MaxNameLength, "Name", testCode)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got)

	_, err = NonEmptyString("   ", MaxNameLength, "Name", testCode)
	requireValidation(t, err, "Name must be a non-empty string")

	_, err = NonEmptyString(strings.Repeat("a", MaxNameLength+1), MaxNameLength, "Name", testCode)
	requireValidation(t, err, "Name must not exceed 50 characters")

	got, err = NonEmptyString(strings.Repeat("é", MaxNameLength), MaxNameLength, "Name", testCode)
	require.NoError(t, err)
	assert.Len(t, []rune(got), MaxNameLength)
}

func TestOptionalString(t *testing.T) {
	got, err := OptionalString("  ", MaxNotesLength, "Notes", testCode)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = OptionalString(strings.Repeat("n", MaxNotesLength+1), MaxNotesLength, "Notes", testCode)
	requireValidation(t, err, "Notes must not exceed 1000 characters")
}

func TestPositiveAmount(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
		ok    bool
	}{
		{name: "integer", value: 50, want: "50", ok: true},
		{name: "cents", value: 12.345, want: "12.35", ok: true},
		{name: "zero", value: 0},
		{name: "negative", value: -3},
		{name: "rounds to zero", value: 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PositiveAmount(tt.value, "Amount", testCode)
			if !tt.ok {
				requireValidation(t, err, "Amount must be a positive number")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNonNegativeAmount(t *testing.T) {
	got, err := NonNegativeAmount(0, "Saved amount", testCode)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = NonNegativeAmount(-1, "Saved amount", testCode)
	requireValidation(t, err, "Saved amount must be a non-negative number")
}

func TestHexColor(t *testing.T) {
	for _, valid := range []string{"#ff0000", "#F00", "#6366F1"} {
		got, err := HexColor(valid, testCode)
		require.NoError(t, err, valid)
		assert.Equal(t, valid, got)
	}

	for _, invalid := range []string{"red", "#ff00", "ff0000", "#GGGGGG", ""} {
		_, err := HexColor(invalid, testCode)
		requireValidation(t, err, "Color must be a valid hex color (e.g., #FF0000 or #F00)")
	}
}

func TestPaymentMethod(t *testing.T) {
	got, err := PaymentMethod("bank-transfer", testCode)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentMethodBankTransfer, got)

	_, err = PaymentMethod("cheque", testCode)
	requireValidation(t, err, "Invalid payment method. Must be one of: card, cash, bank-transfer, digital-wallet")
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2025-03-04")
	require.True(t, ok)
	assert.True(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC).Equal(got))

	got, ok = ParseDate("2025-03-04T10:30:00-03:00")
	require.True(t, ok)
	assert.True(t, time.Date(2025, 3, 4, 13, 30, 0, 0, time.UTC).Equal(got))
	assert.Equal(t, time.UTC, got.Location())

	_, ok = ParseDate("04/03/2025")
	assert.False(t, ok)
}

func TestDate(t *testing.T) {
	_, err := Date("yesterday", "Date", testCode)
	requireValidation(t, err, "Invalid date")
}

func TestFutureDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	got, err := FutureDate("2025-06-02", now, testCode)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Day())

	for _, value := range []string{"2025-06-01T12:00:00Z", "2025-05-01", "soon"} {
		_, err := FutureDate(value, now, testCode)
		requireValidation(t, err, "Target Date must be a valid date and in the future.")
	}
}

func TestID(t *testing.T) {
	want := uuid.New()
	got, err := ID(want.String(), "Spend", testCode, testCode)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ID("", "Spend", testCode, testCode)
	requireValidation(t, err, "Spend ID is required")

	_, err = ID("not-a-uuid", "Spend", testCode, testCode)
	requireValidation(t, err, "Invalid spend ID format")
}

func TestMissingFields(t *testing.T) {
	assert.Equal(t, "Missing required fields: name and targetAmount are required", MissingFields("name", "targetAmount"))
	assert.Equal(t, "Missing required fields: name, icon, and color are required", MissingFields("name", "icon", "color"))
	assert.Equal(t, "Missing required field: amount is required", MissingFields("amount"))
}
