// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a spend was paid.
type PaymentMethod string

const (
	PaymentMethodCard          PaymentMethod = "card"
	PaymentMethodCash          PaymentMethod = "cash"
	PaymentMethodBankTransfer  PaymentMethod = "bank-transfer"
	PaymentMethodDigitalWallet PaymentMethod = "digital-wallet"
)

// PaymentMethods lists every accepted payment method in display order.
var PaymentMethods = []PaymentMethod{
	PaymentMethodCard,
	PaymentMethodCash,
	PaymentMethodBankTransfer,
	PaymentMethodDigitalWallet,
}

// IsValid reports whether the payment method is one of the accepted values.
func (p PaymentMethod) IsValid() bool {
	for _, m := range PaymentMethods {
		if p == m {
			return true
		}
	}
	return false
}

// Spend represents a single spending record.
type Spend struct {
	ID            uuid.UUID
	Amount        decimal.Decimal
	Description   string
	CategoryID    uuid.UUID
	Category      *Category // Loaded with the spend, nil when not preloaded
	PaymentMethod PaymentMethod
	Date          time.Time
	Notes         string
	Owner         Owner
	UpdatedByID   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time // Soft-delete support
}

// NewSpend creates a new Spend owned by the given user.
func NewSpend(
	amount decimal.Decimal,
	description string,
	categoryID uuid.UUID,
	paymentMethod PaymentMethod,
	date time.Time,
	notes string,
	createdBy string,
) *Spend {
	now := time.Now().UTC()

	return &Spend{
		ID:            uuid.New(),
		Amount:        amount,
		Description:   description,
		CategoryID:    categoryID,
		PaymentMethod: paymentMethod,
		Date:          date,
		Notes:         notes,
		Owner:         UserOwner(createdBy),
		UpdatedByID:   createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Touch records a modification by the given user.
func (s *Spend) Touch(userID string, at time.Time) {
	s.UpdatedByID = userID
	s.UpdatedAt = at
}

// SpendFilter narrows a spend listing. Nil fields are ignored.
type SpendFilter struct {
	CategoryID    *uuid.UUID
	PaymentMethod *PaymentMethod
	From          *time.Time
	To            *time.Time
}
