package domain

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxPropertyNameLength mirrors the width of the property_name column
const MaxPropertyNameLength = 255

// Property represents a property entity in the domain layer.
// Only PurchasePrice feeds into mortgage calculations; the remaining amounts are metadata.
type Property struct {
	ID             uuid.UUID
	Name           string
	PurchasePrice  decimal.Decimal
	RentalIncome   decimal.Decimal // monthly
	RenovationCost decimal.Decimal
	AdminCosts     decimal.Decimal
	ManagementFees decimal.Decimal // monthly
	CreatedAt      time.Time
	UpdatedAt      *time.Time // nil until the first update
}

// Validate ensures the property adheres to domain rules
func (p *Property) Validate() error {
	if p.Name == "" {
		return invalid("property_name", "cannot be empty")
	}
	if utf8.RuneCountInString(p.Name) > MaxPropertyNameLength {
		return invalid("property_name", "must be at most 255 characters")
	}

	if p.PurchasePrice.LessThanOrEqual(decimal.Zero) {
		return invalid("purchase_price", "must be positive")
	}

	if err := moneyColumn.check("purchase_price", p.PurchasePrice); err != nil {
		return err
	}

	nonNegative := []struct {
		field string
		value decimal.Decimal
	}{
		{"rental_income", p.RentalIncome},
		{"renovation_cost", p.RenovationCost},
		{"admin_costs", p.AdminCosts},
		{"management_fees", p.ManagementFees},
	}
	for _, nn := range nonNegative {
		if nn.value.IsNegative() {
			return invalid(nn.field, "must not be negative")
		}
		if err := moneyColumn.check(nn.field, nn.value); err != nil {
			return err
		}
	}

	return nil
}
