package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Column widths of the stored decimals. Both stores accept exactly these values.
var (
	// NUMERIC(14, 2)
	moneyColumn = numericColumn{digits: 14, scale: 2}
	// NUMERIC(16, 2)
	mortgageAmountColumn = numericColumn{digits: 16, scale: 2}
	// NUMERIC(9, 4)
	percentColumn = numericColumn{digits: 9, scale: 4}
)

type numericColumn struct {
	digits int32
	scale  int32
}

// check returns a ValidationError when value does not fit the column unchanged
func (c numericColumn) check(field string, value decimal.Decimal) error {
	if !value.Equal(value.Truncate(c.scale)) {
		return invalid(field, fmt.Sprintf("must have at most %d decimal places", c.scale))
	}
	limit := decimal.New(1, c.digits-c.scale)
	if value.Abs().GreaterThanOrEqual(limit) {
		return invalid(field, fmt.Sprintf("must be less than %s", limit.String()))
	}
	return nil
}
