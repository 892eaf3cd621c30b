package sales

import (
	"github.com/shopspring/decimal"

	"github.com/ventas/backend/internal/domain/shared"
)

// Prices are tax-inclusive: the 18% IGV is extracted from totals, never
// added on top.
var (
	taxRate    = decimal.NewFromFloat(0.18)
	taxDivisor = decimal.NewFromInt(1).Add(taxRate) // 1.18
	oneHundred = decimal.NewFromInt(100)
)

// LineInput is one line of a pricing calculation
type LineInput struct {
	UnitPrice   decimal.Decimal
	Quantity    int64
	DiscountPct decimal.Decimal
}

// Totals holds the computed totals of a sale
type Totals struct {
	Subtotal decimal.Decimal
	Total    decimal.Decimal
	Tax      decimal.Decimal
}

// LineSubtotal computes unitPrice * quantity * (1 - discountPct/100).
// Quantity must be a positive integer and discountPct within [0,100].
func LineSubtotal(unitPrice decimal.Decimal, quantity int64, discountPct decimal.Decimal) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, shared.NewDomainError("INVALID_INPUT", "Quantity must be a positive integer")
	}
	if unitPrice.IsNegative() {
		return decimal.Zero, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}
	if discountPct.IsNegative() || discountPct.GreaterThan(oneHundred) {
		return decimal.Zero, shared.NewDomainError("INVALID_INPUT", "Discount percentage must be between 0 and 100")
	}

	factor := decimal.NewFromInt(1).Sub(discountPct.Div(oneHundred))
	return unitPrice.Mul(decimal.NewFromInt(quantity)).Mul(factor), nil
}

// OrderTotals computes the totals for a set of lines with an absolute
// order-level discount and a shipping cost.
//
// total = subtotal - discount + shippingCost. The total is deliberately
// not clamped at zero: a discount larger than subtotal plus shipping
// yields a negative total that the caller must decide how to present.
// tax = total - total/1.18, an extraction from the tax-inclusive total.
func OrderTotals(lines []LineInput, discount, shippingCost decimal.Decimal) (Totals, error) {
	if discount.IsNegative() {
		return Totals{}, shared.NewDomainError("INVALID_INPUT", "Discount cannot be negative")
	}
	if shippingCost.IsNegative() {
		return Totals{}, shared.NewDomainError("INVALID_INPUT", "Shipping cost cannot be negative")
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		lineSubtotal, err := LineSubtotal(line.UnitPrice, line.Quantity, line.DiscountPct)
		if err != nil {
			return Totals{}, err
		}
		subtotal = subtotal.Add(lineSubtotal)
	}

	total := subtotal.Sub(discount).Add(shippingCost)

	return Totals{
		Subtotal: subtotal,
		Total:    total,
		Tax:      ExtractTax(total),
	}, nil
}

// ExtractTax returns the IGV portion contained in a tax-inclusive amount
func ExtractTax(total decimal.Decimal) decimal.Decimal {
	return total.Sub(total.Div(taxDivisor))
}
