package sales

import (
	"github.com/shopspring/decimal"
)

// AggregatedSale is the read-side projection of a parent sale combined
// with all of its linked sales. Items are concatenated and the totals
// fields are summed independently; nothing here touches sale state.
type AggregatedSale struct {
	Items        []SaleItem
	Subtotal     decimal.Decimal
	Discount     decimal.Decimal
	ShippingCost decimal.Decimal
	Total        decimal.Decimal
	Tax          decimal.Decimal
	SaleNumbers  []string
}

// Aggregate combines a parent sale and its linked sales for combined
// receipts and printing.
func Aggregate(parent *Sale, linked []Sale) AggregatedSale {
	result := AggregatedSale{
		Items:        make([]SaleItem, 0, len(parent.Items)),
		Subtotal:     parent.Subtotal,
		Discount:     parent.Discount,
		ShippingCost: parent.ShippingCost,
		Total:        parent.Total,
		Tax:          parent.Tax,
		SaleNumbers:  []string{parent.SaleNumber},
	}
	result.Items = append(result.Items, parent.Items...)

	for idx := range linked {
		child := &linked[idx]
		result.Items = append(result.Items, child.Items...)
		result.Subtotal = result.Subtotal.Add(child.Subtotal)
		result.Discount = result.Discount.Add(child.Discount)
		result.ShippingCost = result.ShippingCost.Add(child.ShippingCost)
		result.Total = result.Total.Add(child.Total)
		result.Tax = result.Tax.Add(child.Tax)
		result.SaleNumbers = append(result.SaleNumbers, child.SaleNumber)
	}

	return result
}
