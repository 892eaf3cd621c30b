package catalog

import (
	"github.com/google/uuid"
)

// ItemRequest is a product-quantity pair for an availability check
type ItemRequest struct {
	ProductID uuid.UUID
	Quantity  int64
}

// ItemAvailability reports availability for a single requested product
type ItemAvailability struct {
	ProductID uuid.UUID `json:"productId"`
	SKU       string    `json:"sku"`
	Requested int64     `json:"requested"`
	Available int64     `json:"available"`
	HasStock  bool      `json:"hasStock"`
}

// AvailabilityReport aggregates per-item availability for a set of requests
type AvailabilityReport struct {
	Available bool               `json:"available"`
	Items     []ItemAvailability `json:"items"`
}

// AvailabilityService answers read-only stock availability questions.
// It never mutates product state; reservation happens through the
// Product aggregate itself.
type AvailabilityService struct{}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService() *AvailabilityService {
	return &AvailabilityService{}
}

// Check evaluates requested quantities against the given products.
// Products missing from the map are reported as unavailable.
func (s *AvailabilityService) Check(requests []ItemRequest, products map[uuid.UUID]*Product) AvailabilityReport {
	report := AvailabilityReport{
		Available: true,
		Items:     make([]ItemAvailability, 0, len(requests)),
	}

	for _, req := range requests {
		product, ok := products[req.ProductID]
		if !ok {
			report.Available = false
			report.Items = append(report.Items, ItemAvailability{
				ProductID: req.ProductID,
				Requested: req.Quantity,
				Available: 0,
				HasStock:  false,
			})
			continue
		}

		available := product.Available()
		item := ItemAvailability{
			ProductID: product.ID,
			SKU:       product.SKU,
			Requested: req.Quantity,
			Available: available,
			HasStock:  available >= req.Quantity,
		}
		if !item.HasStock {
			report.Available = false
		}
		report.Items = append(report.Items, item)
	}

	return report
}
