package cart

import (
	"dikra-store/internal/catalog"

	"github.com/shopspring/decimal"
)

// LineItem is one product/color entry in the cart.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Color     catalog.Color   `json:"color"`
	View      int             `json:"view"`
	Quantity  int             `json:"quantity"`
}

// Identity is the merge key of a line item. The view is deliberately not part
// of it: adding the same product and color from another view merges into the
// existing line and moves its recorded view to the latest one.
type Identity struct {
	ProductID string
	Color     catalog.Color
}

func (i LineItem) Identity() Identity {
	return Identity{ProductID: i.ProductID, Color: i.Color}
}

func (i LineItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
