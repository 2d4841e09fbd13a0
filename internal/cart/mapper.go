package cart

import (
	"dikra-store/internal/catalog"

	"github.com/shopspring/decimal"
)

// Line is a cart row ready for display.
type Line struct {
	ProductID string           `json:"product_id"`
	Name      string           `json:"name"`
	Color     catalog.Color    `json:"color"`
	ColorName string           `json:"color_name"`
	View      int              `json:"view"`
	Image     catalog.Resource `json:"image"`
	Quantity  int              `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Subtotal  decimal.Decimal  `json:"subtotal"`
}

// Summary is the rendered cart: lines plus badge count and total.
type Summary struct {
	Lines         []Line          `json:"lines"`
	TotalQuantity int             `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// MapLines resolves each item's image and color name through the catalog.
func MapLines(c *catalog.Catalog, items []LineItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{
			ProductID: it.ProductID,
			Name:      it.Name,
			Color:     it.Color,
			ColorName: c.ColorName(it.Color),
			View:      it.View,
			Image:     c.ImageFor(it.Color, it.View),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
		})
	}
	return lines
}

func Summarize(c *catalog.Catalog, s *Store) Summary {
	return Summary{
		Lines:         MapLines(c, s.Snapshot()),
		TotalQuantity: s.TotalQuantity(),
		TotalAmount:   s.TotalAmount(),
	}
}
