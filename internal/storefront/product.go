package storefront

import (
	"dikra-store/internal/utils"

	"github.com/shopspring/decimal"
)

const (
	ProductID   = "dikraorb-classic"
	ProductName = "ذكرة أورب™ الكلاسيكي"
)

var ProductPrice = decimal.NewFromInt(349)

// ProductInfo is the product as shown on the page.
type ProductInfo struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	PriceLabel string          `json:"price_label"`
}

func Product() ProductInfo {
	return ProductInfo{
		ID:         ProductID,
		Name:       ProductName,
		Price:      ProductPrice,
		PriceLabel: utils.FormatSAR(ProductPrice),
	}
}
