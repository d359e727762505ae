package cart

import "github.com/shopspring/decimal"

// Item is a cart line. SKU is unique within a cart.
type Item struct {
	SKU   string          `json:"sku"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Qty   int64           `json:"qty"`
}

// LineTotal returns Price * Qty.
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Qty))
}
