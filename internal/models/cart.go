package models

import "github.com/shopspring/decimal"

// Cart caches the total of its line items in TotalPrice. Every mutation
// keeps the invariant total_price == SUM(quantity * product.price),
// rounded to 2 decimal places.
type Cart struct {
	ID         int64
	UserID     int64
	TotalPrice decimal.Decimal
}

// LineItem is one product entry in a cart, unique per (cart, product).
type LineItem struct {
	CartID    int64
	ProductID int64
	Quantity  int
}

// CartLine is the read-only projection returned when listing a cart.
type CartLine struct {
	ProductName string
	Quantity    int
}
