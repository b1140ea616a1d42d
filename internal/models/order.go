package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const OrderStatusCreated = "created"

// Order is an immutable snapshot of a checked-out cart. Product names
// and unit prices are copied at checkout time so later catalog edits
// do not rewrite order history.
type Order struct {
	ID          int64
	OrderNumber uuid.UUID
	UserID      int64
	Status      string
	TotalPrice  decimal.Decimal
	CreatedAt   time.Time
	Items       []OrderItem
}

type OrderItem struct {
	ProductID   int64
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}
