package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRequest is a validated order. Price is set only for LIMIT and
// STOP_LIMIT, StopPrice only for STOP_LIMIT.
type OrderRequest struct {
	Symbol    string
	Side      OrderSide
	Type      OrderType
	Quantity  decimal.Decimal
	Price     *decimal.Decimal
	StopPrice *decimal.Decimal
}

// OrderQuery identifies an existing order.
type OrderQuery struct {
	Symbol  string
	OrderID int64
}

// OrderResult is what the exchange reported for an order.
type OrderResult struct {
	OrderID       int64
	ClientOrderID string
	Symbol        string
	Status        OrderStatus
	Side          string
	Type          string
	TimeInForce   string
	Price         decimal.Decimal
	StopPrice     decimal.Decimal
	OrigQty       decimal.Decimal
	ExecutedQty   decimal.Decimal
	AvgPrice      decimal.Decimal
	UpdateTime    time.Time
	Raw           map[string]any
}
