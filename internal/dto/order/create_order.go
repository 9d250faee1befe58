package order

import (
	"github.com/shopspring/decimal"
)

const (
	TimeInForceGTC = "GTC"

	WorkingTypeMarkPrice = "MARK_PRICE"
)

// CreateOrderInput is the raw operator input for a new order, as typed into
// either shell.
type CreateOrderInput struct {
	Symbol    string
	Side      string
	Type      string
	Quantity  string
	Price     string
	StopPrice string
}

// Params is one of MarketOrder, LimitOrder or StopLimitOrder.
type Params interface {
	OrderSymbol() string
	isParams()
}

type MarketOrder struct {
	Symbol   string
	Side     string
	Quantity decimal.Decimal
}

type LimitOrder struct {
	Symbol      string
	Side        string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	TimeInForce string
}

type StopLimitOrder struct {
	Symbol      string
	Side        string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	StopPrice   decimal.Decimal
	TimeInForce string
	WorkingType string
}

func (o MarketOrder) OrderSymbol() string    { return o.Symbol }
func (o LimitOrder) OrderSymbol() string     { return o.Symbol }
func (o StopLimitOrder) OrderSymbol() string { return o.Symbol }

func (MarketOrder) isParams()    {}
func (LimitOrder) isParams()     {}
func (StopLimitOrder) isParams() {}
