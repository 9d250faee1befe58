package mappers

import (
	"github.com/shopspring/decimal"

	"github.com/chilly266futon/futuresBot/internal/domain"
	"github.com/chilly266futon/futuresBot/internal/dto/order"
)

// BuildOrderParams maps a validated request to its exchange request variant.
// Unknown types fall back to a market order so building never fails.
func BuildOrderParams(req domain.OrderRequest) order.Params {
	switch req.Type {
	case domain.OrderTypeLimit:
		return order.LimitOrder{
			Symbol:      req.Symbol,
			Side:        req.Side.String(),
			Quantity:    req.Quantity,
			Price:       valueOrZero(req.Price),
			TimeInForce: order.TimeInForceGTC,
		}
	case domain.OrderTypeStopLimit:
		return order.StopLimitOrder{
			Symbol:      req.Symbol,
			Side:        req.Side.String(),
			Quantity:    req.Quantity,
			Price:       valueOrZero(req.Price),
			StopPrice:   valueOrZero(req.StopPrice),
			TimeInForce: order.TimeInForceGTC,
			WorkingType: order.WorkingTypeMarkPrice,
		}
	default:
		return order.MarketOrder{
			Symbol:   req.Symbol,
			Side:     req.Side.String(),
			Quantity: req.Quantity,
		}
	}
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
