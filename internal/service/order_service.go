package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/chilly266futon/futuresBot/internal/domain"
	"github.com/chilly266futon/futuresBot/internal/dto/order"
	"github.com/chilly266futon/futuresBot/internal/mappers"
	"github.com/chilly266futon/futuresBot/internal/validation"
)

// PlaceOrder validates in and sends the order. Invalid input never reaches
// the exchange.
func (s *Service) PlaceOrder(ctx context.Context, in order.CreateOrderInput) (domain.OrderResult, error) {
	req, err := validation.ValidateOrder(in)
	if err != nil {
		return domain.OrderResult{}, s.rejected("place_order", createOrderParams(in), err)
	}

	if s.opts.VerifySymbols {
		if err := s.ensureSymbols(ctx); err != nil {
			return domain.OrderResult{}, err
		}
		if !s.symbols.Has(req.Symbol) {
			report := domain.NewValidationError("unknown futures symbol %q", req.Symbol)
			report.Err = domain.ErrUnknownSymbol
			return domain.OrderResult{}, s.rejected("place_order", createOrderParams(in), report)
		}
	}

	params := mappers.BuildOrderParams(req)

	s.logger.Debug("placing order",
		zap.String("symbol", req.Symbol),
		zap.String("side", req.Side.String()),
		zap.String("type", req.Type.String()),
		zap.String("quantity", req.Quantity.String()),
	)

	return s.gateway.PlaceOrder(ctx, params)
}

func (s *Service) GetOrderStatus(ctx context.Context, in order.GetOrderStatusInput) (domain.OrderResult, error) {
	query, err := validation.ValidateOrderQuery(in)
	if err != nil {
		return domain.OrderResult{}, s.rejected("get_order_status", map[string]string{
			"symbol":  in.Symbol,
			"orderId": in.OrderID,
		}, err)
	}

	return s.gateway.GetOrderStatus(ctx, query)
}

func createOrderParams(in order.CreateOrderInput) map[string]string {
	params := map[string]string{
		"symbol":   in.Symbol,
		"side":     in.Side,
		"type":     in.Type,
		"quantity": in.Quantity,
	}
	if in.Price != "" {
		params["price"] = in.Price
	}
	if in.StopPrice != "" {
		params["stopPrice"] = in.StopPrice
	}
	return params
}
