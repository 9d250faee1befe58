package mappers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/chilly266futon/futuresBot/internal/domain"
	"github.com/chilly266futon/futuresBot/internal/dto/order"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestBuildOrderParams(t *testing.T) {
	tests := []struct {
		name string
		req  domain.OrderRequest
		want order.Params
	}{
		{
			name: "market",
			req: domain.OrderRequest{
				Symbol: "BTCUSDT", Side: domain.OrderSideBuy, Type: domain.OrderTypeMarket,
				Quantity: decimal.RequireFromString("0.01"),
			},
			want: order.MarketOrder{Symbol: "BTCUSDT", Side: "BUY", Quantity: decimal.RequireFromString("0.01")},
		},
		{
			name: "limit",
			req: domain.OrderRequest{
				Symbol: "BTCUSDT", Side: domain.OrderSideSell, Type: domain.OrderTypeLimit,
				Quantity: decimal.RequireFromString("1"), Price: dec("80000"),
			},
			want: order.LimitOrder{
				Symbol: "BTCUSDT", Side: "SELL", Quantity: decimal.RequireFromString("1"),
				Price: decimal.RequireFromString("80000"), TimeInForce: "GTC",
			},
		},
		{
			name: "stop limit",
			req: domain.OrderRequest{
				Symbol: "ETHUSDT", Side: domain.OrderSideBuy, Type: domain.OrderTypeStopLimit,
				Quantity: decimal.RequireFromString("2"), Price: dec("3120"), StopPrice: dec("3100"),
			},
			want: order.StopLimitOrder{
				Symbol: "ETHUSDT", Side: "BUY", Quantity: decimal.RequireFromString("2"),
				Price: decimal.RequireFromString("3120"), StopPrice: decimal.RequireFromString("3100"),
				TimeInForce: "GTC", WorkingType: "MARK_PRICE",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := BuildOrderParams(tt.req)
			second := BuildOrderParams(tt.req)

			assert.Equal(t, tt.want, first)
			assert.Equal(t, first, second)
		})
	}
}

func TestBuildOrderParams_MissingPricesDoNotPanic(t *testing.T) {
	p := BuildOrderParams(domain.OrderRequest{Symbol: "BTCUSDT", Type: domain.OrderTypeStopLimit})

	sl, ok := p.(order.StopLimitOrder)
	assert.True(t, ok)
	assert.True(t, sl.Price.IsZero())
	assert.True(t, sl.StopPrice.IsZero())
}

func TestOrderTypeWireNames(t *testing.T) {
	assert.Equal(t, "MARKET", OrderTypeToWire(order.MarketOrder{}))
	assert.Equal(t, "LIMIT", OrderTypeToWire(order.LimitOrder{}))
	assert.Equal(t, "STOP", OrderTypeToWire(order.StopLimitOrder{}))

	assert.Equal(t, "STOP_LIMIT", OrderTypeFromWire("STOP"))
	assert.Equal(t, "TAKE_PROFIT", OrderTypeFromWire("TAKE_PROFIT"))
	assert.Equal(t, domain.OrderStatusNew, OrderStatusFromWire(" new"))
}
