package formatter

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/chilly266futon/futuresBot/internal/domain"
)

func TestOrderPlaced(t *testing.T) {
	d := OrderPlaced("market", domain.OrderResult{
		OrderID:     12345,
		Status:      domain.OrderStatusNew,
		Symbol:      "BTCUSDT",
		Side:        "BUY",
		Type:        "MARKET",
		OrigQty:     decimal.RequireFromString("0.01"),
		ExecutedQty: decimal.Zero,
		UpdateTime:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Raw:         map[string]any{"status": "NEW", "orderId": "12345"},
	})

	assert.False(t, d.IsError)
	assert.Equal(t, "Futures market order placed", d.Title)
	assert.Contains(t, d.Lines, "Order ID: 12345")
	assert.Contains(t, d.Lines, "Status: NEW")
	assert.Contains(t, d.Lines, "Quantity: 0.01 (executed 0)")
	assert.Contains(t, d.Lines, "Updated: 2026-01-02T03:04:05Z")
	assert.NotContains(t, d.String(), "Price:")
	assert.Contains(t, d.String(), "Response:\n  orderId: 12345\n  status: NEW")
}

func TestOrderStatus_MarksFinalStatus(t *testing.T) {
	filled := OrderStatus(domain.OrderResult{OrderID: 1, Status: domain.OrderStatusFilled})
	assert.Contains(t, filled.Lines, "Status: FILLED (final)")

	partial := OrderStatus(domain.OrderResult{OrderID: 1, Status: domain.OrderStatusPartiallyFilled})
	assert.Contains(t, partial.Lines, "Status: PARTIALLY_FILLED")
}

func TestOrderStatus_UnknownStatus(t *testing.T) {
	d := OrderStatus(domain.OrderResult{OrderID: 1})
	assert.Contains(t, d.Lines, "Status: UNKNOWN")
}

func TestBalances(t *testing.T) {
	d := Balances(domain.Balances{
		"USDT": {Asset: "USDT", Balance: decimal.RequireFromString("15000.5"), Available: decimal.NewFromInt(14000), UnrealizedPnL: decimal.Zero},
		"BTC":  {Asset: "BTC", Balance: decimal.Zero},
	})
	assert.Equal(t, []string{"Asset: USDT, Balance: 15000.5, Available: 14000, Unrealized PnL: 0"}, d.Lines)

	empty := Balances(domain.Balances{})
	assert.Equal(t, []string{"No non-zero balances found."}, empty.Lines)
}

func TestPositions(t *testing.T) {
	d := Positions([]domain.Position{
		{Symbol: "BTCUSDT", Amount: decimal.RequireFromString("-0.01"), EntryPrice: decimal.NewFromInt(80000), Leverage: 20},
		{Symbol: "ETHUSDT", Amount: decimal.Zero},
	})

	assert.Contains(t, d.Lines, "Symbol: BTCUSDT")
	assert.Contains(t, d.Lines, "Direction: SHORT")
	assert.Contains(t, d.Lines, "Leverage: 20x")
	assert.NotContains(t, d.String(), "ETHUSDT")

	flat := Positions(nil)
	assert.Equal(t, []string{"No open positions found."}, flat.Lines)
}

func TestError(t *testing.T) {
	report := domain.NewExchangeError(-2015, "Invalid API-key, IP, or permissions for action.").WithContext("symbol=BTCUSDT")

	d := Error(report)
	assert.True(t, d.IsError)
	assert.Equal(t, "ExchangeError", d.Title)
	assert.Equal(t, []string{
		"Message: Invalid API-key, IP, or permissions for action.",
		"Code: -2015",
		"Request: symbol=BTCUSDT",
	}, d.Lines)

	plain := Error(errors.New("boom"))
	assert.Equal(t, "TransportError", plain.Title)
	assert.Equal(t, []string{"Message: boom"}, plain.Lines)
}
