package mappers

import (
	"strings"

	"github.com/chilly266futon/futuresBot/internal/domain"
	"github.com/chilly266futon/futuresBot/internal/dto/order"
)

// Futures API order type names.
const (
	WireOrderTypeMarket = "MARKET"
	WireOrderTypeLimit  = "LIMIT"
	WireOrderTypeStop   = "STOP"
)

// OrderTypeToWire returns the exchange type name for p. Stop-limit orders
// are called STOP by the futures API.
func OrderTypeToWire(p order.Params) string {
	switch p.(type) {
	case order.LimitOrder:
		return WireOrderTypeLimit
	case order.StopLimitOrder:
		return WireOrderTypeStop
	default:
		return WireOrderTypeMarket
	}
}

// OrderTypeFromWire names an exchange order type the way operators enter it.
// Types this tool cannot place are returned unchanged.
func OrderTypeFromWire(s string) string {
	switch strings.ToUpper(s) {
	case WireOrderTypeMarket:
		return domain.OrderTypeMarket.String()
	case WireOrderTypeLimit:
		return domain.OrderTypeLimit.String()
	case WireOrderTypeStop:
		return domain.OrderTypeStopLimit.String()
	default:
		return s
	}
}
