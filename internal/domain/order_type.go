package domain

import "strings"

type OrderType uint8

const (
	OrderTypeUnspecified OrderType = iota
	OrderTypeMarket
	OrderTypeLimit
	OrderTypeStopLimit
)

func (t OrderType) String() string {
	switch t {
	case OrderTypeMarket:
		return "MARKET"
	case OrderTypeLimit:
		return "LIMIT"
	case OrderTypeStopLimit:
		return "STOP_LIMIT"
	default:
		return "UNSPECIFIED"
	}
}

// RequiresPrice reports whether orders of this type carry a limit price.
func (t OrderType) RequiresPrice() bool {
	return t == OrderTypeLimit || t == OrderTypeStopLimit
}

// RequiresStopPrice reports whether orders of this type carry a trigger price.
func (t OrderType) RequiresStopPrice() bool {
	return t == OrderTypeStopLimit
}

// ParseOrderType accepts the type name in any case. STOP-LIMIT and STOPLIMIT
// are read as STOP_LIMIT.
func ParseOrderType(s string) (OrderType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MARKET":
		return OrderTypeMarket, nil
	case "LIMIT":
		return OrderTypeLimit, nil
	case "STOP_LIMIT", "STOP-LIMIT", "STOPLIMIT":
		return OrderTypeStopLimit, nil
	default:
		return OrderTypeUnspecified, ErrInvalidOrderType
	}
}
