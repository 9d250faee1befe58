package domain

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

type Balance struct {
	Asset         string
	Balance       decimal.Decimal
	Available     decimal.Decimal
	CrossWallet   decimal.Decimal
	UnrealizedPnL decimal.Decimal
}

// Balances maps an asset symbol to its balance.
type Balances map[string]Balance

// Assets returns the asset symbols in lexical order.
func (b Balances) Assets() []string {
	return slices.Sorted(maps.Keys(b))
}

type PositionDirection string

const (
	PositionLong  PositionDirection = "LONG"
	PositionShort PositionDirection = "SHORT"
	PositionFlat  PositionDirection = "FLAT"
)

type Position struct {
	Symbol        string
	PositionSide  string
	Amount        decimal.Decimal
	EntryPrice    decimal.Decimal
	MarkPrice     decimal.Decimal
	UnrealizedPnL decimal.Decimal
	Leverage      int
}

// Direction derives the position side from the sign of Amount.
func (p Position) Direction() PositionDirection {
	switch p.Amount.Sign() {
	case 1:
		return PositionLong
	case -1:
		return PositionShort
	default:
		return PositionFlat
	}
}

func (p Position) IsOpen() bool {
	return !p.Amount.IsZero()
}
