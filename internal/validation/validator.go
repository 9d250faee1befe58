// Package validation turns raw operator input into domain requests. Nothing
// here touches the network.
package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/chilly266futon/futuresBot/internal/domain"
	"github.com/chilly266futon/futuresBot/internal/dto/order"
)

const (
	// MaxDecimalPlaces bounds the precision accepted for quantities and prices.
	MaxDecimalPlaces = 8
	// MaxIntegerDigits bounds the magnitude accepted for quantities and prices.
	MaxIntegerDigits = 18

	maxNumberLength = 40
)

var (
	symbolPattern = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)
	// Plain decimal notation only. Exponent forms are rejected before parsing.
	numberPattern = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)
)

// ValidateOrder checks in and returns the order it describes. All failures
// are *domain.ErrorReport values of kind ValidationError.
func ValidateOrder(in order.CreateOrderInput) (domain.OrderRequest, error) {
	symbol, err := NormalizeSymbol(in.Symbol, false)
	if err != nil {
		return domain.OrderRequest{}, err
	}

	side, err := domain.ParseOrderSide(in.Side)
	if err != nil {
		return domain.OrderRequest{}, domain.NewValidationError("side must be BUY or SELL")
	}

	ot, err := domain.ParseOrderType(in.Type)
	if err != nil {
		return domain.OrderRequest{}, domain.NewValidationError("order type must be MARKET, LIMIT or STOP_LIMIT")
	}

	quantity, err := parsePositive("quantity", in.Quantity)
	if err != nil {
		return domain.OrderRequest{}, err
	}

	req := domain.OrderRequest{
		Symbol:   symbol,
		Side:     side,
		Type:     ot,
		Quantity: quantity,
	}

	price := strings.TrimSpace(in.Price)
	switch {
	case ot.RequiresPrice() && price == "":
		return domain.OrderRequest{}, domain.NewValidationError("price required for %s order", ot)
	case !ot.RequiresPrice() && price != "":
		return domain.OrderRequest{}, domain.NewValidationError("price not allowed for %s order", ot)
	case ot.RequiresPrice():
		p, err := parsePositive("price", price)
		if err != nil {
			return domain.OrderRequest{}, err
		}
		req.Price = &p
	}

	stopPrice := strings.TrimSpace(in.StopPrice)
	switch {
	case ot.RequiresStopPrice() && stopPrice == "":
		return domain.OrderRequest{}, domain.NewValidationError("stop price required for %s order", ot)
	case !ot.RequiresStopPrice() && stopPrice != "":
		return domain.OrderRequest{}, domain.NewValidationError("stop price not allowed for %s order", ot)
	case ot.RequiresStopPrice():
		sp, err := parsePositive("stop price", stopPrice)
		if err != nil {
			return domain.OrderRequest{}, err
		}
		req.StopPrice = &sp
	}

	return req, nil
}

// ValidateOrderQuery checks the symbol and the exchange-issued order id.
func ValidateOrderQuery(in order.GetOrderStatusInput) (domain.OrderQuery, error) {
	symbol, err := NormalizeSymbol(in.Symbol, false)
	if err != nil {
		return domain.OrderQuery{}, err
	}

	raw := strings.TrimSpace(in.OrderID)
	if raw == "" {
		return domain.OrderQuery{}, domain.NewValidationError("order id is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return domain.OrderQuery{}, domain.NewValidationError("invalid order id %q", raw)
	}

	return domain.OrderQuery{Symbol: symbol, OrderID: id}, nil
}

// NormalizeSymbol trims and uppercases s. An empty symbol is an error unless
// optional is set, in which case "" is returned as is.
func NormalizeSymbol(s string, optional bool) (string, error) {
	symbol := strings.ToUpper(strings.TrimSpace(s))
	if symbol == "" {
		if optional {
			return "", nil
		}
		return "", domain.NewValidationError("symbol is required")
	}
	if !symbolPattern.MatchString(symbol) {
		return "", domain.NewValidationError("invalid symbol %q", s)
	}
	return symbol, nil
}

func parsePositive(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, domain.NewValidationError("%s is required", field)
	}

	if len(raw) > maxNumberLength || !numberPattern.MatchString(raw) {
		return decimal.Zero, domain.NewValidationError("invalid %s %q", field, raw)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, domain.NewValidationError("invalid %s %q", field, raw)
	}
	if d.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.NewValidationError("%s must be greater than zero", field)
	}
	if !d.Equal(d.Truncate(MaxDecimalPlaces)) {
		return decimal.Zero, domain.NewValidationError("%s supports at most %d decimal places", field, MaxDecimalPlaces)
	}
	if d.Truncate(0).NumDigits() > MaxIntegerDigits {
		return decimal.Zero, domain.NewValidationError("%s supports at most %d integer digits", field, MaxIntegerDigits)
	}
	return d, nil
}
