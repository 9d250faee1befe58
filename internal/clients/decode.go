package clients

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chilly266futon/futuresBot/internal/domain"
	"github.com/chilly266futon/futuresBot/internal/mappers"
)

type orderResponse struct {
	OrderID       int64           `json:"orderId"`
	ClientOrderID string          `json:"clientOrderId"`
	Symbol        string          `json:"symbol"`
	Status        string          `json:"status"`
	Side          string          `json:"side"`
	Type          string          `json:"type"`
	TimeInForce   string          `json:"timeInForce"`
	Price         decimal.Decimal `json:"price"`
	StopPrice     decimal.Decimal `json:"stopPrice"`
	OrigQty       decimal.Decimal `json:"origQty"`
	ExecutedQty   decimal.Decimal `json:"executedQty"`
	AvgPrice      decimal.Decimal `json:"avgPrice"`
	UpdateTime    int64           `json:"updateTime"`
}

type balanceResponse struct {
	Asset              string          `json:"asset"`
	Balance            decimal.Decimal `json:"balance"`
	AvailableBalance   decimal.Decimal `json:"availableBalance"`
	CrossWalletBalance decimal.Decimal `json:"crossWalletBalance"`
	CrossUnPnl         decimal.Decimal `json:"crossUnPnl"`
}

type positionResponse struct {
	Symbol           string          `json:"symbol"`
	PositionSide     string          `json:"positionSide"`
	PositionAmt      decimal.Decimal `json:"positionAmt"`
	EntryPrice       decimal.Decimal `json:"entryPrice"`
	MarkPrice        decimal.Decimal `json:"markPrice"`
	UnRealizedProfit decimal.Decimal `json:"unRealizedProfit"`
	Leverage         string          `json:"leverage"`
}

type exchangeInfoResponse struct {
	Symbols []struct {
		Symbol string `json:"symbol"`
		Status string `json:"status"`
	} `json:"symbols"`
}

func malformed(err error) *domain.ErrorReport {
	return domain.NewTransportError(fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err),
		"malformed response: %v", err)
}

func decodeOrder(body []byte) (domain.OrderResult, error) {
	var resp orderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.OrderResult{}, malformed(err)
	}
	if resp.OrderID == 0 {
		return domain.OrderResult{}, malformed(errors.New("response has no orderId"))
	}

	raw := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return domain.OrderResult{}, malformed(err)
	}

	result := domain.OrderResult{
		OrderID:       resp.OrderID,
		ClientOrderID: resp.ClientOrderID,
		Symbol:        resp.Symbol,
		Status:        mappers.OrderStatusFromWire(resp.Status),
		Side:          resp.Side,
		Type:          mappers.OrderTypeFromWire(resp.Type),
		TimeInForce:   resp.TimeInForce,
		Price:         resp.Price,
		StopPrice:     resp.StopPrice,
		OrigQty:       resp.OrigQty,
		ExecutedQty:   resp.ExecutedQty,
		AvgPrice:      resp.AvgPrice,
		Raw:           raw,
	}
	if resp.UpdateTime > 0 {
		result.UpdateTime = time.UnixMilli(resp.UpdateTime).UTC()
	}
	return result, nil
}

func decodeBalances(body []byte) (domain.Balances, error) {
	var resp []balanceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, malformed(err)
	}

	balances := make(domain.Balances, len(resp))
	for _, b := range resp {
		if b.Asset == "" {
			continue
		}
		balances[b.Asset] = domain.Balance{
			Asset:         b.Asset,
			Balance:       b.Balance,
			Available:     b.AvailableBalance,
			CrossWallet:   b.CrossWalletBalance,
			UnrealizedPnL: b.CrossUnPnl,
		}
	}
	return balances, nil
}

func decodePositions(body []byte) ([]domain.Position, error) {
	var resp []positionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, malformed(err)
	}

	positions := make([]domain.Position, 0, len(resp))
	for _, p := range resp {
		leverage := 0
		if p.Leverage != "" {
			n, err := strconv.Atoi(p.Leverage)
			if err != nil {
				return nil, malformed(fmt.Errorf("leverage %q: %w", p.Leverage, err))
			}
			leverage = n
		}
		positions = append(positions, domain.Position{
			Symbol:        p.Symbol,
			PositionSide:  p.PositionSide,
			Amount:        p.PositionAmt,
			EntryPrice:    p.EntryPrice,
			MarkPrice:     p.MarkPrice,
			UnrealizedPnL: p.UnRealizedProfit,
			Leverage:      leverage,
		})
	}
	return positions, nil
}

func decodeTradingSymbols(body []byte) ([]string, error) {
	var resp exchangeInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, malformed(err)
	}

	symbols := make([]string, 0, len(resp.Symbols))
	for _, s := range resp.Symbols {
		if s.Status == "TRADING" {
			symbols = append(symbols, s.Symbol)
		}
	}
	return symbols, nil
}
