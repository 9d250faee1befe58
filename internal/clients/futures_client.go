package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chilly266futon/futuresBot/internal/config"
	"github.com/chilly266futon/futuresBot/internal/domain"
	"github.com/chilly266futon/futuresBot/internal/dto/order"
	"github.com/chilly266futon/futuresBot/internal/eventlog"
	"github.com/chilly266futon/futuresBot/internal/mappers"
)

const (
	pathOrder        = "/fapi/v1/order"
	pathBalance      = "/fapi/v2/balance"
	pathPositionRisk = "/fapi/v2/positionRisk"
	pathExchangeInfo = "/fapi/v1/exchangeInfo"

	headerAPIKey = "X-MBX-APIKEY"

	maxErrorBody = 256
)

// ExchangeGateway is the only component that talks to the exchange. Every
// method makes exactly one remote call and returns failures as
// *domain.ErrorReport.
type ExchangeGateway interface {
	PlaceOrder(ctx context.Context, params order.Params) (domain.OrderResult, error)
	GetOrderStatus(ctx context.Context, query domain.OrderQuery) (domain.OrderResult, error)
	GetBalance(ctx context.Context) (domain.Balances, error)
	// GetPosition returns the positions for symbol, or for every symbol when
	// symbol is empty.
	GetPosition(ctx context.Context, symbol string) ([]domain.Position, error)
	TradingSymbols(ctx context.Context) ([]string, error)
}

type Config struct {
	BaseURL    string
	RecvWindow time.Duration
	// HTTPClient defaults to a client with the transport's default timeouts.
	HTTPClient *http.Client
}

type futuresGateway struct {
	baseURL    string
	recvWindow time.Duration
	httpClient *http.Client
	apiKey     string
	signer     *Signer
	events     *eventlog.Log
	logger     *zap.Logger

	now           func() time.Time
	clientOrderID func() string
}

// NewFuturesGateway builds the authenticated session. Incomplete credentials
// or a production base URL fail with a ConfigurationError before any
// network activity.
func NewFuturesGateway(cfg Config, creds domain.Credentials, events *eventlog.Log, logger *zap.Logger) (ExchangeGateway, error) {
	if !creds.Complete() {
		return nil, domain.NewConfigurationError(domain.ErrMissingCredentials, "API key and API secret are required")
	}
	if err := config.ValidateBaseURL(cfg.BaseURL); err != nil {
		return nil, domain.NewConfigurationError(err, "%v", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &futuresGateway{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		recvWindow:    cfg.RecvWindow,
		httpClient:    httpClient,
		apiKey:        creds.APIKey,
		signer:        NewSigner(creds.APISecret),
		events:        events,
		logger:        logger,
		now:           time.Now,
		clientOrderID: uuid.NewString,
	}, nil
}

func (g *futuresGateway) PlaceOrder(ctx context.Context, params order.Params) (domain.OrderResult, error) {
	values := encodeOrder(params)
	values.Set("newClientOrderId", g.clientOrderID())
	call := g.events.Begin("place_order", flatten(values))

	body, err := g.do(ctx, http.MethodPost, pathOrder, values, true)
	if err != nil {
		return domain.OrderResult{}, fail(call, err)
	}

	result, err := decodeOrder(body)
	if err != nil {
		return domain.OrderResult{}, fail(call, err)
	}

	g.logger.Info("order placed",
		zap.Int64("order_id", result.OrderID),
		zap.String("symbol", result.Symbol),
		zap.String("status", result.Status.String()),
	)
	call.Success(summarizeOrder(result))
	return result, nil
}

func (g *futuresGateway) GetOrderStatus(ctx context.Context, query domain.OrderQuery) (domain.OrderResult, error) {
	values := url.Values{}
	values.Set("symbol", query.Symbol)
	values.Set("orderId", strconv.FormatInt(query.OrderID, 10))
	call := g.events.Begin("get_order_status", flatten(values))

	body, err := g.do(ctx, http.MethodGet, pathOrder, values, true)
	if err != nil {
		return domain.OrderResult{}, fail(call, err)
	}

	result, err := decodeOrder(body)
	if err != nil {
		return domain.OrderResult{}, fail(call, err)
	}

	call.Success(summarizeOrder(result))
	return result, nil
}

func (g *futuresGateway) GetBalance(ctx context.Context) (domain.Balances, error) {
	call := g.events.Begin("get_balance", nil)

	body, err := g.do(ctx, http.MethodGet, pathBalance, url.Values{}, true)
	if err != nil {
		return nil, fail(call, err)
	}

	balances, err := decodeBalances(body)
	if err != nil {
		return nil, fail(call, err)
	}

	call.Success(fmt.Sprintf("assets=%d", len(balances)))
	return balances, nil
}

func (g *futuresGateway) GetPosition(ctx context.Context, symbol string) ([]domain.Position, error) {
	values := url.Values{}
	if symbol != "" {
		values.Set("symbol", symbol)
	}
	call := g.events.Begin("get_position", flatten(values))

	body, err := g.do(ctx, http.MethodGet, pathPositionRisk, values, true)
	if err != nil {
		return nil, fail(call, err)
	}

	positions, err := decodePositions(body)
	if err != nil {
		return nil, fail(call, err)
	}

	open := 0
	for _, p := range positions {
		if p.IsOpen() {
			open++
		}
	}
	call.Success(fmt.Sprintf("positions=%d open=%d", len(positions), open))
	return positions, nil
}

func (g *futuresGateway) TradingSymbols(ctx context.Context) ([]string, error) {
	call := g.events.Begin("exchange_info", nil)

	body, err := g.do(ctx, http.MethodGet, pathExchangeInfo, url.Values{}, false)
	if err != nil {
		return nil, fail(call, err)
	}

	symbols, err := decodeTradingSymbols(body)
	if err != nil {
		return nil, fail(call, err)
	}

	call.Success(fmt.Sprintf("symbols=%d", len(symbols)))
	return symbols, nil
}

// do sends one request. Signed requests get timestamp, recvWindow and
// signature appended to a copy of params.
func (g *futuresGateway) do(ctx context.Context, method, path string, params url.Values, signed bool) ([]byte, error) {
	payload := cloneValues(params)
	if signed {
		payload.Set("timestamp", strconv.FormatInt(g.now().UnixMilli(), 10))
		if g.recvWindow > 0 {
			payload.Set("recvWindow", strconv.FormatInt(g.recvWindow.Milliseconds(), 10))
		}
	}

	encoded := payload.Encode()
	if signed {
		sig := g.signer.Sign(encoded)
		if encoded != "" {
			encoded += "&"
		}
		encoded += "signature=" + sig
	}

	target := g.baseURL + path
	var body io.Reader
	if method == http.MethodGet {
		if encoded != "" {
			target += "?" + encoded
		}
	} else {
		body = strings.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, domain.NewTransportError(err, "build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")
	if signed {
		req.Header.Set(headerAPIKey, g.apiKey)
	}

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Warn("exchange request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, domain.NewTransportError(err, "request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewTransportError(err, "read response: %v", err)
	}

	g.logger.Debug("exchange request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

type apiError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func decodeAPIError(status int, body []byte) *domain.ErrorReport {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Msg != "" {
		return domain.NewExchangeError(apiErr.Code, apiErr.Msg)
	}

	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "..."
	}
	if text == "" {
		text = http.StatusText(status)
	}
	return domain.NewExchangeError(0, fmt.Sprintf("HTTP %d: %s", status, text))
}

func fail(call *eventlog.Call, err error) error {
	report := domain.AsReport(err).WithContext(call.Params())
	call.Failure(report)
	return report
}

func encodeOrder(params order.Params) url.Values {
	values := url.Values{}
	values.Set("symbol", params.OrderSymbol())
	values.Set("type", mappers.OrderTypeToWire(params))

	switch p := params.(type) {
	case order.MarketOrder:
		values.Set("side", p.Side)
		values.Set("quantity", p.Quantity.String())
	case order.LimitOrder:
		values.Set("side", p.Side)
		values.Set("quantity", p.Quantity.String())
		values.Set("price", p.Price.String())
		values.Set("timeInForce", p.TimeInForce)
	case order.StopLimitOrder:
		values.Set("side", p.Side)
		values.Set("quantity", p.Quantity.String())
		values.Set("price", p.Price.String())
		values.Set("stopPrice", p.StopPrice.String())
		values.Set("timeInForce", p.TimeInForce)
		values.Set("workingType", p.WorkingType)
	}
	return values
}

func summarizeOrder(r domain.OrderResult) string {
	return fmt.Sprintf("orderId=%d symbol=%s status=%s executedQty=%s", r.OrderID, r.Symbol, r.Status, r.ExecutedQty)
}

func flatten(values url.Values) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = strings.Join(v, ",")
	}
	return out
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, v := range values {
		out[k] = append([]string(nil), v...)
	}
	return out
}
