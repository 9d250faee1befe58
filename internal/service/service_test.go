package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/chilly266futon/futuresBot/internal/domain"
	"github.com/chilly266futon/futuresBot/internal/dto/order"
	"github.com/chilly266futon/futuresBot/internal/eventlog"
	"github.com/chilly266futon/futuresBot/internal/storage"
)

type fakeGateway struct {
	placed      []order.Params
	queries     []domain.OrderQuery
	positionFor []string
	symbolCalls int

	symbols []string
	err     error
}

func (f *fakeGateway) PlaceOrder(ctx context.Context, params order.Params) (domain.OrderResult, error) {
	f.placed = append(f.placed, params)
	if f.err != nil {
		return domain.OrderResult{}, f.err
	}
	return domain.OrderResult{OrderID: 12345, Symbol: params.OrderSymbol(), Status: domain.OrderStatusNew}, nil
}

func (f *fakeGateway) GetOrderStatus(ctx context.Context, query domain.OrderQuery) (domain.OrderResult, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return domain.OrderResult{}, f.err
	}
	return domain.OrderResult{OrderID: query.OrderID, Symbol: query.Symbol, Status: domain.OrderStatusFilled}, nil
}

func (f *fakeGateway) GetBalance(ctx context.Context) (domain.Balances, error) {
	if f.err != nil {
		return nil, f.err
	}
	return domain.Balances{"USDT": {Asset: "USDT", Balance: decimal.NewFromInt(100)}}, nil
}

func (f *fakeGateway) GetPosition(ctx context.Context, symbol string) ([]domain.Position, error) {
	f.positionFor = append(f.positionFor, symbol)
	return nil, f.err
}

func (f *fakeGateway) TradingSymbols(ctx context.Context) ([]string, error) {
	f.symbolCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.symbols, nil
}

func newTestService(gw *fakeGateway, opts Options) (*Service, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewService(gw, storage.NewSymbolStorage(), eventlog.New(zap.New(core)), zap.NewNop(), opts), logs
}

func TestPlaceOrder_Success(t *testing.T) {
	gw := &fakeGateway{}
	svc, logs := newTestService(gw, Options{})

	result, err := svc.PlaceOrder(context.Background(), order.CreateOrderInput{
		Symbol: "btcusdt", Side: "buy", Type: "limit", Quantity: "0.01", Price: "80000",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(12345), result.OrderID)
	require.Len(t, gw.placed, 1)

	limit, ok := gw.placed[0].(order.LimitOrder)
	require.True(t, ok)
	assert.Equal(t, "BTCUSDT", limit.Symbol)
	assert.Equal(t, "GTC", limit.TimeInForce)
	assert.Zero(t, logs.Len())
}

func TestPlaceOrder_ValidationErrorSkipsGateway(t *testing.T) {
	gw := &fakeGateway{}
	svc, logs := newTestService(gw, Options{VerifySymbols: true})

	_, err := svc.PlaceOrder(context.Background(), order.CreateOrderInput{
		Symbol: "BTCUSDT", Side: "BUY", Type: "LIMIT", Quantity: "1",
	})

	require.Error(t, err)
	report := domain.AsReport(err)
	assert.Equal(t, domain.ErrorKindValidation, report.Kind)
	assert.Equal(t, "price required for LIMIT order", report.Message)
	assert.Contains(t, report.Context, "type=LIMIT")

	assert.Empty(t, gw.placed)
	assert.Zero(t, gw.symbolCalls)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "ValidationError", logs.All()[0].ContextMap()["kind"])
}

func TestPlaceOrder_VerifySymbols(t *testing.T) {
	gw := &fakeGateway{symbols: []string{"BTCUSDT", "ETHUSDT"}}
	svc, _ := newTestService(gw, Options{VerifySymbols: true})
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, order.CreateOrderInput{Symbol: "ETHUSDT", Side: "SELL", Type: "MARKET", Quantity: "1"})
	require.NoError(t, err)

	_, err = svc.PlaceOrder(ctx, order.CreateOrderInput{Symbol: "DOGEBTC", Side: "SELL", Type: "MARKET", Quantity: "1"})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrorKindValidation))
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)

	assert.Equal(t, 1, gw.symbolCalls)
	assert.Len(t, gw.placed, 1)
}

func TestPlaceOrder_SymbolCatalogueFailure(t *testing.T) {
	gw := &fakeGateway{err: domain.NewTransportError(errors.New("dial tcp: refused"), "request failed")}
	svc, _ := newTestService(gw, Options{VerifySymbols: true})

	_, err := svc.PlaceOrder(context.Background(), order.CreateOrderInput{Symbol: "BTCUSDT", Side: "BUY", Type: "MARKET", Quantity: "1"})

	assert.True(t, domain.IsKind(err, domain.ErrorKindTransport))
	assert.ErrorIs(t, err, domain.ErrSymbolsNotAvailable)
	assert.Equal(t, "request failed", domain.AsReport(err).Message)
	assert.Empty(t, gw.placed)
	assert.False(t, svc.symbols.Loaded())
}

func TestPlaceOrder_GatewayErrorPassesThrough(t *testing.T) {
	gw := &fakeGateway{err: domain.NewExchangeError(-2019, "Margin is insufficient.")}
	svc, _ := newTestService(gw, Options{})

	_, err := svc.PlaceOrder(context.Background(), order.CreateOrderInput{Symbol: "BTCUSDT", Side: "BUY", Type: "MARKET", Quantity: "100"})

	require.Error(t, err)
	report := domain.AsReport(err)
	assert.Equal(t, domain.ErrorKindExchange, report.Kind)
	assert.Equal(t, -2019, report.Code)
}

func TestGetOrderStatus(t *testing.T) {
	gw := &fakeGateway{}
	svc, _ := newTestService(gw, Options{})

	result, err := svc.GetOrderStatus(context.Background(), order.GetOrderStatusInput{Symbol: "btcusdt", OrderID: "42"})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusFilled, result.Status)
	assert.Equal(t, []domain.OrderQuery{{Symbol: "BTCUSDT", OrderID: 42}}, gw.queries)

	_, err = svc.GetOrderStatus(context.Background(), order.GetOrderStatusInput{Symbol: "BTCUSDT", OrderID: "x"})
	assert.True(t, domain.IsKind(err, domain.ErrorKindValidation))
	assert.Len(t, gw.queries, 1)
}

func TestGetPosition(t *testing.T) {
	gw := &fakeGateway{}
	svc, _ := newTestService(gw, Options{})
	ctx := context.Background()

	_, err := svc.GetPosition(ctx, order.GetPositionInput{Symbol: "ethusdt"})
	require.NoError(t, err)
	_, err = svc.GetPosition(ctx, order.GetPositionInput{})
	require.NoError(t, err)
	_, err = svc.GetPosition(ctx, order.GetPositionInput{Symbol: "ETH/USDT"})
	assert.True(t, domain.IsKind(err, domain.ErrorKindValidation))

	assert.Equal(t, []string{"ETHUSDT", ""}, gw.positionFor)
}

func TestGetBalance(t *testing.T) {
	svc, _ := newTestService(&fakeGateway{}, Options{})

	balances, err := svc.GetBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"USDT"}, balances.Assets())
}
