package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/chilly266futon/futuresBot/internal/clients"
	"github.com/chilly266futon/futuresBot/internal/domain"
	"github.com/chilly266futon/futuresBot/internal/dto/order"
	"github.com/chilly266futon/futuresBot/internal/eventlog"
	"github.com/chilly266futon/futuresBot/internal/storage"
	"github.com/chilly266futon/futuresBot/internal/validation"
)

type Options struct {
	// VerifySymbols rejects orders for symbols the exchange does not list
	// as trading.
	VerifySymbols bool
}

// Service is the entry point both shells use. It validates operator input
// and hands well-formed requests to the gateway.
type Service struct {
	gateway clients.ExchangeGateway
	symbols *storage.SymbolStorage
	events  *eventlog.Log
	logger  *zap.Logger
	opts    Options

	loadMu sync.Mutex
}

func NewService(
	gateway clients.ExchangeGateway,
	symbols *storage.SymbolStorage,
	events *eventlog.Log,
	logger *zap.Logger,
	opts Options,
) *Service {
	return &Service{
		gateway: gateway,
		symbols: symbols,
		events:  events,
		logger:  logger,
		opts:    opts,
	}
}

func (s *Service) GetBalance(ctx context.Context) (domain.Balances, error) {
	return s.gateway.GetBalance(ctx)
}

// GetPosition returns positions for the symbol, or all positions when the
// symbol is blank.
func (s *Service) GetPosition(ctx context.Context, in order.GetPositionInput) ([]domain.Position, error) {
	symbol, err := validation.NormalizeSymbol(in.Symbol, true)
	if err != nil {
		return nil, s.rejected("get_position", map[string]string{"symbol": in.Symbol}, err)
	}
	return s.gateway.GetPosition(ctx, symbol)
}

// rejected records an input error in the event log and returns it with
// the raw input attached as context.
func (s *Service) rejected(operation string, params map[string]string, err error) error {
	call := s.events.Begin(operation, params)
	report := domain.AsReport(err).WithContext(call.Params())
	call.Failure(report)

	s.logger.Warn("request rejected",
		zap.String("operation", operation),
		zap.String("reason", report.Message),
	)
	return report
}

// ensureSymbols loads the trading symbol catalogue on first use.
func (s *Service) ensureSymbols(ctx context.Context) error {
	if s.symbols.Loaded() {
		return nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if s.symbols.Loaded() {
		return nil
	}

	symbols, err := s.gateway.TradingSymbols(ctx)
	if err != nil {
		report := *domain.AsReport(err)
		report.Err = errors.Join(domain.ErrSymbolsNotAvailable, report.Err)
		return &report
	}
	s.symbols.Replace(symbols)

	s.logger.Info("symbol catalogue loaded", zap.Int("symbols", s.symbols.Count()))
	return nil
}
