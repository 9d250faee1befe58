// Package cli is the numbered-menu operator shell.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/chilly266futon/futuresBot/internal/domain"
	"github.com/chilly266futon/futuresBot/internal/dto/order"
	"github.com/chilly266futon/futuresBot/internal/formatter"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, in order.CreateOrderInput) (domain.OrderResult, error)
	GetOrderStatus(ctx context.Context, in order.GetOrderStatusInput) (domain.OrderResult, error)
	GetBalance(ctx context.Context) (domain.Balances, error)
	GetPosition(ctx context.Context, in order.GetPositionInput) ([]domain.Position, error)
}

const menu = `
Binance Futures Testnet Bot
1. Place market order
2. Place limit order
3. Place stop-limit order
4. Check order status
5. View balance
6. View position
7. Exit`

// errInputClosed ends the session when the input stream is exhausted.
var errInputClosed = errors.New("input closed")

// field is one prompted value of an order form.
type field struct {
	label string
	dst   *string
}

type Shell struct {
	svc    OrderService
	in     *bufio.Scanner
	out    io.Writer
	logger *zap.Logger
}

func NewShell(svc OrderService, in io.Reader, out io.Writer, logger *zap.Logger) *Shell {
	return &Shell{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
	}
}

// Run shows the menu until the operator exits or the input ends.
func (s *Shell) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(s.out, menu)
		choice, err := s.prompt("Select an option (1-7)")
		if err != nil {
			return s.closed(err)
		}

		var display formatter.Display
		switch choice {
		case "1":
			display, err = s.placeOrder(ctx, "market", domain.OrderTypeMarket)
		case "2":
			display, err = s.placeOrder(ctx, "limit", domain.OrderTypeLimit)
		case "3":
			display, err = s.placeOrder(ctx, "stop-limit", domain.OrderTypeStopLimit)
		case "4":
			display, err = s.orderStatus(ctx)
		case "5":
			display = s.balance(ctx)
		case "6":
			display, err = s.position(ctx)
		case "7":
			fmt.Fprintln(s.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid option, choose a number from 1 to 7.")
			continue
		}
		if err != nil {
			return s.closed(err)
		}

		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, display.String())
	}
}

func (s *Shell) placeOrder(ctx context.Context, kind string, ot domain.OrderType) (formatter.Display, error) {
	in := order.CreateOrderInput{Type: ot.String()}

	fields := []field{
		{"Futures symbol (e.g. BTCUSDT)", &in.Symbol},
		{"Side (BUY/SELL)", &in.Side},
		{"Quantity (e.g. 0.001)", &in.Quantity},
	}
	if ot.RequiresStopPrice() {
		fields = append(fields, field{"Stop price", &in.StopPrice})
	}
	if ot.RequiresPrice() {
		fields = append(fields, field{"Limit price", &in.Price})
	}

	for _, f := range fields {
		v, err := s.prompt(f.label)
		if err != nil {
			return formatter.Display{}, err
		}
		*f.dst = v
	}

	result, err := s.svc.PlaceOrder(ctx, in)
	if err != nil {
		return formatter.Error(err), nil
	}
	return formatter.OrderPlaced(kind, result), nil
}

func (s *Shell) orderStatus(ctx context.Context) (formatter.Display, error) {
	symbol, err := s.prompt("Futures symbol (e.g. BTCUSDT)")
	if err != nil {
		return formatter.Display{}, err
	}
	orderID, err := s.prompt("Order ID")
	if err != nil {
		return formatter.Display{}, err
	}

	result, err := s.svc.GetOrderStatus(ctx, order.GetOrderStatusInput{Symbol: symbol, OrderID: orderID})
	if err != nil {
		return formatter.Error(err), nil
	}
	return formatter.OrderStatus(result), nil
}

func (s *Shell) balance(ctx context.Context) formatter.Display {
	balances, err := s.svc.GetBalance(ctx)
	if err != nil {
		return formatter.Error(err)
	}
	return formatter.Balances(balances)
}

func (s *Shell) position(ctx context.Context) (formatter.Display, error) {
	symbol, err := s.prompt("Futures symbol (leave empty for all positions)")
	if err != nil {
		return formatter.Display{}, err
	}

	positions, err := s.svc.GetPosition(ctx, order.GetPositionInput{Symbol: symbol})
	if err != nil {
		return formatter.Error(err), nil
	}
	return formatter.Positions(positions), nil
}

func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprintf(s.out, "%s: ", label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) closed(err error) error {
	if errors.Is(err, errInputClosed) {
		s.logger.Info("input closed, leaving shell")
		fmt.Fprintln(s.out)
		return nil
	}
	return err
}
