// Package web is the browser form shell.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/chilly266futon/futuresBot/internal/domain"
	"github.com/chilly266futon/futuresBot/internal/dto/order"
	"github.com/chilly266futon/futuresBot/internal/formatter"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type OrderService interface {
	PlaceOrder(ctx context.Context, in order.CreateOrderInput) (domain.OrderResult, error)
	GetOrderStatus(ctx context.Context, in order.GetOrderStatusInput) (domain.OrderResult, error)
	GetBalance(ctx context.Context) (domain.Balances, error)
	GetPosition(ctx context.Context, in order.GetPositionInput) ([]domain.Position, error)
}

const (
	opMarket    = "market"
	opLimit     = "limit"
	opStopLimit = "stop_limit"
	opStatus    = "status"
	opBalance   = "balance"
	opPosition  = "position"
)

type operation struct {
	Value string
	Label string
}

var operations = []operation{
	{opMarket, "Place Market Order"},
	{opLimit, "Place Limit Order"},
	{opStopLimit, "Place Stop-Limit Order"},
	{opStatus, "Check Order Status"},
	{opBalance, "Get Account Balance"},
	{opPosition, "Get Position Information"},
}

type formValues struct {
	Symbol    string
	Side      string
	Quantity  string
	Price     string
	StopPrice string
	OrderID   string
}

type pageData struct {
	Operations []operation
	Selected   string
	Form       formValues
	Result     *formatter.Display
}

type Handler struct {
	svc    OrderService
	logger *zap.Logger
}

func NewHandler(svc OrderService, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, pageData{
		Operations: operations,
		Selected:   opMarket,
		Form:       formValues{Symbol: "BTCUSDT", Side: "BUY"},
	})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := formValues{
		Symbol:    strings.TrimSpace(r.PostFormValue("symbol")),
		Side:      strings.TrimSpace(r.PostFormValue("side")),
		Quantity:  strings.TrimSpace(r.PostFormValue("quantity")),
		Price:     strings.TrimSpace(r.PostFormValue("price")),
		StopPrice: strings.TrimSpace(r.PostFormValue("stop_price")),
		OrderID:   strings.TrimSpace(r.PostFormValue("order_id")),
	}
	op := r.PostFormValue("operation")

	display, ok := h.run(r.Context(), op, form)
	if !ok {
		http.Error(w, "unknown operation", http.StatusBadRequest)
		return
	}

	h.render(w, http.StatusOK, pageData{
		Operations: operations,
		Selected:   op,
		Form:       form,
		Result:     &display,
	})
}

func (h *Handler) run(ctx context.Context, op string, form formValues) (formatter.Display, bool) {
	switch op {
	case opMarket, opLimit, opStopLimit:
		in := order.CreateOrderInput{
			Symbol:   form.Symbol,
			Side:     form.Side,
			Quantity: form.Quantity,
		}
		kind := "market"
		switch op {
		case opMarket:
			in.Type = domain.OrderTypeMarket.String()
		case opLimit:
			in.Type = domain.OrderTypeLimit.String()
			in.Price = form.Price
			kind = "limit"
		case opStopLimit:
			in.Type = domain.OrderTypeStopLimit.String()
			in.Price = form.Price
			in.StopPrice = form.StopPrice
			kind = "stop-limit"
		}

		result, err := h.svc.PlaceOrder(ctx, in)
		if err != nil {
			return formatter.Error(err), true
		}
		return formatter.OrderPlaced(kind, result), true

	case opStatus:
		result, err := h.svc.GetOrderStatus(ctx, order.GetOrderStatusInput{Symbol: form.Symbol, OrderID: form.OrderID})
		if err != nil {
			return formatter.Error(err), true
		}
		return formatter.OrderStatus(result), true

	case opBalance:
		balances, err := h.svc.GetBalance(ctx)
		if err != nil {
			return formatter.Error(err), true
		}
		return formatter.Balances(balances), true

	case opPosition:
		positions, err := h.svc.GetPosition(ctx, order.GetPositionInput{Symbol: form.Symbol})
		if err != nil {
			return formatter.Error(err), true
		}
		return formatter.Positions(positions), true

	default:
		return formatter.Display{}, false
	}
}

func (h *Handler) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		h.logger.Error("render page", zap.Error(err))
	}
}
