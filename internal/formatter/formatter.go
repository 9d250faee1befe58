// Package formatter renders results and errors for both shells.
package formatter

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/chilly266futon/futuresBot/internal/domain"
)

// Display is a rendered outcome: a title line followed by detail lines.
type Display struct {
	Title   string
	Lines   []string
	IsError bool
}

func (d Display) String() string {
	var b strings.Builder
	b.WriteString(d.Title)
	for _, line := range d.Lines {
		b.WriteByte('\n')
		b.WriteString(line)
	}
	return b.String()
}

func Order(title string, r domain.OrderResult) Display {
	lines := []string{
		fmt.Sprintf("Order ID: %d", r.OrderID),
		statusLine(r.Status),
		fmt.Sprintf("Symbol: %s", r.Symbol),
	}
	if r.Side != "" {
		lines = append(lines, "Side: "+r.Side)
	}
	if r.Type != "" {
		lines = append(lines, "Type: "+r.Type)
	}
	lines = append(lines, fmt.Sprintf("Quantity: %s (executed %s)", r.OrigQty, r.ExecutedQty))
	if !r.Price.IsZero() {
		lines = append(lines, "Price: "+r.Price.String())
	}
	if !r.StopPrice.IsZero() {
		lines = append(lines, "Stop Price: "+r.StopPrice.String())
	}
	if !r.AvgPrice.IsZero() {
		lines = append(lines, "Average Price: "+r.AvgPrice.String())
	}
	if r.TimeInForce != "" {
		lines = append(lines, "Time In Force: "+r.TimeInForce)
	}
	if r.ClientOrderID != "" {
		lines = append(lines, "Client Order ID: "+r.ClientOrderID)
	}
	if !r.UpdateTime.IsZero() {
		lines = append(lines, "Updated: "+r.UpdateTime.Format(time.RFC3339))
	}

	if len(r.Raw) > 0 {
		lines = append(lines, "Response:")
		for _, key := range slices.Sorted(maps.Keys(r.Raw)) {
			lines = append(lines, fmt.Sprintf("  %s: %v", key, r.Raw[key]))
		}
	}

	return Display{Title: title, Lines: lines}
}

func statusLine(s domain.OrderStatus) string {
	if s.IsFinal() {
		return fmt.Sprintf("Status: %s (final)", s)
	}
	return fmt.Sprintf("Status: %s", s)
}

func OrderPlaced(kind string, r domain.OrderResult) Display {
	return Order(fmt.Sprintf("Futures %s order placed", kind), r)
}

func OrderStatus(r domain.OrderResult) Display {
	return Order("Futures order status", r)
}

// Balances lists assets with a non-zero balance.
func Balances(b domain.Balances) Display {
	var lines []string
	for _, asset := range b.Assets() {
		bal := b[asset]
		if bal.Balance.IsZero() {
			continue
		}
		lines = append(lines, fmt.Sprintf("Asset: %s, Balance: %s, Available: %s, Unrealized PnL: %s",
			bal.Asset, bal.Balance, bal.Available, bal.UnrealizedPnL))
	}
	if len(lines) == 0 {
		lines = []string{"No non-zero balances found."}
	}
	return Display{Title: "Futures account balance", Lines: lines}
}

// Positions lists open positions only.
func Positions(positions []domain.Position) Display {
	var lines []string
	for _, p := range positions {
		if !p.IsOpen() {
			continue
		}
		lines = append(lines,
			"Symbol: "+p.Symbol,
			fmt.Sprintf("Direction: %s", p.Direction()),
			"Position Amount: "+p.Amount.String(),
			"Entry Price: "+p.EntryPrice.String(),
			"Mark Price: "+p.MarkPrice.String(),
			"Unrealized PnL: "+p.UnrealizedPnL.String(),
			fmt.Sprintf("Leverage: %dx", p.Leverage),
			"-----------------------",
		)
	}
	if len(lines) == 0 {
		lines = []string{"No open positions found."}
	}
	return Display{Title: "Futures position information", Lines: lines}
}

func Error(err error) Display {
	report := domain.AsReport(err)
	if report == nil {
		return Display{Title: "Error", IsError: true}
	}

	lines := []string{"Message: " + report.Message}
	if report.Code != 0 {
		lines = append(lines, fmt.Sprintf("Code: %d", report.Code))
	}
	if report.Context != "" {
		lines = append(lines, "Request: "+report.Context)
	}
	return Display{Title: report.Kind.String(), Lines: lines, IsError: true}
}
