package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorReport_Error(t *testing.T) {
	assert.Equal(t, "ValidationError: quantity is required", NewValidationError("quantity is required").Error())
	assert.Equal(t, "ExchangeError: Invalid API-key (code -2015)", NewExchangeError(-2015, "Invalid API-key").Error())
}

func TestAsReport(t *testing.T) {
	assert.Nil(t, AsReport(nil))

	wrapped := fmt.Errorf("place order: %w", NewExchangeError(-1013, "Filter failure: LOT_SIZE"))
	report := AsReport(wrapped)
	require.NotNil(t, report)
	assert.Equal(t, ErrorKindExchange, report.Kind)
	assert.Equal(t, -1013, report.Code)

	plain := AsReport(errors.New("connection reset"))
	assert.Equal(t, ErrorKindTransport, plain.Kind)
	assert.Equal(t, "connection reset", plain.Message)
}

func TestErrorReport_UnwrapAndKind(t *testing.T) {
	err := NewConfigurationError(ErrMissingCredentials, "missing required env: API_SECRET")

	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.True(t, IsKind(err, ErrorKindConfiguration))
	assert.False(t, IsKind(err, ErrorKindValidation))
}

func TestErrorReport_WithContextCopies(t *testing.T) {
	base := NewValidationError("side must be BUY or SELL")
	withCtx := base.WithContext("symbol=BTCUSDT")

	assert.Empty(t, base.Context)
	assert.Equal(t, "symbol=BTCUSDT", withCtx.Context)
}

func TestParseEnums(t *testing.T) {
	ot, err := ParseOrderType(" stop-limit ")
	require.NoError(t, err)
	assert.Equal(t, OrderTypeStopLimit, ot)
	assert.True(t, ot.RequiresPrice())
	assert.True(t, ot.RequiresStopPrice())

	_, err = ParseOrderType("STOP_MARKET")
	assert.ErrorIs(t, err, ErrInvalidOrderType)

	side, err := ParseOrderSide("sell")
	require.NoError(t, err)
	assert.Equal(t, "SELL", side.String())

	_, err = ParseOrderSide("hold")
	assert.ErrorIs(t, err, ErrInvalidOrderSide)
}

func TestCredentials_StringRedacts(t *testing.T) {
	c := Credentials{APIKey: "key-123", APISecret: "secret-456"}

	out := fmt.Sprintf("%v %+v %#v", c, c, c)
	assert.NotContains(t, out, "key-123")
	assert.NotContains(t, out, "secret-456")
	assert.True(t, c.Complete())
	assert.False(t, Credentials{APIKey: "k"}.Complete())
}
