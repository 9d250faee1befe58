package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOrderType    = errors.New("invalid order type")
	ErrInvalidOrderSide    = errors.New("invalid order side")
	ErrMissingCredentials  = errors.New("API key and API secret are required")
	ErrProductionEndpoint  = errors.New("only the futures testnet endpoint is allowed")
	ErrMalformedResponse   = errors.New("malformed response")
	ErrUnknownSymbol       = errors.New("unknown futures symbol")
	ErrSymbolsNotAvailable = errors.New("symbol catalogue not available")
)

type ErrorKind uint8

const (
	ErrorKindUnspecified ErrorKind = iota
	ErrorKindConfiguration
	ErrorKindValidation
	ErrorKindExchange
	ErrorKindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindConfiguration:
		return "ConfigurationError"
	case ErrorKindValidation:
		return "ValidationError"
	case ErrorKindExchange:
		return "ExchangeError"
	case ErrorKindTransport:
		return "TransportError"
	default:
		return "UnspecifiedError"
	}
}

// ErrorReport is the single error shape handed to the shells.
type ErrorReport struct {
	Kind    ErrorKind
	Message string
	// Code is the exchange error code, zero when the exchange gave none.
	Code int
	// Context is the originating request or query as redacted key=value text.
	Context string
	Err     error
}

func (e *ErrorReport) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s: %s (code %d)", e.Kind, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ErrorReport) Unwrap() error {
	return e.Err
}

// WithContext returns a copy of e with Context set.
func (e *ErrorReport) WithContext(context string) *ErrorReport {
	cp := *e
	cp.Context = context
	return &cp
}

func NewConfigurationError(err error, format string, args ...any) *ErrorReport {
	return &ErrorReport{Kind: ErrorKindConfiguration, Message: fmt.Sprintf(format, args...), Err: err}
}

func NewValidationError(format string, args ...any) *ErrorReport {
	return &ErrorReport{Kind: ErrorKindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewExchangeError(code int, message string) *ErrorReport {
	return &ErrorReport{Kind: ErrorKindExchange, Code: code, Message: message}
}

func NewTransportError(err error, format string, args ...any) *ErrorReport {
	return &ErrorReport{Kind: ErrorKindTransport, Message: fmt.Sprintf(format, args...), Err: err}
}

// AsReport returns err as an *ErrorReport. Errors of any other type are
// reported as transport failures.
func AsReport(err error) *ErrorReport {
	if err == nil {
		return nil
	}
	var report *ErrorReport
	if errors.As(err, &report) {
		return report
	}
	return NewTransportError(err, "%v", err)
}

// IsKind reports whether err is an *ErrorReport of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var report *ErrorReport
	return errors.As(err, &report) && report.Kind == kind
}
