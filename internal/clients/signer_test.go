package clients

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSigner_Sign(t *testing.T) {
	// Example key pair and payload from the exchange's API documentation.
	s := NewSigner("NhqPtmdSJYdKjVHjA7PZj4Mge3R5YNiP1e3UZjInClVN65XAbvqqM6A7H5fATj0j")

	sig := s.Sign("symbol=LTCBTC&side=BUY&type=LIMIT&timeInForce=GTC&quantity=1&price=0.1&recvWindow=5000&timestamp=1499827319559")

	assert.Equal(t, "c8db56825ae71d6d79447849e617115f4a920fa2acdcab2b053c4b2838bd6b71", sig)
}

func TestSigner_DependsOnSecret(t *testing.T) {
	payload := "symbol=BTCUSDT&timestamp=1"
	assert.NotEqual(t, NewSigner("a").Sign(payload), NewSigner("b").Sign(payload))
	assert.Equal(t, NewSigner("a").Sign(payload), NewSigner("a").Sign(payload))
}
