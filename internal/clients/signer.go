package clients

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signer signs request payloads with HMAC-SHA256 over the API secret, the
// scheme the futures API expects in the signature parameter.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign returns the hex signature of payload, the url-encoded query or body.
func (s *Signer) Sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
