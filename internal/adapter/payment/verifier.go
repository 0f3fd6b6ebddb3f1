package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
)

// ErrEmptySecret is returned when the verifier has no key configured.
var ErrEmptySecret = errors.New("payment secret is empty")

// Reference carries what the gateway returned to the client after checkout.
type Reference struct {
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// Verifier confirms that a payment reference really settles the order.
type Verifier interface {
	Verify(ctx context.Context, orderID string, ref Reference) (bool, error)
}

// HMACVerifier checks hex(HMAC-SHA256(secret, orderID|paymentID)) signatures.
type HMACVerifier struct {
	secret []byte
	logger *slog.Logger
}

// NewHMACVerifier creates verifier bound to secret.
func NewHMACVerifier(secret string, logger *slog.Logger) (*HMACVerifier, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &HMACVerifier{secret: []byte(secret), logger: logger}, nil
}

// Verify reports whether the signature matches. Malformed input is a mismatch, not an error.
func (v *HMACVerifier) Verify(ctx context.Context, orderID string, ref Reference) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if ref.PaymentID == "" || ref.Signature == "" {
		return false, nil
	}
	provided, err := hex.DecodeString(ref.Signature)
	if err != nil {
		v.logger.Warn("malformed payment signature", slog.String("order_id", orderID))
		return false, nil
	}
	return hmac.Equal(provided, v.mac(orderID, ref.PaymentID)), nil
}

// Sign produces the signature the gateway would attach for orderID and paymentID.
func (v *HMACVerifier) Sign(orderID, paymentID string) string {
	return hex.EncodeToString(v.mac(orderID, paymentID))
}

func (v *HMACVerifier) mac(orderID, paymentID string) []byte {
	h := hmac.New(sha256.New, v.secret)
	h.Write([]byte(orderID + "|" + paymentID))
	return h.Sum(nil)
}
