package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHMACVerifierRequiresSecret(t *testing.T) {
	if _, err := NewHMACVerifier("", testLogger()); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected empty secret error, got %v", err)
	}
}

func TestHMACVerifierVerify(t *testing.T) {
	verifier, err := NewHMACVerifier("secret", testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	valid := verifier.Sign("order_1", "pay_1")

	cases := []struct {
		name    string
		orderID string
		ref     Reference
		want    bool
	}{
		{"valid", "order_1", Reference{PaymentID: "pay_1", Signature: valid}, true},
		{"other order", "order_2", Reference{PaymentID: "pay_1", Signature: valid}, false},
		{"other payment", "order_1", Reference{PaymentID: "pay_2", Signature: valid}, false},
		{"not hex", "order_1", Reference{PaymentID: "pay_1", Signature: "zz"}, false},
		{"missing signature", "order_1", Reference{PaymentID: "pay_1"}, false},
		{"missing payment id", "order_1", Reference{Signature: valid}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := verifier.Verify(context.Background(), tc.orderID, tc.ref)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, ok)
			}
		})
	}

	other, _ := NewHMACVerifier("other", testLogger())
	if ok, _ := other.Verify(context.Background(), "order_1", Reference{PaymentID: "pay_1", Signature: valid}); ok {
		t.Fatal("expected signature from another secret to be rejected")
	}
}

func TestHMACVerifierHonoursContext(t *testing.T) {
	verifier, _ := NewHMACVerifier("secret", testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := verifier.Verify(ctx, "order_1", Reference{PaymentID: "p", Signature: "00"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestNewVerifierUsesConfig(t *testing.T) {
	cfg := &config.Config{PaymentSecret: "secret"}
	verifier, err := newVerifier(verifierParams{Config: cfg, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verifier == nil {
		t.Fatal("expected verifier instance")
	}

	if _, err := newVerifier(verifierParams{Config: &config.Config{}, Logger: testLogger()}); err == nil {
		t.Fatal("expected error for missing secret")
	}
}
