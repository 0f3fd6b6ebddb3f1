package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid auth token")

const defaultTTL = 24 * time.Hour

var encoding = base64.RawURLEncoding

// HMACStrategy signs claims with HMAC-SHA256. Tokens have the form
// base64(claims JSON) "." base64(signature).
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &HMACStrategy{secret: []byte(secret), ttl: ttl, now: now}
}

// IssueToken generates signed auth token for the actor.
func (s *HMACStrategy) IssueToken(actor model.Actor) (string, error) {
	if actor.UserID == "" {
		return "", fmt.Errorf("issue token: empty user id")
	}
	claims := Claims{
		UserID:    actor.UserID,
		Role:      actor.Role,
		CanteenID: actor.CanteenID,
		ExpiresAt: s.now().Add(s.ttl).Unix(),
	}
	raw, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("encode claims: %w", err)
	}
	payload := encoding.EncodeToString(raw)
	return payload + "." + s.sign(payload), nil
}

// ParseToken validates token and returns its claims.
func (s *HMACStrategy) ParseToken(token string) (Claims, error) {
	payload, sig, ok := strings.Cut(token, ".")
	if !ok || payload == "" || sig == "" {
		return Claims{}, ErrInvalidToken
	}
	if !hmac.Equal([]byte(s.sign(payload)), []byte(sig)) {
		return Claims{}, ErrInvalidToken
	}

	raw, err := encoding.DecodeString(payload)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if claims.UserID == "" {
		return Claims{}, ErrInvalidToken
	}
	switch claims.Role {
	case model.RoleStudent, model.RoleCrew, model.RoleManagement:
	default:
		return Claims{}, ErrInvalidToken
	}
	if !time.Unix(claims.ExpiresAt, 0).After(s.now()) {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac-sha256"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return encoding.EncodeToString(mac.Sum(nil))
}
