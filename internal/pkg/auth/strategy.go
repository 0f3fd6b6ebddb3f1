package auth

import (
	"time"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
)

// Claims is what a session token asserts about its bearer.
type Claims struct {
	UserID    string     `json:"uid"`
	Role      model.Role `json:"role"`
	CanteenID string     `json:"cid,omitempty"`
	ExpiresAt int64      `json:"exp"`
}

// Actor converts claims into the acting principal.
func (c Claims) Actor() model.Actor {
	return model.Actor{UserID: c.UserID, Role: c.Role, CanteenID: c.CanteenID}
}

// Strategy issues and verifies session tokens.
type Strategy interface {
	IssueToken(actor model.Actor) (string, error)
	ParseToken(token string) (Claims, error)
	Name() string
}

type Options struct {
	TTL time.Duration
	Now func() time.Time
}
