package test

import (
	"context"
	"strings"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
	pkgAuth "github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return pkgAuth.ErrPasswordMismatch
	}
	return nil
}

// StrategyStub issues "token:<user id>:<role>:<canteen>" strings and parses them back.
type StrategyStub struct {
	IssueFn func(model.Actor) (string, error)
	ParseFn func(string) (pkgAuth.Claims, error)
	NameVal string
}

func (s StrategyStub) IssueToken(actor model.Actor) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(actor)
	}
	return "token:" + actor.UserID + ":" + string(actor.Role) + ":" + actor.CanteenID, nil
}

func (s StrategyStub) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	actor, ok := ParseStubToken(token)
	if !ok {
		return pkgAuth.Claims{}, pkgAuth.ErrInvalidToken
	}
	return pkgAuth.Claims{UserID: actor.UserID, Role: actor.Role, CanteenID: actor.CanteenID}, nil
}

func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// StubToken renders the token StrategyStub would issue for actor.
func StubToken(actor model.Actor) string {
	token, _ := StrategyStub{}.IssueToken(actor)
	return token
}

// ParseStubToken decodes tokens produced by StubToken.
func ParseStubToken(token string) (model.Actor, bool) {
	parts := strings.SplitN(token, ":", 4)
	if len(parts) != 4 || parts[0] != "token" || parts[1] == "" {
		return model.Actor{}, false
	}
	return model.Actor{UserID: parts[1], Role: model.Role(parts[2]), CanteenID: parts[3]}, true
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	Actor   model.Actor
	Err     error
	ParseFn func(string) (model.Actor, error)
}

func (s TokenParserStub) ParseToken(token string) (model.Actor, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return model.Actor{}, s.Err
	}
	return s.Actor, nil
}

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn func(context.Context, string, string, string) (string, error)
	LoginFn    func(context.Context, string, string) (string, error)
	ParseFn    func(string) (model.Actor, error)
	MeFn       func(context.Context, model.Actor) (*model.User, error)
}

func (s AuthFacadeStub) RegisterStudent(ctx context.Context, rollNumber, name, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, rollNumber, name, password)
	}
	return StubToken(model.Actor{UserID: "user_" + rollNumber, Role: model.RoleStudent}), nil
}

func (s AuthFacadeStub) Login(ctx context.Context, login, password string) (string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, login, password)
	}
	return StubToken(model.Actor{UserID: "user_" + login, Role: model.RoleStudent}), nil
}

// ParseToken decodes StubToken strings unless overridden.
func (s AuthFacadeStub) ParseToken(token string) (model.Actor, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	actor, ok := ParseStubToken(token)
	if !ok {
		return model.Actor{}, pkgAuth.ErrInvalidToken
	}
	return actor, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}

func (s AuthFacadeStub) Me(ctx context.Context, actor model.Actor) (*model.User, error) {
	if s.MeFn != nil {
		return s.MeFn(ctx, actor)
	}
	return &model.User{UserID: actor.UserID, Login: "CB.EN.U4CSE21001", Name: "Asha", PasswordHash: "hash:secret", Role: actor.Role, CanteenID: actor.CanteenID}, nil
}
