package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/errors"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/repository"
	pkgAuth "github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/pkg/auth"
)

// AuthUseCase handles account registration and session tokens.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// RegisterStudent creates a student account keyed by roll number and returns a session token.
func (u *AuthUseCase) RegisterStudent(ctx context.Context, rollNumber, name, password string) (*model.User, string, error) {
	login := normalizeLogin(rollNumber)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordTooLong) || errors.Is(err, pkgAuth.ErrEmptyPassword) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	usr := &model.User{
		UserID:       model.NewUserID(),
		Login:        login,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Role:         model.RoleStudent,
	}
	if err := u.users.Create(ctx, usr); err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.Principal())
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// Login validates credentials and returns a session token. Students sign in
// with their roll number, staff with their email.
func (u *AuthUseCase) Login(ctx context.Context, login, password string) (*model.User, string, error) {
	login = normalizeLogin(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.Principal())
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// ParseToken returns the actor a session token was issued to.
func (u *AuthUseCase) ParseToken(token string) (model.Actor, error) {
	if token == "" {
		return model.Actor{}, pkgAuth.ErrInvalidToken
	}
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return model.Actor{}, err
	}
	return claims.Actor(), nil
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id string) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

func normalizeLogin(login string) string {
	login = strings.TrimSpace(login)
	if strings.Contains(login, "@") {
		return strings.ToLower(login)
	}
	return strings.ToUpper(login)
}
