package postgres

import (
	"context"

	domainErrors "github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/errors"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

const userColumns = `user_id, login, name, password_hash, role, canteen_id, created_at`

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	const query = `INSERT INTO users (user_id, login, name, password_hash, role, canteen_id)
                   VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		user.UserID, user.Login, user.Name, user.PasswordHash, user.Role, user.CanteenID,
	).Scan(&user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE login=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE user_id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func scanUser(row rowScanner) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.UserID, &u.Login, &u.Name, &u.PasswordHash, &u.Role, &u.CanteenID, &u.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}
