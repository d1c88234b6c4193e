package repository

import (
	"context"

	"rentalhub/internal/domain/user"
	"rentalhub/internal/infra"
	"rentalhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*readmodel.AuthorizedUserRM, string, error) {
	var (
		rm   readmodel.AuthorizedUserRM
		hash string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, name, role, is_active, password_hash
		FROM users WHERE email = $1`, email.Value(),
	).Scan(&rm.ID, &rm.Email, &rm.Name, &rm.Role, &rm.IsActive, &hash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return &rm, hash, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.AuthorizedUserRM, error) {
	var rm readmodel.AuthorizedUserRM
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, name, role, is_active
		FROM users WHERE id = $1`, id,
	).Scan(&rm.ID, &rm.Email, &rm.Name, &rm.Role, &rm.IsActive)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &rm, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_login_at = now() WHERE id = $1`, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
