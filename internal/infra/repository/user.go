package repository

import (
	"context"
	"time"

	"rentease/internal/infra"
	"rentease/internal/infra/db"
	"rentease/internal/pkg/pgconv"
	"rentease/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const updateLastLoginQuery = `
UPDATE users SET last_login = $1 WHERE id = $2`

func (r *UserRepository) UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, at time.Time) error {
	_, err := dbtx.Exec(ctx, updateLastLoginQuery, pgconv.TimeToPgtype(at), userID)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}

var _ shared.UserRepository = (*UserRepository)(nil)
