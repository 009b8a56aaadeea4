package readstore

import (
	"context"

	"rentease/internal/infra"
	"rentease/internal/infra/db"
	"rentease/internal/pkg/pgconv"
	"rentease/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

const userByEmailQuery = `
SELECT id, email, password_hash, first_name, last_name, is_active
FROM users
WHERE email = $1`

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	var snap shared.UserSnapshot
	err := r.db.QueryRow(ctx, userByEmailQuery, email).Scan(
		&snap.ID, &snap.Email, &snap.PasswordHash,
		&snap.FirstName, &snap.LastName, &snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return &snap, nil
}

const userByIDQuery = `
SELECT id, email, password_hash, first_name, last_name, is_active
FROM users
WHERE id = $1`

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	var snap shared.UserSnapshot
	err := r.db.QueryRow(ctx, userByIDQuery, id).Scan(
		&snap.ID, &snap.Email, &snap.PasswordHash,
		&snap.FirstName, &snap.LastName, &snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &snap, nil
}
