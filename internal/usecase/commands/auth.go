package commands

import (
	"context"

	"rentease/internal/domain/user"
	"rentease/internal/infra"
	"rentease/internal/pkg/clock"
	"rentease/internal/pkg/errs"
	"rentease/internal/pkg/jwt"
	"rentease/internal/pkg/password"
	"rentease/internal/usecase/shared"

	"github.com/google/uuid"
)

type LoginResult struct {
	UserID    uuid.UUID
	Token     string
	FirstName string
	LastName  string
	Email     string
}

type AuthCommands interface {
	Login(ctx context.Context, email, rawPassword string) (*LoginResult, error)
	Refresh(ctx context.Context, token string) (string, error)
}

type authCommandsImpl struct {
	uow   shared.UnitOfWork
	jwt   *jwt.Service
	clock clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, jwtSvc *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{uow: uow, jwt: jwtSvc, clock: clk}
}

func (c *authCommandsImpl) Login(ctx context.Context, rawEmail, rawPassword string) (*LoginResult, error) {
	email, err := user.NewEmail(rawEmail)
	if err != nil {
		// Malformed addresses read the same as a failed login.
		return nil, errs.ErrInvalidCredentials
	}

	snap, err := c.uow.CommandReads().UserByEmail(ctx, email.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !snap.IsActive {
		return nil, errs.ErrInvalidCredentials
	}

	if err := password.ComparePassword(snap.PasswordHash, rawPassword); err != nil {
		return nil, errs.ErrInvalidCredentials
	}

	token, err := c.jwt.GenerateToken(snap.ID)
	if err != nil {
		return nil, errs.Wrap(err, "generate token")
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, tx.DB(), snap.ID, c.clock.Now())
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &LoginResult{
		UserID:    snap.ID,
		Token:     token,
		FirstName: snap.FirstName,
		LastName:  snap.LastName,
		Email:     snap.Email,
	}, nil
}

func (c *authCommandsImpl) Refresh(ctx context.Context, token string) (string, error) {
	userID, err := c.jwt.ValidateToken(token)
	if err != nil {
		return "", errs.Mark(err, errs.ErrInvalidCredentials)
	}
	return c.jwt.GenerateToken(userID)
}
