//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"rentease/internal/pkg/clock"
	"rentease/internal/pkg/errs"
	"rentease/internal/pkg/jwt"
	"rentease/internal/pkg/password"
	"rentease/internal/usecase/commands"
	"rentease/internal/usecase/shared"
	"rentease/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, uow *fake.UnitOfWork, email, rawPassword string, active bool) *shared.UserSnapshot {
	t.Helper()
	hash, err := password.HashPassword(rawPassword)
	require.NoError(t, err)

	snap := &shared.UserSnapshot{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Alice",
		LastName:     "Smith",
		IsActive:     active,
	}
	uow.Tx.ReadsStub.UsersByEmail[email] = snap
	return snap
}

func newAuthCommands(uow *fake.UnitOfWork) commands.AuthCommands {
	svc := jwt.NewService("test-secret", time.Hour)
	return commands.NewAuthCommands(uow, svc, clock.NewMockClock(fixedNow))
}

func TestAuthCommands_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success issues a token and stamps last login", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		snap := seedUser(t, uow, "alice@example.com", "s3cret", true)

		cmds := newAuthCommands(uow)

		result, err := cmds.Login(ctx, "alice@example.com", "s3cret")
		require.NoError(t, err)

		assert.Equal(t, snap.ID, result.UserID)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "Alice", result.FirstName)
		assert.Equal(t, "alice@example.com", result.Email)
		assert.Equal(t, []uuid.UUID{snap.ID}, uow.Tx.UserRepo.LastLoginCalls)
	})

	t.Run("email lookup is case insensitive", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		snap := seedUser(t, uow, "alice@example.com", "s3cret", true)

		cmds := newAuthCommands(uow)

		result, err := cmds.Login(ctx, "  Alice@Example.COM ", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, snap.ID, result.UserID)
	})

	t.Run("malformed email", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		cmds := newAuthCommands(uow)

		_, err := cmds.Login(ctx, "not-an-email", "whatever")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		cmds := newAuthCommands(uow)

		_, err := cmds.Login(ctx, "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		seedUser(t, uow, "alice@example.com", "s3cret", true)

		cmds := newAuthCommands(uow)

		_, err := cmds.Login(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
		assert.Empty(t, uow.Tx.UserRepo.LastLoginCalls)
	})

	t.Run("deactivated account", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		seedUser(t, uow, "alice@example.com", "s3cret", false)

		cmds := newAuthCommands(uow)

		_, err := cmds.Login(ctx, "alice@example.com", "s3cret")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})
}

func TestAuthCommands_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token yields a fresh one", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		cmds := newAuthCommands(uow)

		svc := jwt.NewService("test-secret", time.Hour)
		userID := uuid.New()
		token, err := svc.GenerateToken(userID)
		require.NoError(t, err)

		refreshed, err := cmds.Refresh(ctx, token)
		require.NoError(t, err)

		got, err := svc.ValidateToken(refreshed)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("invalid token", func(t *testing.T) {
		cmds := newAuthCommands(fake.NewUnitOfWork())

		_, err := cmds.Refresh(ctx, "bogus")
		assert.True(t, errs.Is(err, errs.ErrInvalidCredentials), "got %v", err)
	})
}
