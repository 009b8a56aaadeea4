//go:build unit

package user_test

import (
	"testing"

	"rentease/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("valid addresses", func(t *testing.T) {
		for _, s := range []string{
			"alice@example.com",
			"a.b+tag@sub.domain.org",
			"x@y.io",
		} {
			e, err := user.NewEmail(s)
			require.NoError(t, err, s)
			assert.Equal(t, s, e.String())
		}
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		e, err := user.NewEmail("  Alice@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", e.String())
	})

	t.Run("invalid addresses", func(t *testing.T) {
		for _, s := range []string{
			"",
			"plain",
			"@example.com",
			"alice@",
			"alice@example",
			"al ice@example.com",
		} {
			_, err := user.NewEmail(s)
			assert.ErrorIs(t, err, user.ErrInvalidEmail, s)
		}
	})
}
