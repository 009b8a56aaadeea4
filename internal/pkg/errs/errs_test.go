//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"rentease/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	sentinel := errs.New("dates overlap")

	t.Run("sees marks the stdlib chain hides", func(t *testing.T) {
		marked := errs.Mark(errs.New("db says no"), sentinel)

		assert.True(t, errs.Is(marked, sentinel))
		// The mark is not in the Unwrap chain, which is why handlers
		// must match through errs.Is.
		assert.False(t, errors.Is(marked, sentinel))
	})

	t.Run("follows plain wrap chains", func(t *testing.T) {
		wrapped := errs.Wrap(sentinel, "loading booking")
		assert.True(t, errs.Is(wrapped, sentinel))
	})

	t.Run("marking nil yields the sentinel itself", func(t *testing.T) {
		assert.True(t, errs.Is(errs.Mark(nil, sentinel), sentinel))
	})

	t.Run("unrelated errors do not match", func(t *testing.T) {
		assert.False(t, errs.Is(errs.New("other"), sentinel))
	})
}
