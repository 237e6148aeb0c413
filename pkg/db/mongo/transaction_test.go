package mongo

import (
	"errors"
	"fmt"
	"testing"

	apperrors "hms/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionError(t *testing.T) {
	t.Run("nil commits", func(t *testing.T) {
		assert.NoError(t, transactionError(nil))
	})

	t.Run("app error is returned unchanged", func(t *testing.T) {
		notFound := apperrors.NotFoundWithID("room type", "deluxe")

		err := transactionError(notFound)

		assert.Same(t, notFound, err)
	})

	t.Run("driver error is wrapped", func(t *testing.T) {
		cause := errors.New("write conflict")

		err := transactionError(cause)

		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "transaction failed")
		assert.False(t, apperrors.IsAppError(err))
	})

	t.Run("sentinel survives wrapping", func(t *testing.T) {
		sentinel := errors.New("room type not found")

		err := transactionError(fmt.Errorf("%w: %s", sentinel, "deluxe"))

		assert.ErrorIs(t, err, sentinel)
	})
}
