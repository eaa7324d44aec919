package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stxcorp/orders-ms/internal/service/models/order"
)

func TestParseStatus(t *testing.T) {
	for _, status := range order.Statuses() {
		parsed, err := order.ParseStatus(status.String())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := order.ParseStatus("SHIPPED")
	require.ErrorIs(t, err, order.ErrInvalidStatus)

	_, err = order.ParseStatus("")
	require.ErrorIs(t, err, order.ErrInvalidStatus)
}

func TestStatusValid(t *testing.T) {
	assert.True(t, order.StatusPending.Valid())
	assert.True(t, order.StatusCancelled.Valid())
	assert.False(t, order.Status("paid").Valid())
	assert.False(t, order.Status("").Valid())
}
