package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecrStock(t *testing.T) {
	b := NewBook("Dune", "Frank Herbert", "sci-fi", 2590, 5)

	require.NoError(t, b.DecrStock(3))
	assert.Equal(t, 2, b.Stock)

	err := b.DecrStock(3)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 2, b.Stock)
}

func TestDecrStock_RejectsNonPositive(t *testing.T) {
	b := NewBook("Dune", "Frank Herbert", "", 2590, 5)

	assert.ErrorIs(t, b.DecrStock(0), ErrInvalidQuantity)
	assert.ErrorIs(t, b.DecrStock(-1), ErrInvalidQuantity)
	assert.Equal(t, 5, b.Stock)
}

func TestIncrStock(t *testing.T) {
	b := NewBook("Dune", "Frank Herbert", "", 2590, 5)

	require.NoError(t, b.IncrStock(10))
	assert.Equal(t, 15, b.Stock)
	assert.ErrorIs(t, b.IncrStock(0), ErrInvalidQuantity)
}

func TestAdjustStock(t *testing.T) {
	b := NewBook("Dune", "Frank Herbert", "", 2590, 5)

	require.NoError(t, b.AdjustStock(3))
	assert.Equal(t, 8, b.Stock)

	require.NoError(t, b.AdjustStock(-8))
	assert.Equal(t, 0, b.Stock)

	err := b.AdjustStock(-1)
	assert.ErrorIs(t, err, ErrInvalidStockDelta)
	assert.Equal(t, 0, b.Stock)
}

func TestAdjustStock_ZeroIsNoOp(t *testing.T) {
	b := NewBook("Dune", "Frank Herbert", "", 2590, 5)
	before := b.UpdatedAt

	require.NoError(t, b.AdjustStock(0))
	assert.Equal(t, 5, b.Stock)
	assert.Equal(t, before, b.UpdatedAt)
}

func TestUpdatePrice(t *testing.T) {
	b := NewBook("Dune", "Frank Herbert", "", 2590, 5)

	require.NoError(t, b.UpdatePrice(0)) // promotional price
	assert.Equal(t, int64(0), b.Price)

	assert.ErrorIs(t, b.UpdatePrice(-1), ErrInvalidPrice)
}
