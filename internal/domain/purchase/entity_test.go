package purchase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPurchase(t *testing.T) {
	p := NewPurchase(201, 101, 3, 2590, 0)

	assert.Equal(t, uint(201), p.CustomerID)
	assert.Equal(t, uint(101), p.BookID)
	assert.Equal(t, int64(7770), p.Total)
	assert.Nil(t, p.ExpiresAt)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestNewPurchase_WithExpiry(t *testing.T) {
	p := NewPurchase(201, 101, 1, 2590, 6)

	require.NotNil(t, p.ExpiresAt)
	assert.Equal(t, p.CreatedAt.AddDate(0, 6, 0), *p.ExpiresAt)
}
