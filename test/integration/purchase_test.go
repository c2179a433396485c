package integration

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuyBook(t *testing.T) {
	base := apiURL(t)
	token := loginTestStaff(t, base, "seller")

	t.Run("successful purchase decrements stock", func(t *testing.T) {
		bookID := addTestBook(t, base, token, "Purchase Flow", 2590, 10)
		customerID := registerTestCustomer(t, base, token, "buyer")

		resp := postJSON(t, base+"/purchases", map[string]interface{}{
			"customer": fmt.Sprintf("%d", customerID),
			"book":     fmt.Sprintf("%d", bookID),
			"quantity": 3,
		}, token)
		require.Equal(t, 0, resp.Code, "purchase failed: %s", resp.Message)

		var data PurchaseData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotZero(t, data.PurchaseID)
		assert.Equal(t, int64(2590*3), data.Total)
		assert.Equal(t, 7, data.RemainingStock)

		assert.Equal(t, 7, getBook(t, base, bookID).Stock)
	})

	t.Run("insufficient stock is rejected and changes nothing", func(t *testing.T) {
		bookID := addTestBook(t, base, token, "Scarce Title", 2590, 2)
		customerID := registerTestCustomer(t, base, token, "greedy")

		resp := postJSON(t, base+"/purchases", map[string]interface{}{
			"customer": fmt.Sprintf("%d", customerID),
			"book":     fmt.Sprintf("%d", bookID),
			"quantity": 5,
		}, token)
		assert.NotEqual(t, 0, resp.Code)
		assert.Contains(t, resp.Message, "insufficient stock")

		assert.Equal(t, 2, getBook(t, base, bookID).Stock)
	})

	t.Run("non-positive quantity is rejected", func(t *testing.T) {
		bookID := addTestBook(t, base, token, "Quantity Check", 2590, 5)
		customerID := registerTestCustomer(t, base, token, "zero")

		for _, qty := range []int{0, -1} {
			resp := postJSON(t, base+"/purchases", map[string]interface{}{
				"customer": fmt.Sprintf("%d", customerID),
				"book":     fmt.Sprintf("%d", bookID),
				"quantity": qty,
			}, token)
			assert.NotEqual(t, 0, resp.Code, "quantity %d must be rejected", qty)
		}
		assert.Equal(t, 5, getBook(t, base, bookID).Stock)
	})

	t.Run("unknown customer is rejected", func(t *testing.T) {
		bookID := addTestBook(t, base, token, "Orphan Purchase", 2590, 5)

		resp := postJSON(t, base+"/purchases", map[string]interface{}{
			"customer": "no such customer",
			"book":     fmt.Sprintf("%d", bookID),
			"quantity": 1,
		}, token)
		assert.NotEqual(t, 0, resp.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		resp := postJSON(t, base+"/purchases", map[string]interface{}{
			"customer": "1", "book": "1", "quantity": 1,
		}, "")
		assert.NotEqual(t, 0, resp.Code)
	})
}

// TestConcurrentBuys hammers one book with parallel purchases. The row lock
// inside the purchase transaction must keep the ledger and the stock count
// consistent: exactly stock-many units sell, never more.
func TestConcurrentBuys(t *testing.T) {
	base := apiURL(t)
	token := loginTestStaff(t, base, "load")

	const stock = 5
	const buyers = 10

	bookID := addTestBook(t, base, token, "Contended Title", 1990, stock)

	customerIDs := make([]uint, buyers)
	for i := range customerIDs {
		customerIDs[i] = registerTestCustomer(t, base, token, fmt.Sprintf("racer%d", i))
	}

	var succeeded, rejected int64
	var wg sync.WaitGroup
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(customerID uint) {
			defer wg.Done()
			resp := postJSON(t, base+"/purchases", map[string]interface{}{
				"customer": fmt.Sprintf("%d", customerID),
				"book":     fmt.Sprintf("%d", bookID),
				"quantity": 1,
			}, token)
			if resp.Code == 0 {
				atomic.AddInt64(&succeeded, 1)
			} else {
				atomic.AddInt64(&rejected, 1)
			}
		}(customerIDs[i])
	}
	wg.Wait()

	assert.Equal(t, int64(stock), succeeded, "exactly the available units sell")
	assert.Equal(t, int64(buyers-stock), rejected)
	assert.Equal(t, 0, getBook(t, base, bookID).Stock, "stock drained exactly to zero")
}

func TestPurchaseHistory(t *testing.T) {
	base := apiURL(t)
	token := loginTestStaff(t, base, "historian")

	bookID := addTestBook(t, base, token, "History Title", 3000, 10)
	customerID := registerTestCustomer(t, base, token, "reader")

	for i := 0; i < 2; i++ {
		resp := postJSON(t, base+"/purchases", map[string]interface{}{
			"customer": fmt.Sprintf("%d", customerID),
			"book":     fmt.Sprintf("%d", bookID),
			"quantity": 1,
		}, token)
		require.Equal(t, 0, resp.Code, "purchase failed: %s", resp.Message)
	}

	resp := getJSON(t, fmt.Sprintf("%s/customers/%d/purchases", base, customerID), token)
	require.Equal(t, 0, resp.Code, "history failed: %s", resp.Message)

	var data struct {
		CustomerID uint `json:"customer_id"`
		Entries    []struct {
			BookID   uint  `json:"book_id"`
			Quantity int   `json:"quantity"`
			Total    int64 `json:"total"`
		} `json:"entries"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, customerID, data.CustomerID)
	assert.Equal(t, int64(2), data.Total)
	require.Len(t, data.Entries, 2)
	assert.Equal(t, bookID, data.Entries[0].BookID)
	assert.Equal(t, int64(3000), data.Entries[0].Total)
}
