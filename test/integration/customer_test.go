package integration

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRegistry(t *testing.T) {
	base := apiURL(t)
	token := loginTestStaff(t, base, "registrar")

	t.Run("register and find by id", func(t *testing.T) {
		customerID := registerTestCustomer(t, base, token, "findable")

		resp := getJSON(t, fmt.Sprintf("%s/customers/%d", base, customerID), token)
		require.Equal(t, 0, resp.Code, "find failed: %s", resp.Message)

		var data struct {
			ID        uint   `json:"id"`
			Name      string `json:"name"`
			Purchases int64  `json:"purchases"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, customerID, data.ID)
		assert.Equal(t, int64(0), data.Purchases)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		email := fmt.Sprintf("dup_%s@test.local", uniqueSuffix())
		req := map[string]string{"name": "First", "email": email}

		resp := postJSON(t, base+"/customers", req, token)
		require.Equal(t, 0, resp.Code, "first register failed: %s", resp.Message)

		req["name"] = "Second"
		resp = postJSON(t, base+"/customers", req, token)
		assert.NotEqual(t, 0, resp.Code, "duplicate email must be rejected")
	})

	t.Run("unknown customer reads as success with a message", func(t *testing.T) {
		resp := getJSON(t, base+"/customers/99999999", token)
		assert.Equal(t, 0, resp.Code)
		assert.Contains(t, resp.Message, "no customer matched")
	})

	t.Run("requires authentication", func(t *testing.T) {
		resp := getJSON(t, base+"/customers", "")
		assert.NotEqual(t, 0, resp.Code)
	})
}

// TestConcurrentRegistrations registers customers in parallel. Identifiers
// are assigned max+1 inside the insert transaction under a locking read, so
// every registration must succeed with its own id; a duplicate-"next" race
// would surface here as a spurious email-conflict error.
func TestConcurrentRegistrations(t *testing.T) {
	base := apiURL(t)
	token := loginTestStaff(t, base, "bulkreg")

	const registrants = 10

	type outcome struct {
		id  uint
		err string
	}
	results := make([]outcome, registrants)

	var wg sync.WaitGroup
	for i := 0; i < registrants; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			resp := postJSON(t, base+"/customers", map[string]string{
				"name":  fmt.Sprintf("Racer %d %s", n, uniqueSuffix()),
				"email": fmt.Sprintf("racer%d_%s@test.local", n, uniqueSuffix()),
			}, token)
			if resp.Code != 0 {
				results[n] = outcome{err: resp.Message}
				return
			}
			var data struct {
				ID uint `json:"id"`
			}
			require.NoError(t, json.Unmarshal(resp.Data, &data))
			results[n] = outcome{id: data.ID}
		}(i)
	}
	wg.Wait()

	seen := make(map[uint]int)
	for n, r := range results {
		require.Empty(t, r.err, "registration %d failed: %s", n, r.err)
		require.NotZero(t, r.id)
		seen[r.id]++
	}
	assert.Len(t, seen, registrants, "every registration gets its own id")
}

// TestCustomerRemoveCascade verifies that removing a customer drops their
// ledger rows in the same transaction, and nobody else's.
func TestCustomerRemoveCascade(t *testing.T) {
	base := apiURL(t)
	token := loginTestStaff(t, base, "remover")

	bookID := addTestBook(t, base, token, "Cascade Title", 2000, 20)
	leaverID := registerTestCustomer(t, base, token, "leaver")
	stayerID := registerTestCustomer(t, base, token, "stayer")

	for _, customerID := range []uint{leaverID, leaverID, stayerID} {
		resp := postJSON(t, base+"/purchases", map[string]interface{}{
			"customer": fmt.Sprintf("%d", customerID),
			"book":     fmt.Sprintf("%d", bookID),
			"quantity": 1,
		}, token)
		require.Equal(t, 0, resp.Code, "purchase failed: %s", resp.Message)
	}

	resp := deleteJSON(t, fmt.Sprintf("%s/customers/%d", base, leaverID), token)
	require.Equal(t, 0, resp.Code, "remove failed: %s", resp.Message)

	var data struct {
		CustomerID       uint  `json:"customer_id"`
		Removed          int64 `json:"removed"`
		PurchasesDropped int64 `json:"purchases_dropped"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, leaverID, data.CustomerID)
	assert.Equal(t, int64(1), data.Removed)
	assert.Equal(t, int64(2), data.PurchasesDropped)

	// The leaver is gone, the stayer's history is intact.
	resp = getJSON(t, fmt.Sprintf("%s/customers/%d", base, leaverID), token)
	assert.Equal(t, 0, resp.Code)
	assert.Contains(t, resp.Message, "no customer matched")

	resp = getJSON(t, fmt.Sprintf("%s/customers/%d/purchases", base, stayerID), token)
	require.Equal(t, 0, resp.Code)
	var history struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &history))
	assert.Equal(t, int64(1), history.Total)
}
