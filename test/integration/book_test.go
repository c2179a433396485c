package integration

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookCatalog(t *testing.T) {
	base := apiURL(t)
	token := loginTestStaff(t, base, "librarian")

	t.Run("add and get by id", func(t *testing.T) {
		bookID := addTestBook(t, base, token, "Catalog Entry", 2590, 7)

		got := getBook(t, base, bookID)
		assert.Equal(t, bookID, got.ID)
		assert.Equal(t, int64(2590), got.Price)
		assert.Equal(t, 7, got.Stock)
	})

	t.Run("add requires authentication", func(t *testing.T) {
		resp := postJSON(t, base+"/books", map[string]interface{}{
			"title": "Sneaky", "author": "Nobody", "price": 100, "stock": 1,
		}, "")
		assert.NotEqual(t, 0, resp.Code)
	})

	t.Run("listing is public", func(t *testing.T) {
		addTestBook(t, base, token, "Public Listing", 1500, 3)

		resp := getJSON(t, base+"/books?page=1&page_size=5", "")
		require.Equal(t, 0, resp.Code, "list failed: %s", resp.Message)

		var data struct {
			Items []BookData `json:"items"`
			Total int64      `json:"total"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotEmpty(t, data.Items)
		assert.LessOrEqual(t, len(data.Items), 5)
	})

	t.Run("unknown book reads as success with a message", func(t *testing.T) {
		resp := getJSON(t, base+"/books/99999999", "")
		assert.Equal(t, 0, resp.Code)
		assert.Contains(t, resp.Message, "no book matched")
	})

	t.Run("remove reports the match count", func(t *testing.T) {
		bookID := addTestBook(t, base, token, "Doomed Title", 1000, 1)

		resp := deleteJSON(t, fmt.Sprintf("%s/books/%d", base, bookID), token)
		require.Equal(t, 0, resp.Code, "remove failed: %s", resp.Message)

		var data struct {
			Removed int64 `json:"removed"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, int64(1), data.Removed)

		resp = deleteJSON(t, fmt.Sprintf("%s/books/%d", base, bookID), token)
		assert.Equal(t, 0, resp.Code)
		assert.Contains(t, resp.Message, "nothing removed")
	})
}

// TestConcurrentAddBooks adds distinct titles in parallel; like customer
// registration, book ids are assigned max+1 inside the insert transaction,
// so all adds must succeed with distinct ids.
func TestConcurrentAddBooks(t *testing.T) {
	base := apiURL(t)
	token := loginTestStaff(t, base, "bulkadd")

	const adds = 10

	ids := make([]uint, adds)
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ids[n] = addTestBook(t, base, token, fmt.Sprintf("Parallel Title %d", n), 1000, 1)
		}(i)
	}
	wg.Wait()

	seen := make(map[uint]int)
	for _, id := range ids {
		seen[id]++
	}
	assert.Len(t, seen, adds, "every add gets its own id")
}

func TestAdjustStock(t *testing.T) {
	base := apiURL(t)
	token := loginTestStaff(t, base, "stockkeeper")

	bookID := addTestBook(t, base, token, "Restock Title", 2000, 5)

	t.Run("increase", func(t *testing.T) {
		resp := patchJSON(t, fmt.Sprintf("%s/books/%d/stock", base, bookID),
			map[string]int{"delta": 10}, token)
		require.Equal(t, 0, resp.Code, "adjust failed: %s", resp.Message)

		var data struct {
			Stock int `json:"stock"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, 15, data.Stock)
	})

	t.Run("decrease below zero is rejected", func(t *testing.T) {
		resp := patchJSON(t, fmt.Sprintf("%s/books/%d/stock", base, bookID),
			map[string]int{"delta": -100}, token)
		assert.NotEqual(t, 0, resp.Code)
		assert.Equal(t, 15, getBook(t, base, bookID).Stock)
	})

	t.Run("zero delta reads back the current stock", func(t *testing.T) {
		resp := patchJSON(t, fmt.Sprintf("%s/books/%d/stock", base, bookID),
			map[string]int{"delta": 0}, token)
		require.Equal(t, 0, resp.Code, "adjust failed: %s", resp.Message)

		var data struct {
			Stock int `json:"stock"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, 15, data.Stock)
	})
}
