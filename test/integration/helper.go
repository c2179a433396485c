// Package integration exercises the running API over HTTP. The tests need a
// live server plus MySQL, so they only run when BOOKSTORE_TEST_API points at
// one, e.g.
//
//	BOOKSTORE_TEST_API=http://localhost:8080 go test ./test/integration/...
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const requestTimeout = 10 * time.Second

// apiURL returns the base URL of the API under test, or skips.
func apiURL(t *testing.T) string {
	t.Helper()
	base := os.Getenv("BOOKSTORE_TEST_API")
	if base == "" {
		t.Skip("BOOKSTORE_TEST_API not set, skipping integration test")
	}
	return base + "/api/v1"
}

// Response mirrors the API envelope.
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// BookData is the catalog entry as returned by the API.
type BookData struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
	Price  int64  `json:"price"`
	Stock  int    `json:"stock"`
}

// PurchaseData is the buy-book response payload.
type PurchaseData struct {
	PurchaseID     uint   `json:"purchase_id"`
	CustomerID     uint   `json:"customer_id"`
	BookID         uint   `json:"book_id"`
	Quantity       int    `json:"quantity"`
	Total          int64  `json:"total"`
	RemainingStock int    `json:"remaining_stock"`
	BookTitle      string `json:"book_title"`
}

type loginData struct {
	Tokens struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	} `json:"tokens"`
}

// doJSON sends a request with an optional JSON body and bearer token and
// decodes the envelope.
func doJSON(t *testing.T, method, url string, payload interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: requestTimeout}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result Response
	require.NoError(t, json.Unmarshal(raw, &result), "not an API envelope: %s", string(raw))
	return &result
}

func postJSON(t *testing.T, url string, payload interface{}, token string) *Response {
	return doJSON(t, http.MethodPost, url, payload, token)
}

func getJSON(t *testing.T, url, token string) *Response {
	return doJSON(t, http.MethodGet, url, nil, token)
}

func deleteJSON(t *testing.T, url, token string) *Response {
	return doJSON(t, http.MethodDelete, url, nil, token)
}

func patchJSON(t *testing.T, url string, payload interface{}, token string) *Response {
	return doJSON(t, http.MethodPatch, url, payload, token)
}

// uniqueSuffix keeps test fixtures from colliding across runs.
func uniqueSuffix() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// loginTestStaff registers a fresh staff account and returns an access token.
func loginTestStaff(t *testing.T, base, nickname string) string {
	t.Helper()
	email := fmt.Sprintf("%s_%s@test.local", nickname, uniqueSuffix())

	resp := postJSON(t, base+"/staff/register", map[string]string{
		"email":    email,
		"password": "Test1234",
		"nickname": nickname,
	}, "")
	require.Equal(t, 0, resp.Code, "staff register failed: %s", resp.Message)

	resp = postJSON(t, base+"/staff/login", map[string]string{
		"email":    email,
		"password": "Test1234",
	}, "")
	require.Equal(t, 0, resp.Code, "staff login failed: %s", resp.Message)

	var data loginData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data.Tokens.AccessToken
}

// addTestBook creates a book with a unique title and returns its id.
func addTestBook(t *testing.T, base, token, title string, price int64, stock int) uint {
	t.Helper()
	resp := postJSON(t, base+"/books", map[string]interface{}{
		"title":  fmt.Sprintf("%s %s", title, uniqueSuffix()),
		"author": "Test Author",
		"genre":  "test",
		"price":  price,
		"stock":  stock,
	}, token)
	require.Equal(t, 0, resp.Code, "add book failed: %s", resp.Message)

	var data struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotZero(t, data.ID)
	return data.ID
}

// registerTestCustomer creates a customer with a unique email and returns its id.
func registerTestCustomer(t *testing.T, base, token, name string) uint {
	t.Helper()
	resp := postJSON(t, base+"/customers", map[string]string{
		"name":    fmt.Sprintf("%s %s", name, uniqueSuffix()),
		"email":   fmt.Sprintf("%s_%s@test.local", name, uniqueSuffix()),
		"country": "Poland",
	}, token)
	require.Equal(t, 0, resp.Code, "register customer failed: %s", resp.Message)

	var data struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotZero(t, data.ID)
	return data.ID
}

// getBook fetches one book by id.
func getBook(t *testing.T, base string, id uint) BookData {
	t.Helper()
	resp := getJSON(t, fmt.Sprintf("%s/books/%d", base, id), "")
	require.Equal(t, 0, resp.Code, "get book failed: %s", resp.Message)

	var data BookData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data
}
