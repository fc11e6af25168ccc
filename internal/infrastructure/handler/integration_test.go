package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Shubh-Pi/Transaction-management/internal/application/service"
	"github.com/Shubh-Pi/Transaction-management/internal/infrastructure/db"
	"github.com/Shubh-Pi/Transaction-management/internal/infrastructure/handler"
	"github.com/Shubh-Pi/Transaction-management/internal/infrastructure/logger"
	"github.com/Shubh-Pi/Transaction-management/internal/infrastructure/middleware"
	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer builds the full stack over an in-memory Badger instance,
// middleware chain included, the same way cmd/server wires it.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	badgerDB, err := badger.Open(opts)
	require.NoError(t, err)

	log := logger.New(io.Discard, logger.ErrorLevel)

	personRepo := db.NewBadgerPersonRepository(badgerDB)
	txRepo := db.NewBadgerTransactionRepository(badgerDB)

	personService := service.NewPersonService(personRepo, txRepo, log)
	txService := service.NewTransactionService(txRepo, personRepo, log)

	router := handler.NewRouter()
	handler.NewPersonHandler(personService, log).RegisterRoutes(router)
	handler.NewTransactionHandler(txService, log).RegisterRoutes(router)

	chain := middleware.RequestIDMiddleware(
		middleware.LoggingMiddleware(log)(
			middleware.CORSMiddleware(
				middleware.RecoveryMiddleware(log)(router))))

	server := httptest.NewServer(chain)
	t.Cleanup(func() {
		server.Close()
		badgerDB.Close()
	})

	return server
}

func doRequest(t *testing.T, method, url, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func decodeList(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()

	var list []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	return list
}

func createPerson(t *testing.T, server *httptest.Server, id, name string) {
	t.Helper()

	resp := doRequest(t, "POST", server.URL+"/api/persons",
		fmt.Sprintf(`{"id":%q,"name":%q}`, id, name))
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func createTransaction(t *testing.T, server *httptest.Server, id, personID string, amount float64) {
	t.Helper()

	resp := doRequest(t, "POST", server.URL+"/api/transactions",
		fmt.Sprintf(`{"id":%q,"personId":%q,"type":"payment","amount":%v}`, id, personID, amount))
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPersonRoundTrip(t *testing.T) {
	server := setupTestServer(t)

	// Extra fields are stored and returned opaquely
	resp := doRequest(t, "POST", server.URL+"/api/persons",
		`{"id":"p1","name":"  Alice  ","city":"Pune"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	created := decodeBody(t, resp)
	assert.Equal(t, "Alice", created["name"], "name is trimmed before storing")
	assert.Equal(t, "Pune", created["city"])

	resp = doRequest(t, "GET", server.URL+"/api/persons", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	list := decodeList(t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, created, list[0])
}

func TestPersonValidation(t *testing.T) {
	server := setupTestServer(t)

	t.Run("Invalid JSON", func(t *testing.T) {
		resp := doRequest(t, "POST", server.URL+"/api/persons", `{"id":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid JSON format", decodeBody(t, resp)["error"])
	})

	t.Run("Missing fields", func(t *testing.T) {
		resp := doRequest(t, "POST", server.URL+"/api/persons", `{"id":"p1"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Missing required fields: id and name", decodeBody(t, resp)["error"])
	})

	t.Run("Name length boundary", func(t *testing.T) {
		resp := doRequest(t, "POST", server.URL+"/api/persons",
			fmt.Sprintf(`{"id":"p1","name":%q}`, strings.Repeat("a", 100)))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = doRequest(t, "POST", server.URL+"/api/persons",
			fmt.Sprintf(`{"id":"p2","name":%q}`, strings.Repeat("a", 101)))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Name must be between 1 and 100 characters", decodeBody(t, resp)["error"])

		resp = doRequest(t, "POST", server.URL+"/api/persons", `{"id":"p3","name":"   "}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestTransactionLifecycle(t *testing.T) {
	server := setupTestServer(t)
	createPerson(t, server, "p1", "Alice")

	// String amounts are coerced to numbers
	resp := doRequest(t, "POST", server.URL+"/api/transactions",
		`{"id":"t1","personId":"p1","type":"payment","amount":"12.5","description":"  lunch  "}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	created := decodeBody(t, resp)
	assert.Equal(t, 12.5, created["amount"])
	assert.Equal(t, "lunch", created["description"])

	resp = doRequest(t, "GET", server.URL+"/api/transactions", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 1)

	// Partial update preserves untouched fields
	resp = doRequest(t, "PATCH", server.URL+"/api/transactions/t1", `{"amount":25}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	merged := decodeBody(t, resp)
	assert.Equal(t, float64(25), merged["amount"])
	assert.Equal(t, "lunch", merged["description"])
	assert.Equal(t, "payment", merged["type"])
	assert.Equal(t, "p1", merged["personId"])

	resp = doRequest(t, "DELETE", server.URL+"/api/transactions/t1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Transaction deleted", body["message"])

	// Deleting again reports not found
	resp = doRequest(t, "DELETE", server.URL+"/api/transactions/t1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Transaction not found", decodeBody(t, resp)["error"])
}

func TestTransactionValidation(t *testing.T) {
	server := setupTestServer(t)
	createPerson(t, server, "p1", "Alice")

	t.Run("Missing fields", func(t *testing.T) {
		resp := doRequest(t, "POST", server.URL+"/api/transactions",
			`{"id":"t1","personId":"p1","type":"payment"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Missing required fields: id, personId, type, amount", decodeBody(t, resp)["error"])
	})

	t.Run("Zero amount is treated as missing", func(t *testing.T) {
		resp := doRequest(t, "POST", server.URL+"/api/transactions",
			`{"id":"t1","personId":"p1","type":"payment","amount":0}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Missing required fields: id, personId, type, amount", decodeBody(t, resp)["error"])
	})

	t.Run("Negative amount", func(t *testing.T) {
		resp := doRequest(t, "POST", server.URL+"/api/transactions",
			`{"id":"t1","personId":"p1","type":"payment","amount":-5}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Amount must be a positive number", decodeBody(t, resp)["error"])
	})

	t.Run("Invalid type", func(t *testing.T) {
		resp := doRequest(t, "POST", server.URL+"/api/transactions",
			`{"id":"t1","personId":"p1","type":"refund","amount":5}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid transaction type. Must be: received, payment, or print", decodeBody(t, resp)["error"])
	})

	t.Run("Unknown person", func(t *testing.T) {
		resp := doRequest(t, "POST", server.URL+"/api/transactions",
			`{"id":"t1","personId":"ghost","type":"payment","amount":5}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Person not found", decodeBody(t, resp)["error"])

		// Nothing was persisted
		resp = doRequest(t, "GET", server.URL+"/api/transactions", "")
		assert.Empty(t, decodeList(t, resp))
	})

	t.Run("Patch validation", func(t *testing.T) {
		createTransaction(t, server, "t1", "p1", 10)

		resp := doRequest(t, "PATCH", server.URL+"/api/transactions/t1", `{"type":"refund"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid transaction type", decodeBody(t, resp)["error"])

		resp = doRequest(t, "PATCH", server.URL+"/api/transactions/t1", `{"amount":0}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Amount must be a positive number", decodeBody(t, resp)["error"])

		resp = doRequest(t, "PATCH", server.URL+"/api/transactions/ghost", `{"amount":25}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Transaction not found", decodeBody(t, resp)["error"])
	})
}

func TestPatchRewritingIDKeepsOneRecord(t *testing.T) {
	server := setupTestServer(t)
	createPerson(t, server, "p1", "Alice")
	createTransaction(t, server, "t1", "p1", 10)

	// The merged record stays under the addressed id even when the body
	// rewrites the id field
	resp := doRequest(t, "PATCH", server.URL+"/api/transactions/t1", `{"id":"t9"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "t9", decodeBody(t, resp)["id"])

	resp = doRequest(t, "GET", server.URL+"/api/transactions", "")
	list := decodeList(t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "t9", list[0]["id"])

	// The record is still addressed by its store key, not the rewritten id
	resp = doRequest(t, "PATCH", server.URL+"/api/transactions/t9", `{"amount":5}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, "PATCH", server.URL+"/api/transactions/t1", `{"amount":5}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCascadeDelete(t *testing.T) {
	server := setupTestServer(t)
	createPerson(t, server, "p1", "Alice")
	createPerson(t, server, "p2", "Bob")
	createTransaction(t, server, "t1", "p1", 10)
	createTransaction(t, server, "t2", "p1", 20)
	createTransaction(t, server, "t3", "p1", 30)
	createTransaction(t, server, "t4", "p2", 40)

	resp := doRequest(t, "DELETE", server.URL+"/api/persons/p1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Person and all associated transactions deleted", body["message"])
	assert.Equal(t, float64(3), body["deletedTransactions"])

	// Only the other person's transaction survives
	resp = doRequest(t, "GET", server.URL+"/api/transactions", "")
	list := decodeList(t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "t4", list[0]["id"])

	resp = doRequest(t, "GET", server.URL+"/api/persons", "")
	list = decodeList(t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "p2", list[0]["id"])

	// Person deletion is idempotent, unlike transaction deletion
	resp = doRequest(t, "DELETE", server.URL+"/api/persons/p1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), decodeBody(t, resp)["deletedTransactions"])
}

func TestRouting(t *testing.T) {
	server := setupTestServer(t)

	t.Run("Unknown route", func(t *testing.T) {
		resp := doRequest(t, "GET", server.URL+"/api/widgets", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Not found", decodeBody(t, resp)["error"])
	})

	t.Run("Unsupported method", func(t *testing.T) {
		resp := doRequest(t, "PUT", server.URL+"/api/persons", `{}`)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "Method Not Allowed", decodeBody(t, resp)["error"])
	})

	t.Run("Delete without id", func(t *testing.T) {
		resp := doRequest(t, "DELETE", server.URL+"/api/persons", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Person ID missing", decodeBody(t, resp)["error"])

		resp = doRequest(t, "DELETE", server.URL+"/api/transactions", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Transaction ID missing", decodeBody(t, resp)["error"])

		resp = doRequest(t, "PATCH", server.URL+"/api/transactions", `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Transaction ID missing", decodeBody(t, resp)["error"])
	})

	t.Run("Trailing slash counts as a missing id", func(t *testing.T) {
		resp := doRequest(t, "DELETE", server.URL+"/api/persons/", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Person ID missing", decodeBody(t, resp)["error"])

		resp = doRequest(t, "DELETE", server.URL+"/api/transactions/", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Transaction ID missing", decodeBody(t, resp)["error"])

		resp = doRequest(t, "PATCH", server.URL+"/api/transactions/", `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Transaction ID missing", decodeBody(t, resp)["error"])
	})

	t.Run("Preflight", func(t *testing.T) {
		resp := doRequest(t, "OPTIONS", server.URL+"/api/anything", "")
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, PATCH, DELETE, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type", resp.Header.Get("Access-Control-Allow-Headers"))
	})

	t.Run("CORS headers on every response", func(t *testing.T) {
		resp := doRequest(t, "GET", server.URL+"/api/persons", "")
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

		resp = doRequest(t, "GET", server.URL+"/api/widgets", "")
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("Request ID header", func(t *testing.T) {
		resp := doRequest(t, "GET", server.URL+"/api/persons", "")
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	})

	t.Run("Health endpoint", func(t *testing.T) {
		resp := doRequest(t, "GET", server.URL+"/healthz", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "ok", decodeBody(t, resp)["status"])
	})
}

func TestEmptyListsMarshalAsArrays(t *testing.T) {
	server := setupTestServer(t)

	for _, path := range []string{"/api/persons", "/api/transactions"} {
		resp := doRequest(t, "GET", server.URL+path, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "[]", strings.TrimSpace(string(raw)), path)
	}
}
