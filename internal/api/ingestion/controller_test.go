package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pulseboard/data-ingestor/internal/types"
)

// memStore keeps documents in a map so tests can observe upsert semantics
// without a running database.
type memStore struct {
	docs       map[string]map[string]any
	upsertFunc func(ctx context.Context, record *types.CustomerRecord) error
}

func (m *memStore) Upsert(ctx context.Context, record *types.CustomerRecord) error {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, record)
	}
	if m.docs == nil {
		m.docs = make(map[string]map[string]any)
	}
	m.docs[record.ID] = record.Document()
	return nil
}

func newTestRouter(store CustomerStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/ingest"), store)
	return router
}

func post(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, w.Body.String())
	}
	return body
}

func TestIngestCustomerSavesAndEchoes(t *testing.T) {
	store := &memStore{}
	router := newTestRouter(store)

	w := post(router, "/ingest/customers", `{"id":"cust_1","name":"A","email":"a@example.com","loyalty_tier":"gold"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["message"] != "Customer data received and saved for customer ID cust_1." {
		t.Errorf("message = %q", body["message"])
	}
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("data missing from response: %v", body)
	}
	if data["email"] != "a@example.com" || data["loyalty_tier"] != "gold" {
		t.Errorf("echoed record lost fields: %v", data)
	}

	doc, ok := store.docs["cust_1"]
	if !ok {
		t.Fatal("record was not persisted")
	}
	if doc["name"] != "A" || doc["loyalty_tier"] != "gold" {
		t.Errorf("stored document incomplete: %v", doc)
	}
}

func TestIngestCustomerEmptyStringRoundTrip(t *testing.T) {
	store := &memStore{}
	router := newTestRouter(store)

	w := post(router, "/ingest/customers",
		`{"id":"cust_1","name":"A","email":"a@example.com","phone":"","address":{"street":"","city":"Anytown"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	data, ok := decodeBody(t, w)["data"].(map[string]any)
	if !ok {
		t.Fatal("data missing from response")
	}
	if phone, present := data["phone"]; !present || phone != "" {
		t.Errorf("echoed record dropped empty phone: %v", data)
	}
	addr, ok := data["address"].(map[string]any)
	if !ok {
		t.Fatalf("echoed record dropped address: %v", data)
	}
	if street, present := addr["street"]; !present || street != "" {
		t.Errorf("echoed address dropped empty street: %v", addr)
	}

	doc := store.docs["cust_1"]
	if phone, present := doc["phone"]; !present || phone != "" {
		t.Errorf("stored document dropped empty phone: %v", doc)
	}
}

func TestIngestCustomerUpsertIdempotent(t *testing.T) {
	store := &memStore{}
	router := newTestRouter(store)

	payload := `{"id":"cust_1","name":"A","email":"a@example.com"}`
	post(router, "/ingest/customers", payload)
	post(router, "/ingest/customers", payload)

	if len(store.docs) != 1 {
		t.Fatalf("expected one document, got %d", len(store.docs))
	}
}

func TestIngestCustomerLastWriteWins(t *testing.T) {
	store := &memStore{}
	router := newTestRouter(store)

	post(router, "/ingest/customers", `{"id":"cust_1","name":"A","email":"a@example.com","phone":"555-0001"}`)
	post(router, "/ingest/customers", `{"id":"cust_1","name":"B","email":"b@example.com"}`)

	if len(store.docs) != 1 {
		t.Fatalf("expected one document, got %d", len(store.docs))
	}
	doc := store.docs["cust_1"]
	if doc["name"] != "B" || doc["email"] != "b@example.com" {
		t.Errorf("second write did not replace: %v", doc)
	}
	if _, stale := doc["phone"]; stale {
		t.Error("replacement must not merge with the prior document")
	}
}

func TestIngestCustomerValidationFailure(t *testing.T) {
	store := &memStore{}
	router := newTestRouter(store)

	w := post(router, "/ingest/customers", `{"id":"cust_1","name":"A"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["message"] != "Invalid request payload." {
		t.Errorf("message = %q", body["message"])
	}
	errList, ok := body["errors"].([]any)
	if !ok || len(errList) != 1 {
		t.Fatalf("expected one field error, got %v", body["errors"])
	}
	first := errList[0].(map[string]any)
	if path, _ := first["path"].([]any); len(path) != 1 || path[0] != "email" {
		t.Errorf("error path = %v", first["path"])
	}
	if len(store.docs) != 0 {
		t.Error("nothing may be persisted on validation failure")
	}
}

func TestIngestCustomerMalformedJSON(t *testing.T) {
	router := newTestRouter(&memStore{})

	w := post(router, "/ingest/customers", `{"id": "cust_1",`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if msg, _ := body["message"].(string); !strings.HasPrefix(msg, "Invalid JSON payload.") {
		t.Errorf("message = %q", body["message"])
	}
	if _, present := body["errors"]; present {
		t.Error("malformed JSON must not produce a field error list")
	}
}

func TestIngestCustomerStorageFailure(t *testing.T) {
	store := &memStore{
		upsertFunc: func(context.Context, *types.CustomerRecord) error {
			return &types.StorageError{
				Kind: types.StorageErrConnectivity,
				Err:  errors.New("server selection timeout: mongodb://db:27017"),
			}
		},
	}
	router := newTestRouter(store)

	w := post(router, "/ingest/customers", `{"id":"cust_1","name":"A","email":"a@example.com"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "Database operation failed. Please check server logs." {
		t.Errorf("message = %q", body["message"])
	}
	if strings.Contains(w.Body.String(), "mongodb://") {
		t.Error("storage detail leaked to the client")
	}
}

func TestIngestOrderEchoesWithoutPersisting(t *testing.T) {
	store := &memStore{
		upsertFunc: func(context.Context, *types.CustomerRecord) error {
			return errors.New("orders must never reach the customer store")
		},
	}
	router := newTestRouter(store)

	w := post(router, "/ingest/orders", `{
		"id":"ord_1","customerId":"cust_1","orderDate":"2024-01-01T00:00:00Z",
		"items":[{"productId":"p1","productName":"X","quantity":1,"unitPrice":10,"totalPrice":10}],
		"totalAmount":10,"currency":"USD"
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["message"] != "Order data received for order ID ord_1." {
		t.Errorf("message = %q", body["message"])
	}
	data, ok := body["data"].(map[string]any)
	if !ok || data["currency"] != "USD" {
		t.Errorf("order not echoed: %v", body)
	}
}

func TestIngestOrderMalformedJSON(t *testing.T) {
	router := newTestRouter(&memStore{})

	w := post(router, "/ingest/orders", `not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "Invalid JSON payload." {
		t.Errorf("message = %q", body["message"])
	}
	if _, present := body["errors"]; present {
		t.Error("malformed JSON must not produce a field error list")
	}
}

func TestIngestOrderValidationFailure(t *testing.T) {
	router := newTestRouter(&memStore{})

	w := post(router, "/ingest/orders", `{
		"id":"ord_1","customerId":"cust_1","orderDate":"2024-01-01T00:00:00Z",
		"items":[],"totalAmount":10,"currency":"US"
	}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	errList, ok := body["errors"].([]any)
	if !ok || len(errList) != 2 {
		t.Fatalf("expected errors on items and currency, got %v", body["errors"])
	}
}
