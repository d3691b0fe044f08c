package enrichment

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"orderflow/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.EnrichmentConfig{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	}, zap.NewNop())
}

func TestEnrich_Success(t *testing.T) {
	payload := `{"product":"widget","quantity":3,"unit_price":3.33,"price":9.99,"category":"known","currency":"USD"}`

	var gotPath string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	price, raw := newTestClient(srv.URL).Enrich(context.Background(), "widget", 3)

	if gotPath != "/enrich" {
		t.Errorf("expected POST /enrich, got %s", gotPath)
	}
	var req map[string]any
	if err := json.Unmarshal(gotBody, &req); err != nil {
		t.Fatalf("decoding request body: %v", err)
	}
	if req["product"] != "widget" || req["quantity"] != float64(3) {
		t.Errorf("unexpected request body: %s", gotBody)
	}

	if price == nil || *price != 9.99 {
		t.Fatalf("expected price 9.99, got %v", price)
	}
	if string(raw) != payload {
		t.Errorf("expected raw payload preserved verbatim, got %s", raw)
	}
}

func TestEnrich_NonSuccessStatusIsSoftFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	price, raw := newTestClient(srv.URL).Enrich(context.Background(), "widget", 3)

	if price != nil || raw != nil {
		t.Errorf("expected absent price and payload, got %v / %s", price, raw)
	}
}

func TestEnrich_MalformedPayloadIsSoftFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"price":`))
	}))
	defer srv.Close()

	price, raw := newTestClient(srv.URL).Enrich(context.Background(), "widget", 3)

	if price != nil || raw != nil {
		t.Errorf("expected absent price and payload, got %v / %s", price, raw)
	}
}

func TestEnrich_MissingPriceIsSoftFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"product":"widget","category":"dynamic"}`))
	}))
	defer srv.Close()

	price, raw := newTestClient(srv.URL).Enrich(context.Background(), "widget", 3)

	// Price and payload stay absent together.
	if price != nil || raw != nil {
		t.Errorf("expected absent price and payload, got %v / %s", price, raw)
	}
}

func TestEnrich_UnreachableCollaboratorIsSoftFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	price, raw := newTestClient(srv.URL).Enrich(context.Background(), "widget", 3)

	if price != nil || raw != nil {
		t.Errorf("expected absent price and payload, got %v / %s", price, raw)
	}
}
