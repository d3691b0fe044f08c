package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"orderflow/internal/config"
	"orderflow/internal/order/controller"
)

func TestRouter_Health(t *testing.T) {
	ctrl := controller.NewOrderController(nil, nil, zap.NewNop())
	router := NewRouter(ctrl, config.CORSConfig{AllowedOrigin: "http://localhost:3000"}, zap.NewNop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != `{"status":"ok"}` {
		t.Errorf("unexpected health body: %s", rec.Body.String())
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	ctrl := controller.NewOrderController(nil, nil, zap.NewNop())
	router := NewRouter(ctrl, config.CORSConfig{}, zap.NewNop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
