package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"orderflow/internal/config"
	"orderflow/internal/order/controller"
)

func NewRouter(orders *controller.OrderController, cfg config.CORSConfig, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(recoverer(logger))
	r.Use(cors(cfg.AllowedOrigin))

	r.Get("/health", handleHealth)

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orders.CreateOrder)
		r.Get("/", orders.ListOrders)
		r.Get("/{id}", orders.GetOrder)
	})

	return otelhttp.NewHandler(r, "http.server")
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
