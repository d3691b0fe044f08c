package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"orderflow/internal/config"
)

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(cfg config.EnrichmentConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

type enrichRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// Enrich looks up a price for the given product and quantity. It never
// returns an error: any transport failure, non-2xx status, or malformed
// payload degrades to an absent price and absent payload. Price and payload
// are always both present or both absent.
func (c *Client) Enrich(ctx context.Context, product string, quantity int) (*float64, json.RawMessage) {
	raw, err := c.post(ctx, enrichRequest{Product: product, Quantity: quantity})
	if err != nil {
		c.logger.Warn("enrichment call failed",
			zap.String("product", product),
			zap.Error(err),
		)
		return nil, nil
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.logger.Warn("enrichment payload malformed",
			zap.String("product", product),
			zap.Error(err),
		)
		return nil, nil
	}

	price, ok := payload["price"].(float64)
	if !ok {
		c.logger.Warn("enrichment payload missing price",
			zap.String("product", product),
		)
		return nil, nil
	}

	return &price, raw
}

func (c *Client) post(ctx context.Context, body enrichRequest) (json.RawMessage, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/enrich", bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return raw, nil
}
