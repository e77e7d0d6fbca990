package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/farmience/orderdesk/internal/domain"
	pkgerrors "github.com/farmience/orderdesk/pkg/errors"
)

// Client calls the order/quotation store API with a service key.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a store HTTP client
func NewClient(baseURL, serviceKey string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// FetchOrders lists all order records.
func (c *Client) FetchOrders(ctx context.Context) ([]domain.RawOrder, error) {
	var orders []domain.RawOrder
	if err := c.do(ctx, "FetchOrders", http.MethodGet, "/api/orders", "", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FetchQuotations lists all quotation records.
func (c *Client) FetchQuotations(ctx context.Context) ([]domain.RawQuotation, error) {
	var quotations []domain.RawQuotation
	if err := c.do(ctx, "FetchQuotations", http.MethodGet, "/api/quotations", "", nil, &quotations); err != nil {
		return nil, err
	}
	return quotations, nil
}

// SubmitOrderStatus sets the backend status of an order. Returns the updated
// record, or nil when the store acknowledged without a body.
func (c *Client) SubmitOrderStatus(ctx context.Context, id, backendStatus string, note *string) (*domain.RawOrder, error) {
	body := map[string]interface{}{"status": backendStatus}
	if note != nil {
		body["note"] = *note
	}
	var order domain.RawOrder
	found, err := c.doOptional(ctx, "SubmitOrderStatus", http.MethodPut, "/api/orders/"+id+"/status", id, body, &order)
	if err != nil || !found {
		return nil, err
	}
	return &order, nil
}

// SubmitQuotationUpdate applies a partial update (status, products, notes)
// to a quotation. Returns the updated record, or nil when the store
// acknowledged without a body.
func (c *Client) SubmitQuotationUpdate(ctx context.Context, quotationID string, update QuotationUpdate) (*domain.RawQuotation, error) {
	var quotation domain.RawQuotation
	found, err := c.doOptional(ctx, "SubmitQuotationUpdate", http.MethodPut, "/api/quotations/"+quotationID, quotationID, update, &quotation)
	if err != nil || !found {
		return nil, err
	}
	return &quotation, nil
}

// CreateOrder creates a firm order record.
func (c *Client) CreateOrder(ctx context.Context, payload OrderCreate) (*domain.RawOrder, error) {
	var order domain.RawOrder
	if err := c.do(ctx, "CreateOrder", http.MethodPost, "/api/orders", "", payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder removes an order record.
func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	_, err := c.doOptional(ctx, "DeleteOrder", http.MethodDelete, "/api/orders/"+id, id, nil, nil)
	return err
}

// do performs a request that must return a decodable body.
func (c *Client) do(ctx context.Context, op, method, path, key string, body, out interface{}) error {
	found, err := c.doOptional(ctx, op, method, path, key, body, out)
	if err != nil {
		return err
	}
	if !found {
		return &pkgerrors.ErrTransport{Op: op, Err: fmt.Errorf("backend returned no body")}
	}
	return nil
}

// doOptional performs a request. Returns found=false when the store replied
// 204 or with an empty body. key is used for lookup/stale error reporting.
func (c *Client) doOptional(ctx context.Context, op, method, path, key string, body, out interface{}) (bool, error) {
	if c.baseURL == "" {
		return false, &pkgerrors.ErrTransport{Op: op, Err: fmt.Errorf("backend client not configured: base URL required")}
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return false, &pkgerrors.ErrTransport{Op: op, Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return false, &pkgerrors.ErrTransport{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.serviceKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Backend request failed", zap.String("op", op), zap.Error(err))
		return false, &pkgerrors.ErrTransport{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, &pkgerrors.ErrTransport{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, &pkgerrors.ErrLookupNotFound{Resource: "record", Key: key}
	case resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusPreconditionFailed:
		return false, &pkgerrors.ErrStaleWrite{Op: op, Key: key}
	case resp.StatusCode >= 400:
		return false, &pkgerrors.ErrTransport{Op: op, Status: resp.StatusCode, Body: string(respBody)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(respBody)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return false, &pkgerrors.ErrTransport{Op: op, Err: fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(respBody))}
	}
	return true, nil
}
