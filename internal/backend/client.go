package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/foodcourt/shopfront/internal/metrics"
	"github.com/foodcourt/shopfront/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client defines the four calls the shopfront makes against the commerce
// backend: tenant list, per-tenant product list, voucher validation and
// checkout submission.
type Client interface {
	ListTenants(ctx context.Context) ([]models.Tenant, error)
	ListProducts(ctx context.Context, tenantID int64) ([]models.Product, error)
	ValidateVoucher(ctx context.Context, code string) (*models.VoucherValidation, error)
	Checkout(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutResult, error)
}

// UpstreamError carries the backend's HTTP status and, when the error body
// had the expected {"message": ...} shape, its message. A malformed error
// body leaves Message empty instead of failing.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: status %d: %s", e.StatusCode, e.Message)
	}

	return fmt.Sprintf("backend: status %d", e.StatusCode)
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) Client {
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// ListTenants implements Client.
func (c *httpClient) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	var tenants []models.Tenant

	if err := c.do(ctx, "list_tenants", http.MethodGet, "/api/tenants", nil, &tenants); err != nil {
		return nil, err
	}

	return tenants, nil
}

// ListProducts implements Client.
func (c *httpClient) ListProducts(ctx context.Context, tenantID int64) ([]models.Product, error) {
	var products []models.Product

	path := fmt.Sprintf("/api/tenants/%d/products", tenantID)
	if err := c.do(ctx, "list_products", http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}

	return products, nil
}

// ValidateVoucher implements Client. A 2xx response with success=false is
// a business rejection, not an error; non-2xx responses surface as
// *UpstreamError.
func (c *httpClient) ValidateVoucher(ctx context.Context, code string) (*models.VoucherValidation, error) {
	var result models.VoucherValidation

	path := "/api/voucher/" + url.PathEscape(code)
	if err := c.do(ctx, "validate_voucher", http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Checkout implements Client.
func (c *httpClient) Checkout(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal checkout payload: %w", err)
	}

	var result models.CheckoutResult
	if err := c.do(ctx, "checkout", http.MethodPost, "/api/transaction/checkout", bytes.NewReader(payload), &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *httpClient) do(ctx context.Context, call, method, path string, body io.Reader, out any) error {

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("backend %s: %w", call, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ObserveBackendRequest(call, "error", time.Since(start))

		return fmt.Errorf("backend %s: %w", call, err)
	}
	defer resp.Body.Close()

	metrics.ObserveBackendRequest(call, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newUpstreamError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend %s: decode response: %w", call, err)
	}

	return nil
}

// newUpstreamError extracts the server message from an error body with the
// expected shape. Anything else degrades to a bare status error.
func newUpstreamError(resp *http.Response) *UpstreamError {
	upstreamErr := &UpstreamError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return upstreamErr
	}

	var errBody struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &errBody) == nil {
		upstreamErr.Message = errBody.Message
	}

	return upstreamErr
}
