package inventory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sbdiallo/stockboard/internal/config"
	"github.com/sbdiallo/stockboard/internal/domain/models"
)

// Client exposes the inventory API operations consumed by the dashboard.
type Client interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ListItems(ctx context.Context, query ListQuery) (*models.ListPage, error)
	GetItem(ctx context.Context, id string) (*models.Item, error)
	CreateItem(ctx context.Context, draft models.ItemDraft) (*CreateItemResponse, error)
	UpdateItem(ctx context.Context, id string, draft models.ItemDraft) error
	DeleteItem(ctx context.Context, id string) error
	GetStats(ctx context.Context) (*models.StatsReport, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	cfg        config.APIClientConfig
}

// NewClient builds an inventory API client using the provided configuration
// values. The returned client carries no credentials; use WithToken after a
// successful login.
func NewClient(cfg config.APIClientConfig) *APIClient {
	return &APIClient{
		httpClient: newRestyClient(cfg, ""),
		cfg:        cfg,
	}
}

// WithToken returns a new client that authenticates every request with the
// given bearer token. The receiver is left untouched so one unauthenticated
// client can serve many login flows concurrently.
func (c *APIClient) WithToken(token string) *APIClient {
	return &APIClient{
		httpClient: newRestyClient(c.cfg, token),
		cfg:        c.cfg,
	}
}

func newRestyClient(cfg config.APIClientConfig, token string) *resty.Client {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base + "/api").
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	if token != "" {
		restyClient.SetHeader("Authorization", "Bearer "+token)
	}

	return restyClient
}

// APIError carries the status code and optional server-provided message of a
// failed call.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("inventory api error: status=%d, message=%s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("inventory api error: status=%d", e.StatusCode)
}

// ErrorMessage extracts the server-provided message from err when present,
// falling back to the supplied generic message otherwise.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// apiMessage mirrors the `{message}` error payload of the API.
type apiMessage struct {
	Message string `json:"message"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse mirrors a successful login.
type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	User        models.AuthUser `json:"user"`
}

// ListQuery is the filtered, paginated item query. Empty Search and Category
// are omitted from the request.
type ListQuery struct {
	Search   string
	Category models.Category
	Page     int
	Limit    int
}

// CreateItemResponse mirrors a successful item creation.
type CreateItemResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

func (c *APIClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	result := new(LoginResponse)
	apiErr := new(apiMessage)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(result).
		SetError(apiErr).
		Post("/auth/login")
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := checkStatus(resp, apiErr); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *APIClient) ListItems(ctx context.Context, query ListQuery) (*models.ListPage, error) {
	result := new(models.ListPage)
	apiErr := new(apiMessage)

	req := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("page", fmt.Sprintf("%d", query.Page)).
		SetQueryParam("limit", fmt.Sprintf("%d", query.Limit)).
		SetResult(result).
		SetError(apiErr)

	if query.Search != "" {
		req.SetQueryParam("search", query.Search)
	}
	if query.Category != "" {
		req.SetQueryParam("category", string(query.Category))
	}

	resp, err := req.Get("/items/")
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	if err := checkStatus(resp, apiErr); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *APIClient) GetItem(ctx context.Context, id string) (*models.Item, error) {
	result := new(models.Item)
	apiErr := new(apiMessage)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(apiErr).
		Get("/items/" + id)
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}

	if err := checkStatus(resp, apiErr); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *APIClient) CreateItem(ctx context.Context, draft models.ItemDraft) (*CreateItemResponse, error) {
	result := new(CreateItemResponse)
	apiErr := new(apiMessage)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(draft).
		SetResult(result).
		SetError(apiErr).
		Post("/items/")
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	if err := checkStatus(resp, apiErr); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *APIClient) UpdateItem(ctx context.Context, id string, draft models.ItemDraft) error {
	apiErr := new(apiMessage)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(draft).
		SetError(apiErr).
		Put("/items/" + id)
	if err != nil {
		return fmt.Errorf("update item %s: %w", id, err)
	}

	return checkStatus(resp, apiErr)
}

func (c *APIClient) DeleteItem(ctx context.Context, id string) error {
	apiErr := new(apiMessage)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetError(apiErr).
		Delete("/items/" + id)
	if err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}

	return checkStatus(resp, apiErr)
}

func (c *APIClient) GetStats(ctx context.Context) (*models.StatsReport, error) {
	result := new(models.StatsReport)
	apiErr := new(apiMessage)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(apiErr).
		Get("/stats/")
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	if err := checkStatus(resp, apiErr); err != nil {
		return nil, err
	}

	return result, nil
}

func checkStatus(resp *resty.Response, apiErr *apiMessage) error {
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}

	message := ""
	if apiErr != nil {
		message = apiErr.Message
	}

	return &APIError{StatusCode: resp.StatusCode(), Message: message}
}
