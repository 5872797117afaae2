// Package client provides a Go HTTP client for programmatic access to the
// timetravelstore API.
//
// The client mirrors the server's endpoint structure with strongly-typed
// methods: CRUD for categories, countries, travels, users and orders, plus
// the two aggregation views (travels by country, order summary by user). It
// uses the same [github.com/NikMakPak/timetravelstore/pkg/models] entities as
// the server, so IDs and embedded reviews round trip without conversion.
//
// Update methods take the patch types from models. Only fields set on the
// patch are changed; an explicit zero value is written through, and an unset
// field is left alone.
//
// Errors from the server are returned with the HTTP status and response body
// included, which keeps test failures debuggable.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/NikMakPak/timetravelstore/pkg/models"
	"github.com/NikMakPak/timetravelstore/pkg/query"
)

// Client provides strongly-typed access to the timetravelstore REST API.
// Instances are safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an API client. The baseURL should include protocol and
// host without a trailing slash, e.g. "http://localhost:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// doRequest performs an HTTP request with proper headers
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

// decodeResponse decodes the JSON response into the target struct
func decodeResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	if target != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Health checks the health status of the server
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// Category management

func (c *Client) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/categories", category)
	if err != nil {
		return nil, err
	}

	var result models.Category
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) GetCategory(ctx context.Context, id models.CategoryID) (*models.Category, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/categories/%s", id), nil)
	if err != nil {
		return nil, err
	}

	var result models.Category
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id models.CategoryID, patch models.CategoryPatch) error {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/categories/%s", id), patch)
	if err != nil {
		return err
	}

	return decodeResponse(resp, nil)
}

func (c *Client) DeleteCategory(ctx context.Context, id models.CategoryID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/categories/%s", id), nil)
	if err != nil {
		return err
	}

	return decodeResponse(resp, nil)
}

// Country management

func (c *Client) CreateCountry(ctx context.Context, country *models.Country) (*models.Country, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/countries", country)
	if err != nil {
		return nil, err
	}

	var result models.Country
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) GetCountry(ctx context.Context, id models.CountryID) (*models.Country, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/countries/%s", id), nil)
	if err != nil {
		return nil, err
	}

	var result models.Country
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) UpdateCountry(ctx context.Context, id models.CountryID, patch models.CountryPatch) error {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/countries/%s", id), patch)
	if err != nil {
		return err
	}

	return decodeResponse(resp, nil)
}

func (c *Client) DeleteCountry(ctx context.Context, id models.CountryID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/countries/%s", id), nil)
	if err != nil {
		return err
	}

	return decodeResponse(resp, nil)
}

// CountryTravels returns the travel names available for the named country.
func (c *Client) CountryTravels(ctx context.Context, countryName string) (*query.CountryTravels, error) {
	path := fmt.Sprintf("/api/countries/%s/travels", url.PathEscape(countryName))
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var result query.CountryTravels
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Travel management

func (c *Client) CreateTravel(ctx context.Context, travel *models.Travel) (*models.Travel, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/travels", travel)
	if err != nil {
		return nil, err
	}

	var result models.Travel
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) GetTravel(ctx context.Context, id models.TravelID) (*models.Travel, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/travels/%s", id), nil)
	if err != nil {
		return nil, err
	}

	var result models.Travel
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) UpdateTravel(ctx context.Context, id models.TravelID, patch models.TravelPatch) error {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/travels/%s", id), patch)
	if err != nil {
		return err
	}

	return decodeResponse(resp, nil)
}

func (c *Client) DeleteTravel(ctx context.Context, id models.TravelID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/travels/%s", id), nil)
	if err != nil {
		return err
	}

	return decodeResponse(resp, nil)
}

// User management

func (c *Client) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/users", user)
	if err != nil {
		return nil, err
	}

	var result models.User
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/users/%s", id), nil)
	if err != nil {
		return nil, err
	}

	var result models.User
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) UpdateUser(ctx context.Context, id models.UserID, patch models.UserPatch) error {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/users/%s", id), patch)
	if err != nil {
		return err
	}

	return decodeResponse(resp, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id models.UserID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%s", id), nil)
	if err != nil {
		return err
	}

	return decodeResponse(resp, nil)
}

// UserOrders returns the order summary for the user with the given email.
func (c *Client) UserOrders(ctx context.Context, email string) (*query.OrderSummary, error) {
	path := fmt.Sprintf("/api/users/%s/orders", url.PathEscape(email))
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var result query.OrderSummary
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Order management

func (c *Client) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/orders", order)
	if err != nil {
		return nil, err
	}

	var result models.Order
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) GetOrder(ctx context.Context, id models.OrderID) (*models.Order, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%s", id), nil)
	if err != nil {
		return nil, err
	}

	var result models.Order
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) UpdateOrder(ctx context.Context, id models.OrderID, patch models.OrderPatch) error {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/orders/%s", id), patch)
	if err != nil {
		return err
	}

	return decodeResponse(resp, nil)
}

func (c *Client) DeleteOrder(ctx context.Context, id models.OrderID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/orders/%s", id), nil)
	if err != nil {
		return err
	}

	return decodeResponse(resp, nil)
}
