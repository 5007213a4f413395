package client

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
)

// APIError carries the server's status code plus a user-presentable message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func messageFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusUnauthorized:
		return "not authorized, please log in"
	case http.StatusForbidden:
		return "not allowed"
	case http.StatusNotFound:
		return "resource not found"
	case http.StatusConflict:
		return "conflicting change, please retry"
	default:
		return "server error, please retry later"
	}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		session: session,
	}
}

func (c *Client) Session() *Session { return c.session }

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil && c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: messageFor(resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Login posts form-encoded credentials, stores the token in the session and
// caches the locally decoded identity.
func (c *Client) Login(ctx context.Context, email, password string) error {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/login", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: messageFor(resp.StatusCode)}
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if err := c.session.SetToken(body.Token); err != nil {
		return err
	}
	return c.session.Save()
}

func (c *Client) Logout() error {
	return c.session.Clear()
}

type RegisterRequest struct {
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	AddressID *uint  `json:"address_id,omitempty"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/api/v1/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/v1/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

type componentList struct {
	Data []Component `json:"data"`
	Meta ListMeta    `json:"meta"`
}

func (c *Client) Components(ctx context.Context, page, size int) ([]Component, *ListMeta, error) {
	var list componentList
	path := fmt.Sprintf("/api/v1/components?page=%d&size=%d", page, size)
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, nil, err
	}
	return list.Data, &list.Meta, nil
}

func (c *Client) Component(ctx context.Context, id uint) (*Component, error) {
	var comp Component
	if err := c.do(ctx, http.MethodGet, "/api/v1/components/"+strconv.FormatUint(uint64(id), 10), nil, &comp); err != nil {
		return nil, err
	}
	return &comp, nil
}

// ComponentsByType filters client-side over the full listing, the way the
// SPA builds its per-type pickers.
func (c *Client) ComponentsByType(ctx context.Context, typ string) ([]Component, error) {
	all, err := c.allComponents(ctx)
	if err != nil {
		return nil, err
	}
	var out []Component
	for _, comp := range all {
		if strings.EqualFold(comp.Type, typ) {
			out = append(out, comp)
		}
	}
	return out, nil
}

// ComponentsInStock returns only components with remaining stock.
func (c *Client) ComponentsInStock(ctx context.Context) ([]Component, error) {
	all, err := c.allComponents(ctx)
	if err != nil {
		return nil, err
	}
	var out []Component
	for _, comp := range all {
		if comp.Stock > 0 {
			out = append(out, comp)
		}
	}
	return out, nil
}

// ComponentsByBrand filters on a case-insensitive brand substring.
func (c *Client) ComponentsByBrand(ctx context.Context, brand string) ([]Component, error) {
	all, err := c.allComponents(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(brand)
	var out []Component
	for _, comp := range all {
		if strings.Contains(strings.ToLower(comp.Brand), needle) {
			out = append(out, comp)
		}
	}
	return out, nil
}

func (c *Client) allComponents(ctx context.Context) ([]Component, error) {
	var all []Component
	for page := 1; ; page++ {
		items, meta, err := c.Components(ctx, page, 100)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if !meta.HasNext {
			return all, nil
		}
	}
}

type CreateConfigurationRequest struct {
	Name         string `json:"name"`
	ComponentIDs []uint `json:"component_ids"`
}

func (c *Client) CreateConfiguration(ctx context.Context, req CreateConfigurationRequest) (*Configuration, error) {
	var cfg Configuration
	if err := c.do(ctx, http.MethodPost, "/api/v1/configurations", req, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Client) Configurations(ctx context.Context, page, size int) ([]Configuration, *ListMeta, error) {
	var list struct {
		Data []Configuration `json:"data"`
		Meta ListMeta        `json:"meta"`
	}
	path := fmt.Sprintf("/api/v1/configurations?page=%d&size=%d", page, size)
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, nil, err
	}
	return list.Data, &list.Meta, nil
}

func (c *Client) DeleteConfiguration(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/configurations/"+strconv.FormatUint(uint64(id), 10), nil, nil)
}

func (c *Client) CreateAddress(ctx context.Context, addr Address) (*Address, error) {
	var out Address
	if err := c.do(ctx, http.MethodPost, "/api/v1/addresses", addr, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Orders(ctx context.Context, page, size int) ([]Order, *ListMeta, error) {
	var list struct {
		Data []Order  `json:"data"`
		Meta ListMeta `json:"meta"`
	}
	path := fmt.Sprintf("/api/v1/orders?page=%d&size=%d", page, size)
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, nil, err
	}
	return list.Data, &list.Meta, nil
}

// Checkout sends the whole cart in one request; the server prices it and
// creates all orders or none.
func (c *Client) Checkout(ctx context.Context, lines []CheckoutLine) (*CheckoutResult, error) {
	var result CheckoutResult
	body := struct {
		Lines []CheckoutLine `json:"lines"`
	}{Lines: lines}
	if err := c.do(ctx, http.MethodPost, "/api/v1/orders/checkout", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
