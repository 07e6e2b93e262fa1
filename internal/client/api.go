// Package client implements the HTTP API client used by the contactctl
// command-line tool.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/common"
)

// User, Contact, and Address mirror the server's wire format.
type User struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Token    string `json:"token,omitempty"`
}

type Contact struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

type Address struct {
	ID         int64   `json:"id"`
	Street     *string `json:"street,omitempty"`
	City       *string `json:"city,omitempty"`
	Province   *string `json:"province,omitempty"`
	Country    *string `json:"country,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
}

// Paging is the pagination metadata attached to search results.
type Paging struct {
	CurrentPage int `json:"current_page"`
	Size        int `json:"size"`
	TotalPage   int `json:"total_page"`
}

// SearchQuery holds the optional contact search parameters.
type SearchQuery struct {
	Name  string
	Email string
	Phone string
	Page  int
	Size  int
}

// Client talks to a contact book server. The token, when set, is sent raw
// in the Authorization header.
type Client struct {
	baseURL string
	token   string
	hc      *http.Client
}

// New constructs a Client for the given server address. The token may be
// empty for unauthenticated calls (register, login).
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		hc:      &http.Client{Timeout: 30 * time.Second},
	}
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors string          `json:"errors"`
	Paging *Paging         `json:"paging"`
}

// do performs one API round-trip: encode the body, attach the token, and
// decode the envelope. Error statuses come back as the matching sentinel so
// callers can test with errors.Is.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (*Paging, error) {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, env.Errors)
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decoding response data: %w", err)
		}
	}
	return env.Paging, nil
}

func statusError(code int, msg string) error {
	var kind error
	switch code {
	case http.StatusBadRequest:
		kind = common.ErrorValidation
	case http.StatusUnauthorized:
		kind = common.ErrorUnauthorized
	case http.StatusNotFound:
		kind = common.ErrorNotFound
	case http.StatusConflict:
		kind = common.ErrorAlreadyExists
	default:
		kind = common.ErrorInternal
	}
	if msg == "" {
		msg = http.StatusText(code)
	}
	return fmt.Errorf("%w: %s", kind, msg)
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, username, password, name string) (*User, error) {
	body := map[string]string{"username": username, "password": password, "name": name}
	var user User
	if _, err := c.do(ctx, http.MethodPost, "/api/users", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a session token, returned on the user.
func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	body := map[string]string{"username": username, "password": password}
	var user User
	if _, err := c.do(ctx, http.MethodPost, "/api/users/login", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser returns the profile behind the client's token.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if _, err := c.do(ctx, http.MethodGet, "/api/users/current", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout invalidates the client's token on the server.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/users/current", nil, nil)
	return err
}

// CreateContact adds a contact.
func (c *Client) CreateContact(ctx context.Context, contact *Contact) (*Contact, error) {
	var out Contact
	if _, err := c.do(ctx, http.MethodPost, "/api/contacts", contact, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetContact fetches one contact by id.
func (c *Client) GetContact(ctx context.Context, id int64) (*Contact, error) {
	var out Contact
	if _, err := c.do(ctx, http.MethodGet, "/api/contacts/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteContact removes one contact by id.
func (c *Client) DeleteContact(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/contacts/"+strconv.FormatInt(id, 10), nil, nil)
	return err
}

// SearchContacts returns one page of contacts matching the query.
func (c *Client) SearchContacts(ctx context.Context, query SearchQuery) ([]Contact, *Paging, error) {
	params := url.Values{}
	if query.Name != "" {
		params.Set("name", query.Name)
	}
	if query.Email != "" {
		params.Set("email", query.Email)
	}
	if query.Phone != "" {
		params.Set("phone", query.Phone)
	}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.Size > 0 {
		params.Set("size", strconv.Itoa(query.Size))
	}

	path := "/api/contacts"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var out []Contact
	paging, err := c.do(ctx, http.MethodGet, path, nil, &out)
	if err != nil {
		return nil, nil, err
	}
	return out, paging, nil
}

// ListAddresses returns every address of a contact.
func (c *Client) ListAddresses(ctx context.Context, contactID int64) ([]Address, error) {
	var out []Address
	path := fmt.Sprintf("/api/contacts/%d/addresses", contactID)
	if _, err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
