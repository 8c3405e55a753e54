package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (c *Client) CreateUser(ctx context.Context, name, email, password string) (*User, error) {
	env, err := call[User](ctx, c, request{op: "create user", method: http.MethodPost, url: c.api("/users/create"), body: map[string]string{
		"name": name, "email": email, "password": password,
	}})
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// ListUsers pages through users newest first; zero page or limit use the server defaults.
func (c *Client) ListUsers(ctx context.Context, page, limit int) (*UserPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	u := c.api("/users/list")
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	env, err := call[[]User](ctx, c, request{op: "list users", method: http.MethodGet, url: u})
	if err != nil {
		return nil, err
	}
	out := &UserPage{Users: env.Data}
	if env.Pagination != nil {
		out.Pagination = *env.Pagination
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	env, err := call[User](ctx, c, request{op: "get user", method: http.MethodGet, url: c.api("/users/" + url.PathEscape(id))})
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (c *Client) SearchUsers(ctx context.Context, query string, size int) ([]User, error) {
	q := url.Values{"q": {query}}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	env, err := call[[]User](ctx, c, request{op: "search users", method: http.MethodGet, url: c.api("/users/search?" + q.Encode())})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}
