package client

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) authenticate(ctx context.Context, op, path string, body any) (*Session, error) {
	env, err := callAuth(ctx, c, request{op: op, method: http.MethodPost, url: c.api(path), body: body})
	if err != nil {
		return nil, err
	}
	if env.Token == "" {
		return nil, fmt.Errorf("%s: server returned no token", op)
	}
	if err := c.saveSession(ctx, env.Token, env.User); err != nil {
		return nil, err
	}
	return &Session{Token: env.Token, User: env.User}, nil
}

// Register creates an account and persists the returned session.
func (c *Client) Register(ctx context.Context, name, email, password string) (*Session, error) {
	return c.authenticate(ctx, "register", "/auth/register", map[string]string{
		"name": name, "email": email, "password": password,
	})
}

// Login persists the returned session on success.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	return c.authenticate(ctx, "login", "/auth/login", map[string]string{
		"email": email, "password": password,
	})
}

// Logout only forgets the local session; tokens are stateless on the server.
func (c *Client) Logout(ctx context.Context) error {
	return c.clearSession(ctx)
}

func (c *Client) Profile(ctx context.Context) (*User, error) {
	env, err := callAuth(ctx, c, request{op: "profile", method: http.MethodGet, url: c.api("/auth/profile")})
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// RefreshUser reloads the profile into the stored session. The session is
// dropped only when the server rejects the token; a NetworkError or any other
// failure leaves it in place.
func (c *Client) RefreshUser(ctx context.Context) (*User, error) {
	if ok, err := c.IsLoggedIn(ctx); err != nil {
		return nil, err
	} else if !ok {
		return nil, &APIError{Status: http.StatusUnauthorized, Message: "not signed in"}
	}
	u, err := c.Profile(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.saveUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (c *Client) UpdateProfile(ctx context.Context, name string) (*User, error) {
	env, err := callAuth(ctx, c, request{op: "update profile", method: http.MethodPut, url: c.api("/auth/profile"), body: map[string]string{"name": name}})
	if err != nil {
		return nil, err
	}
	if err := c.saveUser(ctx, env.User); err != nil {
		return nil, err
	}
	return env.User, nil
}
