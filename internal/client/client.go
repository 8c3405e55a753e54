package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hyb-mobile-app/hyb-api/config"
)

// Client talks to the hyb-api server and the class roster on behalf of one
// signed-in user. It is safe for concurrent use when its SessionStore is.
type Client struct {
	baseURL      string
	rosterURL    string
	rosterAPIKey string
	http         *http.Client
	store        SessionStore
	now          func() time.Time

	Logger *logrus.Logger
}

func New(cfg *config.ClientConfig, store SessionStore) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	roster := cfg.RosterURL
	if roster == "" {
		roster = cfg.BaseURL
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		rosterURL:    strings.TrimRight(roster, "/"),
		rosterAPIKey: cfg.RosterAPIKey,
		http:         &http.Client{Timeout: timeout},
		store:        store,
		now:          time.Now,
	}
}

// WithClock overrides the clock used for the current academic year.
func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

type request struct {
	op     string
	method string
	url    string
	body   any
	roster bool
}

// send performs one request and returns the body of a 2xx answer. A 401 from
// any endpoint clears the stored session before the error is returned.
func (c *Client) send(ctx context.Context, r request) ([]byte, error) {
	var rdr io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode body: %w", r.op, err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, r.url, rdr)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", r.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if r.roster && c.rosterAPIKey != "" {
		req.Header.Set("x-api-key", c.rosterAPIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: r.op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: r.op, Err: err}
	}
	c.debug(r, resp.StatusCode)

	if resp.StatusCode >= http.StatusBadRequest {
		if resp.StatusCode == http.StatusUnauthorized {
			if err := c.clearSession(ctx); err != nil {
				return nil, err
			}
		}
		var env envelope[json.RawMessage]
		_ = json.Unmarshal(raw, &env) // best effort: proxies may answer with HTML
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message, Detail: env.Error, Errors: env.Errors}
	}
	return raw, nil
}

// call is send plus decoding of the standard data envelope.
func call[T any](ctx context.Context, c *Client, r request) (*envelope[T], error) {
	return decode[envelope[T]](ctx, c, r)
}

// callAuth decodes an /auth/* answer and requires the user to be present.
func callAuth(ctx context.Context, c *Client, r request) (*authEnvelope, error) {
	env, err := decode[authEnvelope](ctx, c, r)
	if err != nil {
		return nil, err
	}
	if !env.Success || env.User == nil {
		return nil, fmt.Errorf("%s: server returned no user", r.op)
	}
	return env, nil
}

func decode[R any](ctx context.Context, c *Client, r request) (*R, error) {
	raw, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	out := new(R)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", r.op, err)
	}
	return out, nil
}

func (c *Client) debug(r request, status int) {
	if c.Logger == nil {
		return
	}
	c.Logger.WithFields(logrus.Fields{"op": r.op, "method": r.method, "url": r.url, "status": status}).Debug("api call")
}

func (c *Client) api(path string) string { return c.baseURL + path }

func (c *Client) token(ctx context.Context) (string, error) {
	tok, _, err := c.store.Get(ctx, keyToken)
	return tok, err
}

func (c *Client) saveSession(ctx context.Context, token string, u *User) error {
	if err := c.store.Set(ctx, keyToken, token); err != nil {
		return err
	}
	return c.saveUser(ctx, u)
}

func (c *Client) saveUser(ctx context.Context, u *User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, keyUser, string(b))
}

func (c *Client) clearSession(ctx context.Context) error {
	return c.store.Delete(ctx, keyToken, keyUser)
}

// Session returns the persisted session, or nil when signed out.
func (c *Client) Session(ctx context.Context) (*Session, error) {
	tok, ok, err := c.store.Get(ctx, keyToken)
	if err != nil || !ok || tok == "" {
		return nil, err
	}
	s := &Session{Token: tok}
	raw, ok, err := c.store.Get(ctx, keyUser)
	if err != nil {
		return nil, err
	}
	if ok {
		var u User
		// a corrupt user record still leaves a usable token
		if json.Unmarshal([]byte(raw), &u) == nil {
			s.User = &u
		}
	}
	return s, nil
}

func (c *Client) IsLoggedIn(ctx context.Context) (bool, error) {
	s, err := c.Session(ctx)
	return s != nil, err
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
