// Package client is the typed binding to the RPC backend. Every operation is
// declared by a contract.Endpoint, so inputs and outputs are checked at
// compile time. Each call issues exactly one HTTP request: no retries, no
// caching, no batching.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pr1me-admin/internal/rpc/contract"
)

// Session is the caller's session context, passed explicitly into each call.
type Session struct {
	Cookie   string // value of the session cookie; empty for anonymous calls
	ClientIP string // end user's address, sent as X-Forwarded-For when set
}

// HeaderFunc produces the headers for one call. It runs on every request.
type HeaderFunc func(ctx context.Context, s Session) http.Header

// DefaultHeaders forwards the session as the session cookie and the end
// user's address as X-Forwarded-For.
func DefaultHeaders(_ context.Context, s Session) http.Header {
	h := http.Header{}
	if s.Cookie != "" {
		h.Set("Cookie", (&http.Cookie{Name: contract.SessionCookie, Value: s.Cookie}).String())
	}
	if s.ClientIP != "" {
		h.Set("X-Forwarded-For", s.ClientIP)
	}
	return h
}

// StatusError is returned for any non-2xx response. The body is passed
// through unchanged; the client does not interpret status codes.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rpc %s: status %d: %s", e.Endpoint, e.StatusCode, strings.TrimSpace(string(e.Body)))
}

type conn struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	headers HeaderFunc
}

// Option configures a Client.
type Option func(*conn)

// WithHTTPClient replaces the default http.Client. The client is used as
// given and never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *conn) { c.http = hc }
}

// WithTimeout bounds every call, including the round trips of a client set
// with WithHTTPClient. Option order does not matter.
func WithTimeout(d time.Duration) Option {
	return func(c *conn) { c.timeout = d }
}

// Client mirrors the contract's resource tree.
type Client struct {
	Root       RootClient
	Auth       AuthClient
	User       UserClient
	Todo       ResourceClient[contract.TodoInput, contract.MessageOutput, contract.TodoList]
	Withdrawal ListClient[contract.WithdrawalList]
	Merchant   ListClient[contract.MerchantList]

	conn *conn
}

// New builds a client for the backend at baseURL (without the version
// prefix). headers may be nil, in which case DefaultHeaders is used.
func New(baseURL string, headers HeaderFunc, opts ...Option) *Client {
	if headers == nil {
		headers = DefaultHeaders
	}
	c := &conn{
		baseURL: strings.TrimRight(baseURL, "/") + contract.BasePath,
		http:    http.DefaultClient,
		timeout: 10 * time.Second,
		headers: headers,
	}
	for _, opt := range opts {
		opt(c)
	}
	return &Client{
		Root:       RootClient{conn: c},
		Auth:       AuthClient{conn: c},
		User:       UserClient{conn: c},
		Todo:       ResourceClient[contract.TodoInput, contract.MessageOutput, contract.TodoList]{conn: c, res: contract.Todos},
		Withdrawal: ListClient[contract.WithdrawalList]{conn: c, res: contract.Withdrawals},
		Merchant:   ListClient[contract.MerchantList]{conn: c, res: contract.Merchants},
		conn:       c,
	}
}

// Call invokes any contract endpoint through c.
func Call[In, Out any](ctx context.Context, c *Client, ep contract.Endpoint[In, Out], s Session, in In) (Out, error) {
	return call(ctx, c.conn, ep, s, in)
}

func call[In, Out any](ctx context.Context, c *conn, ep contract.Endpoint[In, Out], s Session, in In) (Out, error) {
	var out Out

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if ep.Method != http.MethodGet {
		b, err := json.Marshal(in)
		if err != nil {
			return out, fmt.Errorf("rpc %s: encode input: %w", ep.Name(), err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, ep.Method, c.baseURL+ep.Path, body)
	if err != nil {
		return out, fmt.Errorf("rpc %s: build request: %w", ep.Name(), err)
	}
	for k, vs := range c.headers(ctx, s) {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(contract.VersionHeader, contract.Version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return out, fmt.Errorf("rpc %s: %w", ep.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return out, &StatusError{Endpoint: ep.Name(), StatusCode: resp.StatusCode, Body: b}
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("rpc %s: decode output: %w", ep.Name(), err)
	}
	return out, nil
}
