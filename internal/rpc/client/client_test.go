package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pr1me-admin/internal/domain"
	jwtinfra "github.com/pr1me-admin/internal/infrastructure/jwt"
	"github.com/pr1me-admin/internal/rpc/contract"
	"github.com/pr1me-admin/internal/rpc/server"
	"github.com/pr1me-admin/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBackend mounts every contract endpoint with in-memory handlers.
func newBackend(t *testing.T) (*httptest.Server, *jwtinfra.Provider) {
	t.Helper()
	p := jwtinfra.NewTestProvider(t)
	r := chi.NewRouter()
	m := server.NewMux(r, middleware.Auth(p, nil))

	var todos []contract.Todo
	profile := func(ctx context.Context, _ contract.Empty) (contract.Profile, error) {
		claims, _ := middleware.ClaimsFromContext(ctx)
		return contract.Profile{ID: claims.UserID, Name: "Admin", Email: "admin_user@pr1me.local"}, nil
	}
	server.Handle(m, contract.Root, profile)
	server.Handle(m, contract.Auth.Login, func(_ context.Context, in contract.LoginInput) (contract.LoginOutput, error) {
		if in.Password != "secret1" {
			return contract.LoginOutput{}, domain.ErrUnauthorized
		}
		tok, err := p.Sign("u1", domain.RoleAdmin, "s1")
		return contract.LoginOutput{Token: tok}, err
	})
	server.Handle(m, contract.Auth.Logout, func(_ context.Context, _ contract.Empty) (contract.SuccessOutput, error) {
		return contract.SuccessOutput{Success: true}, nil
	})
	server.Handle(m, contract.Auth.CheckAdmin, func(_ context.Context, in contract.CheckAdminInput) (contract.CheckAdminOutput, error) {
		return contract.CheckAdminOutput{OK: in.UserName == "admin_user" && in.Password == "secret1"}, nil
	})
	server.Handle(m, contract.User.GetProfile, profile)
	server.Handle(m, contract.User.UpdateProfile, func(_ context.Context, _ contract.UpdateProfileInput) (contract.SuccessOutput, error) {
		return contract.SuccessOutput{Success: true}, nil
	})
	server.Handle(m, contract.Todos.Create, func(_ context.Context, in contract.TodoInput) (contract.MessageOutput, error) {
		todos = append(todos, contract.Todo{ID: in.ID, Title: in.Title})
		return contract.MessageOutput{Message: "created"}, nil
	})
	server.Handle(m, contract.Todos.List, func(_ context.Context, _ contract.Empty) (contract.TodoList, error) {
		return contract.TodoList{Todos: todos}, nil
	})
	server.Handle(m, contract.Withdrawals.List, func(_ context.Context, _ contract.Empty) (contract.WithdrawalList, error) {
		return contract.WithdrawalList{Withdrawals: []contract.Withdrawal{{ID: "w1", Amount: "10.50", Status: domain.WithdrawalPending}}}, nil
	})
	server.Handle(m, contract.Merchants.List, func(_ context.Context, _ contract.Empty) (contract.MerchantList, error) {
		return contract.MerchantList{Merchants: []contract.Merchant{{ID: "m1", BankName: "KBank"}}}, nil
	})
	require.Empty(t, m.Missing())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, p
}

func TestClient_RoundTripEveryEndpoint(t *testing.T) {
	srv, _ := newBackend(t)
	c := New(srv.URL+"/", nil, WithTimeout(5*time.Second))
	ctx := context.Background()
	anon := Session{}

	check, err := c.Auth.CheckAdmin(ctx, anon, contract.CheckAdminInput{UserName: "admin_user", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, check.OK)

	login, err := c.Auth.Login(ctx, anon, contract.LoginInput{Email: "admin_user@pr1me.local", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)
	s := Session{Cookie: login.Token}

	root, err := c.Root.Get(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "u1", root.ID)

	prof, err := c.User.GetProfile(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, root, prof)

	upd, err := c.User.UpdateProfile(ctx, s, contract.UpdateProfileInput{Name: "New", Email: "new@pr1me.local"})
	require.NoError(t, err)
	assert.True(t, upd.Success)

	msg, err := c.Todo.Create(ctx, s, contract.TodoInput{ID: "t1", Title: "review payouts"})
	require.NoError(t, err)
	assert.Equal(t, "created", msg.Message)

	list, err := c.Todo.List(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, []contract.Todo{{ID: "t1", Title: "review payouts"}}, list.Todos)

	ws, err := c.Withdrawal.List(ctx, s)
	require.NoError(t, err)
	require.Len(t, ws.Withdrawals, 1)
	assert.Equal(t, "10.50", ws.Withdrawals[0].Amount)

	ms, err := c.Merchant.List(ctx, s)
	require.NoError(t, err)
	require.Len(t, ms.Merchants, 1)

	out, err := c.Auth.Logout(ctx, s)
	require.NoError(t, err)
	assert.True(t, out.Success)
}

func TestClient_NonSuccessIsPassedThrough(t *testing.T) {
	srv, _ := newBackend(t)
	c := New(srv.URL, nil)

	_, err := c.Auth.Login(context.Background(), Session{}, contract.LoginInput{Email: "a@b.com", Password: "wrong"})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "auth.login", se.Endpoint)
	assert.Contains(t, string(se.Body), "unauthorized")
}

func TestClient_MissingSessionIsUnauthorized(t *testing.T) {
	srv, _ := newBackend(t)
	c := New(srv.URL, nil)

	_, err := c.User.GetProfile(context.Background(), Session{})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
}

func TestClient_HeaderFuncRunsPerCall(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("X-Request-Tag")+"|"+r.Header.Get(contract.VersionHeader)+"|"+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":false}`))
	}))
	defer srv.Close()

	calls := 0
	headers := func(_ context.Context, s Session) http.Header {
		calls++
		h := http.Header{}
		h.Set("X-Request-Tag", s.Cookie)
		return h
	}
	c := New(srv.URL, headers)
	for _, tag := range []string{"one", "two"} {
		out, err := c.Auth.CheckAdmin(context.Background(), Session{Cookie: tag}, contract.CheckAdminInput{UserName: "x", Password: "y"})
		require.NoError(t, err)
		assert.False(t, out.OK)
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, []string{"one|v1|/api/v1/auth/checkAdmin", "two|v1|/api/v1/auth/checkAdmin"}, seen)
}

func TestClient_TransportErrorIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, nil)
	_, err := c.Root.Get(context.Background(), Session{})
	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se))
	assert.Contains(t, err.Error(), "rpc $get")
}

func TestCall_GenericEndpoint(t *testing.T) {
	srv, _ := newBackend(t)
	c := New(srv.URL, nil)
	out, err := Call(context.Background(), c, contract.Auth.CheckAdmin, Session{}, contract.CheckAdminInput{UserName: "admin_user", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, out.OK)
}

func TestDefaultHeaders(t *testing.T) {
	assert.Empty(t, DefaultHeaders(context.Background(), Session{}))
	h := DefaultHeaders(context.Background(), Session{Cookie: "tok"})
	assert.Equal(t, "admin_session=tok", h.Get("Cookie"))
	assert.Empty(t, h.Get("X-Forwarded-For"))

	h = DefaultHeaders(context.Background(), Session{ClientIP: "203.0.113.7"})
	assert.Equal(t, "203.0.113.7", h.Get("X-Forwarded-For"))
	assert.Empty(t, h.Get("Cookie"))
}

func TestWithTimeout_LeavesSharedClientAlone(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	cases := []struct {
		name string
		opts func(hc *http.Client) []Option
	}{
		{"client then timeout", func(hc *http.Client) []Option {
			return []Option{WithHTTPClient(hc), WithTimeout(50 * time.Millisecond)}
		}},
		{"timeout then client", func(hc *http.Client) []Option {
			return []Option{WithTimeout(50 * time.Millisecond), WithHTTPClient(hc)}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			shared := &http.Client{}
			c := New(srv.URL, nil, tc.opts(shared)...)

			start := time.Now()
			_, err := c.Root.Get(context.Background(), Session{})

			assert.ErrorIs(t, err, context.DeadlineExceeded)
			assert.Less(t, time.Since(start), 2*time.Second)
			assert.Zero(t, shared.Timeout)
		})
	}
}
