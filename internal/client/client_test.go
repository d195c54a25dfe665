package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"adminpanel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwardRelaysStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"username":"a","email":"a@x.com"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"email already exists"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, NewHTTPClient(time.Second))

	resp, err := c.Forward(context.Background(), http.MethodPost, "/users", []byte(`{"username":"a","email":"a@x.com"}`), "")

	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.Status)
	assert.Equal(t, "application/json", resp.ContentType)
	assert.JSONEq(t, `{"message":"email already exists"}`, string(resp.Body))
}

func TestGetJSONUpstreamError(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{"message from body", `{"message":"Internal error"}`, "Internal error"},
		{"plain body", `oops`, "request failed with status code 503"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			var out []models.User
			err := New(srv.URL, NewHTTPClient(time.Second)).GetJSON(context.Background(), "/users", &out)

			var upErr *UpstreamError
			require.True(t, errors.As(err, &upErr))
			assert.Equal(t, http.StatusServiceUnavailable, upErr.Status)
			assert.Equal(t, tt.wantMessage, upErr.Message)
		})
	}
}

func TestTypedClients(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/users":
			_, _ = w.Write([]byte(`[{"id":1,"username":"a","email":"a@x.com","created_at":"2024-01-01T00:00:00Z"}]`))
		case "/posts":
			_, _ = w.Write([]byte(`null`))
		case "/posts/counts":
			_, _ = w.Write([]byte(`[{"user_id":1,"count":2}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	hc := NewHTTPClient(time.Second)
	ctx := context.Background()

	users, err := NewUsersClient(srv.URL, hc).ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "a@x.com", users[0].Email)

	posts, err := NewPostsClient(srv.URL, hc).ListPosts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)

	counts, err := NewPostsClient(srv.URL, hc).CountPostsPerUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.PostCount{{UserID: 1, Count: 2}}, counts)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewUsersClient(srv.URL, NewHTTPClient(time.Second)).ListUsers(context.Background())

	require.Error(t, err)
	var upErr *UpstreamError
	assert.False(t, errors.As(err, &upErr))
}
