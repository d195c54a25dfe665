package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"adminpanel/internal/client"
	"adminpanel/internal/config"
	"adminpanel/internal/logger"
	"adminpanel/internal/service"

	"github.com/gorilla/mux"
)

// maxProxyBody caps JSON bodies relayed to the users and posts services.
const maxProxyBody = 1 << 20

// Forwarder sends a request to one backing service and returns its raw reply.
type Forwarder interface {
	Forward(ctx context.Context, method, path string, body []byte, contentType string) (*client.Response, error)
}

// GatewayHandlers proxies to the users and posts services and serves the
// aggregated views.
type GatewayHandlers struct {
	Users      Forwarder
	Posts      Forwarder
	Aggregator service.AggregatorService
	Uploads    service.UploadService
	Cfg        *config.Config
	Log        *logger.Logger
}

func (g *GatewayHandlers) HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, map[string]interface{}{
		"ok":      true,
		"service": "gateway",
		"users":   g.Cfg.Upstream.UsersURL,
		"posts":   g.Cfg.Upstream.PostsURL,
	}, http.StatusOK)
}

func (g *GatewayHandlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, map[string]string{"status": "ok", "service": "gateway"}, http.StatusOK)
}

func (g *GatewayHandlers) Debug(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, map[string]string{
		"USERS": g.Cfg.Upstream.UsersURL,
		"POSTS": g.Cfg.Upstream.PostsURL,
	}, http.StatusOK)
}

func (g *GatewayHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	g.proxy(w, r, g.Users, "/users")
}

func (g *GatewayHandlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	g.proxy(w, r, g.Users, "/users")
}

func (g *GatewayHandlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	g.proxy(w, r, g.Users, "/users/"+url.PathEscape(mux.Vars(r)["id"]))
}

func (g *GatewayHandlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	g.proxy(w, r, g.Posts, "/posts")
}

func (g *GatewayHandlers) ListPostsByUser(w http.ResponseWriter, r *http.Request) {
	g.proxy(w, r, g.Posts, "/posts/user/"+url.PathEscape(mux.Vars(r)["userId"]))
}

func (g *GatewayHandlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	g.proxy(w, r, g.Posts, "/posts/user/"+url.PathEscape(mux.Vars(r)["userId"]))
}

func (g *GatewayHandlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	g.proxy(w, r, g.Posts, "/posts/"+url.PathEscape(mux.Vars(r)["id"]))
}

func (g *GatewayHandlers) UsersWithCounts(w http.ResponseWriter, r *http.Request) {
	merged, err := g.Aggregator.UsersWithCounts(r.Context())
	if err != nil {
		g.writeUpstreamError(w, "users/with-counts", err)
		return
	}

	WriteJSON(w, merged, http.StatusOK)
}

func (g *GatewayHandlers) PostsEnriched(w http.ResponseWriter, r *http.Request) {
	enriched, err := g.Aggregator.PostsEnriched(r.Context())
	if err != nil {
		g.writeUpstreamError(w, "posts-enriched", err)
		return
	}

	WriteJSON(w, enriched, http.StatusOK)
}

// proxy relays the upstream status, content type and body unchanged. Only a
// transport failure is turned into a 500.
func (g *GatewayHandlers) proxy(w http.ResponseWriter, r *http.Request, upstream Forwarder, path string) {
	var body []byte
	if r.Body != nil {
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxProxyBody))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				WriteError(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			WriteError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		body = data
	}

	resp, err := upstream.Forward(r.Context(), r.Method, path, body, r.Header.Get("Content-Type"))
	if err != nil {
		g.Log.Error("upstream request failed", "method", r.Method, "path", path, "error", err)
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	w.WriteHeader(resp.Status)
	w.Write(resp.Body)
}

func (g *GatewayHandlers) writeUpstreamError(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	var upErr *client.UpstreamError
	if errors.As(err, &upErr) {
		status = upErr.Status
	}

	g.Log.Error("aggregation failed", "op", op, "status", status, "error", err)

	// A JSON error body from the failing service goes out unchanged.
	if upErr != nil && json.Valid(upErr.Body) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(upErr.Body)
		return
	}
	WriteError(w, err.Error(), status)
}
