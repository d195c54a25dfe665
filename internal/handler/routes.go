package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewUsersRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", h.HomeHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	r.HandleFunc("/users", h.ListUsers).Methods(http.MethodGet)
	r.HandleFunc("/users", h.CreateUser).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}", h.GetUser).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", h.DeleteUser).Methods(http.MethodDelete)

	return r
}

func NewPostsRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", h.HomeHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	r.HandleFunc("/posts", h.ListPosts).Methods(http.MethodGet)
	r.HandleFunc("/posts/counts", h.CountPostsPerUser).Methods(http.MethodGet)
	r.HandleFunc("/posts/user/{userId}", h.ListPostsByUser).Methods(http.MethodGet)
	r.HandleFunc("/posts/user/{userId}", h.CreatePost).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id}", h.DeletePost).Methods(http.MethodDelete)

	return r
}

func NewGatewayRouter(g *GatewayHandlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", g.HomeHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", g.HealthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/_debug", g.Debug).Methods(http.MethodGet)

	// with-counts must be registered before the {id} routes
	api.HandleFunc("/users/with-counts", g.UsersWithCounts).Methods(http.MethodGet)
	api.HandleFunc("/users", g.ListUsers).Methods(http.MethodGet)
	api.HandleFunc("/users", g.CreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}", g.DeleteUser).Methods(http.MethodDelete)

	api.HandleFunc("/posts-enriched", g.PostsEnriched).Methods(http.MethodGet)
	api.HandleFunc("/posts", g.ListPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/user/{userId}", g.ListPostsByUser).Methods(http.MethodGet)
	api.HandleFunc("/posts/user/{userId}", g.CreatePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id}", g.DeletePost).Methods(http.MethodDelete)

	uploads := r.PathPrefix("/uploads").Subrouter()
	uploads.HandleFunc("/image", g.UploadImage).Methods(http.MethodPost)
	uploads.HandleFunc("/s3-get", g.SignedImageURL).Methods(http.MethodGet)

	return r
}
