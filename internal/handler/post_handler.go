package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"adminpanel/internal/models"
	"adminpanel/internal/repository"
	"adminpanel/internal/service"
)

func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.ListPosts(r.Context())
	if err != nil {
		h.Log.Error("listAllPosts failed", "error", err)
		WriteError(w, "Internal error", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, posts, http.StatusOK)
}

func (h *Handlers) ListPostsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	posts, err := h.PostService.ListPostsByUser(r.Context(), userID)
	if err != nil {
		h.Log.Error("listPostsByUser failed", "user_id", userID, "error", err)
		WriteError(w, "Internal error", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, posts, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, validationMessage(err), http.StatusBadRequest)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrIncompleteImage):
			WriteError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, repository.ErrUserNotFound):
			WriteError(w, err.Error(), http.StatusNotFound)
		default:
			h.Log.Error("createPost failed", "user_id", userID, "error", err)
			WriteError(w, "Internal error", http.StatusInternalServerError)
		}
		return
	}

	h.Log.Info("post created", "post_id", post.ID, "user_id", userID)
	WriteJSON(w, post, http.StatusCreated)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			WriteError(w, err.Error(), http.StatusNotFound)
			return
		}
		h.Log.Error("deletePost failed", "post_id", postID, "error", err)
		WriteError(w, "Internal error", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, MessageResponse{Message: "Post deleted"}, http.StatusOK)
}

func (h *Handlers) CountPostsPerUser(w http.ResponseWriter, r *http.Request) {
	counts, err := h.PostService.CountPostsPerUser(r.Context())
	if err != nil {
		h.Log.Error("countPostsPerUser failed", "error", err)
		WriteError(w, "Internal error", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, counts, http.StatusOK)
}
