package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"adminpanel/internal/models"
	"adminpanel/internal/repository"
	"adminpanel/internal/service"
)

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		h.Log.Error("listUsers failed", "error", err)
		WriteError(w, "Internal error", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, users, http.StatusOK)
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.CreateUser(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			WriteError(w, repository.ErrEmailExists.Error(), http.StatusConflict)
		case errors.Is(err, service.ErrUserFieldsRequired), errors.Is(err, service.ErrInvalidEmail):
			WriteError(w, err.Error(), http.StatusBadRequest)
		default:
			h.Log.Error("createUser failed", "error", err)
			WriteError(w, "Internal error", http.StatusInternalServerError)
		}
		return
	}

	h.Log.Info("user created", "user_id", user.ID, "email", user.Email)
	WriteJSON(w, user, http.StatusCreated)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.UserService.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			WriteError(w, err.Error(), http.StatusNotFound)
			return
		}
		h.Log.Error("getUser failed", "error", err)
		WriteError(w, "Internal error", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, user, http.StatusOK)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			WriteError(w, err.Error(), http.StatusNotFound)
			return
		}
		h.Log.Error("deleteUser failed", "error", err)
		WriteError(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.Log.Info("user deleted", "user_id", userID)
	WriteJSON(w, MessageResponse{Message: "User (and posts) deleted"}, http.StatusOK)
}
