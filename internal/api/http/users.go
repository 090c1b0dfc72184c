package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/NimrodLoozar/OwnProject/internal/api/service"
	"github.com/NimrodLoozar/OwnProject/pkg/httpx"
)

// ListUsersHandler serves the admin user listing.
type ListUsersHandler struct {
	UserService *service.UserService
}

func (h *ListUsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context(), false)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// GetUserHandler serves a single user by id. Callers may fetch themselves;
// fetching anyone else requires the admin flag.
type GetUserHandler struct {
	UserService *service.UserService
}

func (h *GetUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	self, perms, ok := CurrentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized,
			"unauthenticated", "Could not validate credentials")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "User id must be an integer")
		return
	}

	if !perms.CanAccessUser(self.ID, id) {
		httpx.WriteError(w, http.StatusForbidden,
			"forbidden", "Not enough permissions")
		return
	}

	u, err := h.UserService.GetUserByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// UpdateProfileHandler lets the authenticated user change profile settings.
// Theme preference is the only mutable field for now.
type UpdateProfileHandler struct {
	UserService *service.UserService
}

type updateProfileRequest struct {
	ThemePreference string `json:"theme_preference"`
}

var validThemes = map[string]bool{
	"light":  true,
	"dark":   true,
	"system": true,
}

func (h *UpdateProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	self, _, ok := CurrentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized,
			"unauthenticated", "Could not validate credentials")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Request body must be valid JSON")
		return
	}
	if !validThemes[req.ThemePreference] {
		httpx.WriteError(w, http.StatusBadRequest,
			"validation_error", "theme_preference must be one of light, dark, system")
		return
	}

	u, err := h.UserService.UpdateTheme(r.Context(), self, req.ThemePreference)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}
