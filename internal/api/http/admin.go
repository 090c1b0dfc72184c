package http

import (
	"net/http"
	"strconv"

	"github.com/NimrodLoozar/OwnProject/internal/api/service"
	"github.com/NimrodLoozar/OwnProject/pkg/httpx"
)

// AdminListUsersHandler lists every account, optionally including the
// soft-deleted ones.
type AdminListUsersHandler struct {
	UserService *service.UserService
}

func (h *AdminListUsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	includeDeleted := r.URL.Query().Get("include_deleted") == "true"

	users, err := h.UserService.ListUsers(r.Context(), includeDeleted)
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

// AdminDeleteUserHandler soft deletes by default. With ?permanent=true the
// row and its data are removed for good.
type AdminDeleteUserHandler struct {
	LifecycleService *service.LifecycleService
}

func (h *AdminDeleteUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	self, _, ok := CurrentUser(r.Context())
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

	if r.URL.Query().Get("permanent") == "true" {
		u, err := h.LifecycleService.PermanentlyDelete(r.Context(), self.ID, id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"message":  "User permanently deleted",
			"username": u.Username,
		})
		return
	}

	u, err := h.LifecycleService.SoftDelete(r.Context(), self.ID, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// AdminRestoreUserHandler reverses a soft delete.
type AdminRestoreUserHandler struct {
	LifecycleService *service.LifecycleService
}

func (h *AdminRestoreUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "User id must be an integer")
		return
	}

	u, err := h.LifecycleService.Restore(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// AdminListDeletedHandler lists soft-deleted accounts with the deleter's
// name resolved where still known.
type AdminListDeletedHandler struct {
	LifecycleService *service.LifecycleService
}

func (h *AdminListDeletedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.LifecycleService.ListDeleted(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]deletedUserResponse, 0, len(deleted))
	for _, d := range deleted {
		out = append(out, toDeletedUserResponse(d))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// UserExistsHandler reports whether an account is live. It is registered
// without the guard chain so external systems can poll it.
type UserExistsHandler struct {
	LifecycleService *service.LifecycleService
}

func (h *UserExistsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "User id must be an integer")
		return
	}

	exists, err := h.LifecycleService.Exists(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"user_id": id,
		"exists":  exists,
	})
}
