package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/NimrodLoozar/OwnProject/internal/api/domain"
	"github.com/NimrodLoozar/OwnProject/internal/api/service"
	"github.com/NimrodLoozar/OwnProject/internal/api/store"
	"github.com/NimrodLoozar/OwnProject/pkg/httpx"
	"github.com/NimrodLoozar/OwnProject/pkg/slogx"
)

type userResponse struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	IsActive       bool       `json:"is_active"`
	IsSuperuser    bool       `json:"is_superuser"`
	IsAdmin        bool       `json:"is_admin"`
	ProfilePicture *string    `json:"profile_picture,omitempty"`
	ThemePref      string     `json:"theme_preference"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Role:           u.Role,
		IsActive:       u.IsActive,
		IsSuperuser:    u.IsSuperuser,
		IsAdmin:        u.IsAdmin,
		ProfilePicture: u.ProfilePicture,
		ThemePref:      u.ThemePref,
		DeletedAt:      u.DeletedAt,
		CreatedAt:      u.CreatedAt,
	}
}

type deletedUserResponse struct {
	userResponse

	DeletedAt         *time.Time `json:"deleted_at"`
	DeletedBy         *int64     `json:"deleted_by"`
	DeletedByUsername string     `json:"deleted_by_username,omitempty"`
}

func toDeletedUserResponse(d domain.DeletedUser) deletedUserResponse {
	return deletedUserResponse{
		userResponse:      toUserResponse(d.User),
		DeletedAt:         d.DeletedAt,
		DeletedBy:         d.DeletedBy,
		DeletedByUsername: d.DeletedByUsername,
	}
}

// writeServiceError maps service/store sentinels to the stable status/code
// pairs of the API boundary. Anything unrecognized is a 500 with no detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized,
			"invalid_credentials", "Incorrect username or password")
	case errors.Is(err, service.ErrUserExists):
		httpx.WriteError(w, http.StatusConflict,
			"conflict", "Username or email already registered")
	case errors.Is(err, service.ErrSelfDelete):
		httpx.WriteError(w, http.StatusBadRequest,
			"self_delete_forbidden", "Cannot delete yourself")
	case errors.Is(err, service.ErrDataKeyExists):
		httpx.WriteError(w, http.StatusBadRequest,
			"conflict", "Data with this key already exists. Use PUT to update.")
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Not found")
	case errors.Is(err, store.ErrAlreadyExists):
		httpx.WriteError(w, http.StatusConflict, "conflict", "Already exists")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "An internal error occurred")
	}
}
