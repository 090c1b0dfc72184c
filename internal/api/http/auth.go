package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/NimrodLoozar/OwnProject/internal/api/service"
	"github.com/NimrodLoozar/OwnProject/pkg/httpx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *registerRequest) validate() string {
	switch {
	case len(req.Username) < 3 || len(req.Username) > 50:
		return "username must be between 3 and 50 characters"
	case len(req.Email) < 5 || len(req.Email) > 100 || !strings.Contains(req.Email, "@"):
		return "email is not valid"
	case len(req.Password) < 6 || len(req.Password) > 128:
		return "password must be between 6 and 128 characters"
	}
	return ""
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Request body must be valid JSON")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if msg := req.validate(); msg != "" {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", msg)
		return
	}

	u, err := h.AuthService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(u))
}

type LoginHandler struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Request body must be valid JSON")
		return
	}

	token, _, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// MeHandler returns the authenticated principal. The guard chain has already
// resolved and vetted it.
type MeHandler struct{}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u, _, ok := CurrentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized,
			"unauthenticated", "Could not validate credentials")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}
