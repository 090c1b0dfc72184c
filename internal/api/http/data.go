package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/NimrodLoozar/OwnProject/internal/api/domain"
	"github.com/NimrodLoozar/OwnProject/internal/api/service"
	"github.com/NimrodLoozar/OwnProject/pkg/httpx"
)

type dataResponse struct {
	ID        int64     `json:"id"`
	Key       string    `json:"key"`
	Value     *string   `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDataResponse(d domain.UserData) dataResponse {
	return dataResponse{
		ID:        d.ID,
		Key:       d.Key,
		Value:     d.Value,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type dataRequest struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

type ListDataHandler struct {
	DataService *service.DataService
}

func (h *ListDataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	self, _, ok := CurrentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized,
			"unauthenticated", "Could not validate credentials")
		return
	}

	items, err := h.DataService.List(r.Context(), self.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]dataResponse, 0, len(items))
	for _, d := range items {
		out = append(out, toDataResponse(d))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

type GetDataHandler struct {
	DataService *service.DataService
}

func (h *GetDataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	self, _, ok := CurrentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized,
			"unauthenticated", "Could not validate credentials")
		return
	}

	d, err := h.DataService.Get(r.Context(), self.ID, r.PathValue("key"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDataResponse(d))
}

type CreateDataHandler struct {
	DataService *service.DataService
}

func (h *CreateDataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	self, _, ok := CurrentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized,
			"unauthenticated", "Could not validate credentials")
		return
	}

	var req dataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Request body must be valid JSON")
		return
	}
	if req.Key == "" || len(req.Key) > 100 {
		httpx.WriteError(w, http.StatusBadRequest,
			"validation_error", "key must be between 1 and 100 characters")
		return
	}

	d, err := h.DataService.Create(r.Context(), self.ID, req.Key, req.Value)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toDataResponse(d))
}

type UpdateDataHandler struct {
	DataService *service.DataService
}

func (h *UpdateDataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	self, _, ok := CurrentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized,
			"unauthenticated", "Could not validate credentials")
		return
	}

	var req dataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Request body must be valid JSON")
		return
	}

	d, err := h.DataService.Update(r.Context(), self.ID, r.PathValue("key"), req.Value)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDataResponse(d))
}

type DeleteDataHandler struct {
	DataService *service.DataService
}

func (h *DeleteDataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	self, _, ok := CurrentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized,
			"unauthenticated", "Could not validate credentials")
		return
	}

	if err := h.DataService.Delete(r.Context(), self.ID, r.PathValue("key")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
