package http

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/NimrodLoozar/OwnProject/internal/api/service"
	"github.com/NimrodLoozar/OwnProject/pkg/httpx"
	"github.com/NimrodLoozar/OwnProject/pkg/idx"
	"github.com/NimrodLoozar/OwnProject/pkg/slogx"
)

const maxProfilePictureBytes = 5 << 20

var pictureExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// UploadProfilePictureHandler stores an uploaded image under UploadDir and
// records its public path on the user. A previous picture is removed from
// disk once the new one is persisted.
type UploadProfilePictureHandler struct {
	UserService *service.UserService
	UploadDir   string
}

func (h *UploadProfilePictureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	self, _, ok := CurrentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized,
			"unauthenticated", "Could not validate credentials")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxProfilePictureBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Expected multipart form with a file field")
		return
	}
	defer file.Close()

	ext, ok := pictureExtensions[header.Header.Get("Content-Type")]
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest,
			"unsupported_media_type", "Profile picture must be a JPEG, PNG or GIF image")
		return
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		writeServiceError(w, r, err)
		return
	}

	name := idx.New().String() + ext
	dst := filepath.Join(h.UploadDir, name)

	out, err := os.Create(dst)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(dst)
		httpx.WriteError(w, http.StatusRequestEntityTooLarge,
			"file_too_large", "Profile picture may not exceed 5 MB")
		return
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		writeServiceError(w, r, err)
		return
	}

	previous := self.ProfilePicture

	u, err := h.UserService.SetProfilePicture(r.Context(), self, "/uploads/"+name)
	if err != nil {
		os.Remove(dst)
		writeServiceError(w, r, err)
		return
	}

	h.removeStored(r, previous)
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *UploadProfilePictureHandler) removeStored(r *http.Request, path *string) {
	if path == nil {
		return
	}
	name := strings.TrimPrefix(*path, "/uploads/")
	if name == "" || name == *path {
		return
	}
	if err := os.Remove(filepath.Join(h.UploadDir, name)); err != nil && !os.IsNotExist(err) {
		slogx.FromContext(r.Context()).Warn("failed to remove previous profile picture",
			"path", *path, "error", err)
	}
}

// DeleteProfilePictureHandler clears the user's picture and removes the
// stored file.
type DeleteProfilePictureHandler struct {
	UserService *service.UserService
	UploadDir   string
}

func (h *DeleteProfilePictureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	self, _, ok := CurrentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized,
			"unauthenticated", "Could not validate credentials")
		return
	}

	previous := self.ProfilePicture

	u, err := h.UserService.ClearProfilePicture(r.Context(), self)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if previous != nil {
		name := strings.TrimPrefix(*previous, "/uploads/")
		if name != "" && name != *previous {
			if err := os.Remove(filepath.Join(h.UploadDir, name)); err != nil && !os.IsNotExist(err) {
				slogx.FromContext(r.Context()).Warn("failed to remove profile picture",
					"path", *previous, "error", err)
			}
		}
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}
