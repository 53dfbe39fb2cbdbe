package file

import (
	"net/http"
	"time"

	"github.com/fernwehlab/tour-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "photo not found")
	ErrTooLarge         = apperror.New(http.StatusRequestEntityTooLarge, "photo exceeds the size limit")
	ErrUnsupportedType  = apperror.New(http.StatusUnsupportedMediaType, "unsupported image type")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Photo is an uploaded image: a tour listing photo or a user avatar.
// StoragePath and ThumbnailPath are internal storage keys, never exposed.
type Photo struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"-"`
	ThumbnailPath *string   `json:"-"`
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// URL returns the public path serving the photo's original upload.
func URL(id string) string {
	return "/files/" + id
}

// ThumbnailURL returns the public path serving the photo's thumbnail.
func ThumbnailURL(id string) string {
	return "/files/" + id + "/thumbnail"
}
