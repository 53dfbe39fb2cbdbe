package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fernwehlab/tour-booking-backend/internal/auth"
	"github.com/fernwehlab/tour-booking-backend/internal/file"
	"github.com/fernwehlab/tour-booking-backend/internal/pkg/response"
	"github.com/fernwehlab/tour-booking-backend/internal/user"
)

type Handler struct {
	service file.Service
}

func NewHandler(service file.Service) *Handler {
	return &Handler{service: service}
}

// Upload accepts a multipart image under the "photo" form field.
func (h *Handler) Upload(c *gin.Context) {
	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo is required"})
		return
	}

	p, err := h.service.Upload(c.Request.Context(), file.UploadInput{
		FileHeader: header,
		UserID:     auth.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := UploadResponse{
		PhotoID: p.ID,
		URL:     file.URL(p.ID),
	}
	if p.ThumbnailPath != nil {
		t := file.ThumbnailURL(p.ID)
		resp.ThumbnailURL = &t
	}

	c.JSON(http.StatusCreated, resp)
}

// Serve streams the original upload.
func (h *Handler) Serve(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	stream, p, err := h.service.Download(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", p.ContentType)
	c.Header("Content-Disposition", "inline; filename=\""+p.Filename+"\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started; nothing left to report to the client.
		return
	}
}

// ServeThumbnail streams the photo's JPEG thumbnail.
func (h *Handler) ServeThumbnail(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	stream, p, err := h.service.DownloadThumbnail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", "inline; filename=\""+p.Filename+"_thumb.jpg\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		return
	}
}

// Delete removes a photo. Uploader or admin only.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	isAdmin := auth.GetUserRole(c) == string(user.RoleAdmin)
	if err := h.service.Delete(c.Request.Context(), id, auth.GetUserID(c), isAdmin); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
