package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fernwehlab/tour-booking-backend/internal/pkg/storage"
)

// Upload limits. Originals above the size cap are rejected outright.
const (
	MaxUploadBytes  = 10 << 20
	thumbnailWidth  = 320
	thumbnailHeight = 200
)

// allowedTypes lists the image MIME types accepted for upload.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadInput carries one multipart image upload.
type UploadInput struct {
	FileHeader *multipart.FileHeader
	UserID     string
}

type Service interface {
	// Upload validates and stores an image, generating a thumbnail
	// alongside the original.
	Upload(ctx context.Context, in UploadInput) (*Photo, error)
	Get(ctx context.Context, id string) (*Photo, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error)

	// Delete removes the photo record and its stored blobs. Only the
	// uploader or an admin may delete.
	Delete(ctx context.Context, id string, deleterID string, isAdmin bool) error
}

type service struct {
	repo    Repository
	storage storage.Storage
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
	}
}

func (s *service) Upload(ctx context.Context, in UploadInput) (*Photo, error) {
	if in.FileHeader.Size > MaxUploadBytes {
		return nil, ErrTooLarge
	}

	contentType := in.FileHeader.Header.Get("Content-Type")
	if !allowedTypes[contentType] {
		return nil, ErrUnsupportedType
	}

	src, err := in.FileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Buffer the whole upload: it is read twice, once for the original
	// and once for the thumbnail. The size cap keeps this bounded.
	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	photoID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(in.FileHeader.Filename))

	// Shard by uuid prefix so one directory never holds every photo.
	shard := photoID[:2]
	storagePath := fmt.Sprintf("photos/%s/%s%s", shard, photoID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	var thumbnailPath *string
	thumb, err := storage.MakeThumbnail(bytes.NewReader(raw), thumbnailWidth, thumbnailHeight)
	if err != nil {
		// A broken thumbnail should not sink the upload.
		log.Warn().Err(err).Str("photo_id", photoID).Msg("thumbnail generation failed")
	} else {
		tPath := fmt.Sprintf("photos/%s/%s_thumb.jpg", shard, photoID)
		if err := s.storage.Save(ctx, tPath, thumb); err != nil {
			log.Warn().Err(err).Str("photo_id", photoID).Msg("thumbnail save failed")
		} else {
			thumbnailPath = &tPath
		}
	}

	p := &Photo{
		ID:            photoID,
		UserID:        in.UserID,
		Filename:      in.FileHeader.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          in.FileHeader.Size,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return p, nil
}

func (s *service) Get(ctx context.Context, id string) (*Photo, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, p.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve photo: %w", err)
	}
	return stream, p, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if p.ThumbnailPath == nil {
		return nil, nil, ErrNotFound
	}

	stream, err := s.storage.Get(ctx, *p.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail: %w", err)
	}
	return stream, p, nil
}

func (s *service) Delete(ctx context.Context, id string, deleterID string, isAdmin bool) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !isAdmin && p.UserID != deleterID {
		return ErrPermissionDenied
	}

	// Best effort on blob cleanup; the record is the source of truth.
	if err := s.storage.Delete(ctx, p.StoragePath); err != nil {
		log.Warn().Err(err).Str("photo_id", id).Msg("photo blob cleanup failed")
	}
	if p.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *p.ThumbnailPath)
	}

	return s.repo.Delete(ctx, id)
}
