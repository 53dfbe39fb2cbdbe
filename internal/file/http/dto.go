package http

// UploadResponse returns the identifiers and public paths of an uploaded photo.
type UploadResponse struct {
	PhotoID      string  `json:"photo_id"`
	URL          string  `json:"url"`
	ThumbnailURL *string `json:"thumbnail_url"`
}
