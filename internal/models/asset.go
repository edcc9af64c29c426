package models

import (
	"path/filepath"
	"strings"
	"time"
)

// Asset types reported by the Immich API
const (
	AssetTypeImage = "IMAGE"
	AssetTypeVideo = "VIDEO"
)

// Asset represents an Immich asset (photo or video)
type Asset struct {
	ID               string     `json:"id"`                         // Server-side UUID
	OriginalFileName string     `json:"originalFileName"`           // Name the file was uploaded with
	Type             string     `json:"type"`                       // IMAGE or VIDEO
	CreatedAt        time.Time  `json:"createdAt"`                  // Upload time
	FileCreatedAt    *time.Time `json:"fileCreatedAt,omitempty"`    // File creation time
	DeletedAt        *time.Time `json:"deletedAt,omitempty"`        // When the asset was trashed
	FileSizeInBytes  *int64     `json:"fileSizeInBytes,omitempty"`  // Size when reported at top level
	IsFavorite       bool       `json:"isFavorite"`                 // Marked as favorite
	IsArchived       bool       `json:"isArchived"`                 // Archived
	IsTrashed        bool       `json:"isTrashed"`                  // Currently in trash
	ExifInfo         *ExifInfo  `json:"exifInfo,omitempty"`         // Present when requested withExif
}

// ExifInfo is the subset of EXIF metadata the CLI uses
type ExifInfo struct {
	FileSizeInByte   *int64     `json:"fileSizeInByte,omitempty"`
	DateTimeOriginal *time.Time `json:"dateTimeOriginal,omitempty"`
	ExifImageWidth   int        `json:"exifImageWidth,omitempty"`
	ExifImageHeight  int        `json:"exifImageHeight,omitempty"`
}

// FileSize returns the size in bytes, preferring the top-level field over EXIF.
// The second return value is false when the server reported no size at all.
func (a Asset) FileSize() (int64, bool) {
	if a.FileSizeInBytes != nil {
		return *a.FileSizeInBytes, true
	}
	if a.ExifInfo != nil && a.ExifInfo.FileSizeInByte != nil {
		return *a.ExifInfo.FileSizeInByte, true
	}
	return 0, false
}

// SizeOrZero returns the known size or 0
func (a Asset) SizeOrZero() int64 {
	size, _ := a.FileSize()
	return size
}

// PhotoTakenAt returns the capture time from EXIF, falling back to the file
// creation time and finally to the upload time
func (a Asset) PhotoTakenAt() time.Time {
	if a.ExifInfo != nil && a.ExifInfo.DateTimeOriginal != nil {
		return *a.ExifInfo.DateTimeOriginal
	}
	if a.FileCreatedAt != nil {
		return *a.FileCreatedAt
	}
	return a.CreatedAt
}

// Extension returns the upper-cased extension without the dot, or NO_EXT
func (a Asset) Extension() string {
	ext := filepath.Ext(a.OriginalFileName)
	if ext == "" || ext == "." {
		return "NO_EXT"
	}
	return strings.ToUpper(ext[1:])
}

// ShortID returns the first n characters of the ID followed by an ellipsis
func (a Asset) ShortID(n int) string {
	if n <= 0 || len(a.ID) <= n {
		return a.ID
	}
	return a.ID[:n] + "..."
}

// IsImage reports whether the asset is a photo
func (a Asset) IsImage() bool {
	return a.Type == AssetTypeImage
}

// IsVideo reports whether the asset is a video
func (a Asset) IsVideo() bool {
	return a.Type == AssetTypeVideo
}

// AssetBulkDeleteRequest is the body of DELETE /assets
type AssetBulkDeleteRequest struct {
	IDs   []string `json:"ids"`
	Force bool     `json:"force"`
}

// TrashRequest is the body of the trash restore and empty endpoints
type TrashRequest struct {
	IDs []string `json:"ids"`
}
