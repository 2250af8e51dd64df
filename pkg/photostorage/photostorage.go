package photostorage

import (
	"context"
	"io"
)

// File is a single photo to be stored.
type File struct {
	Name    string
	Content io.Reader
}

// PhotoStorageInterface is the contract for storing equipment photos.
// Implementations return publicly resolvable URLs.
type PhotoStorageInterface interface {
	Upload(ctx context.Context, file File, equipmentCode string) (string, error)
	UploadMany(ctx context.Context, files []File, equipmentCode string) ([]string, error)
	Delete(ctx context.Context, fileURL string) error
	DeleteMany(ctx context.Context, fileURLs []string) error
	ListForEquipment(ctx context.Context, equipmentCode string) ([]string, error)
}
