package storage

import "context"

// PhotoStorage persists listing photos in object storage and returns a
// publicly reachable URL for each uploaded object.
type PhotoStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
	Delete(ctx context.Context, objectURL string) error
}
