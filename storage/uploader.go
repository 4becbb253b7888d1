package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// MediaKey builds an object key namespaced by upload time with a random
// suffix, so concurrent uploads of identically named files never collide:
// <prefix>/<unix-ts>-<uuid8>-<slugged-name><ext>
func MediaKey(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name := slug.Make(base)
	if name == "" {
		name = "file"
	}
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s/%d-%s-%s%s", prefix, time.Now().Unix(), suffix, name, ext)
}
