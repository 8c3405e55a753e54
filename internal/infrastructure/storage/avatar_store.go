// Package storage uploads user avatars to Google Cloud Storage.
package storage

import (
	"context"
	"io"
	"path"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/hyb-mobile-app/hyb-api/pkg/helpers"
)

var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// AvatarStore writes avatars under avatars/<userID>/<uuid><ext>.
type AvatarStore struct {
	client *gcs.Client
	bucket string
}

func NewAvatarStore(client *gcs.Client, bucket string) *AvatarStore {
	return &AvatarStore{client: client, bucket: bucket}
}

// AllowedContentType reports whether ct is an accepted avatar image type.
func AllowedContentType(ct string) bool {
	_, ok := extByContentType[ct]
	return ok
}

func ObjectPath(userID, contentType string) string {
	return path.Join("avatars", userID, uuid.NewString()+extByContentType[contentType])
}

func (s *AvatarStore) UploadAvatar(ctx context.Context, userID, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, s.client, s.bucket, ObjectPath(userID, contentType), contentType, r)
}
