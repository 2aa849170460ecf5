package gcs

import (
	"context"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/budget-ledger-api/internal/application"
	"github.com/oksasatya/budget-ledger-api/pkg/helpers"
)

// AvatarStore writes avatars to avatars/<user id>/<random>.<ext>.
type AvatarStore struct {
	client *storage.Client
	bucket string
}

func NewAvatarStore(client *storage.Client, bucket string) *AvatarStore {
	return &AvatarStore{client: client, bucket: bucket}
}

func ObjectPath(userID uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join("avatars", userID.String(), uuid.NewString()+ext)
}

func (s *AvatarStore) Upload(ctx context.Context, userID uuid.UUID, filename, contentType string, r io.Reader) (string, error) {
	objectPath := ObjectPath(userID, filename)
	wc := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // single request for small files
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return helpers.PublicURL(s.bucket, objectPath), nil
}

var _ application.AvatarStore = (*AvatarStore)(nil)
