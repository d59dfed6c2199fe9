package adapter

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
)

// Archive keeps a copy of consumed raw payloads for auditing. Batch
// processing writes each raw record here before the record is deleted.
type Archive interface {
	// Put stores data under the given object key
	Put(ctx context.Context, key string, data []byte) error
}

// storageArchive implements Archive using Cloud Storage
type storageArchive struct {
	bucketName string
	client     *storage.Client
}

// NewStorageArchive creates a Cloud Storage backed archive
func NewStorageArchive(ctx context.Context, bucketName string) (Archive, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &storageArchive{
		bucketName: bucketName,
		client:     client,
	}, nil
}

func (s *storageArchive) Put(ctx context.Context, key string, data []byte) error {
	obj := s.client.Bucket(s.bucketName).Object(key)
	w := obj.NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write archive object", goerr.V("key", key))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize archive object", goerr.V("key", key))
	}

	return nil
}
