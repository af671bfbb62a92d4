package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
)

// ErrObjectNotFound signals that the requested object or prefix does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Object is one file's identity and bookkeeping info. Paths are always
// bucket-relative: never a scheme, never the bucket name.
type Object struct {
	Bucket       string
	Path         string
	SizeBytes    int64
	LastModified time.Time
}

// Store exposes metadata-only operations against a single bucket.
type Store struct {
	client *minio.Client
	bucket string
}

// NewStore wraps a MinIO client for the given bucket.
func NewStore(client *minio.Client, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

// Bucket returns the bucket this store is bound to.
func (s *Store) Bucket() string {
	return s.bucket
}

// Head probes a single object's metadata without reading its contents.
func (s *Store) Head(ctx context.Context, key string) (Object, error) {
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return Object{}, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
		}
		return Object{}, fmt.Errorf("stat object %q: %w", key, err)
	}

	return Object{
		Bucket:       s.bucket,
		Path:         key,
		SizeBytes:    info.Size,
		LastModified: info.LastModified.UTC(),
	}, nil
}

// List enumerates every object under the prefix, in the order the storage
// system reports them. An empty prefix result is treated as not found; the
// enumeration either completes fully or fails.
func (s *Store) List(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			if isNotFound(info.Err) {
				return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, prefix)
			}
			return nil, fmt.Errorf("list objects under %q: %w", prefix, info.Err)
		}
		objects = append(objects, Object{
			Bucket:       s.bucket,
			Path:         info.Key,
			SizeBytes:    info.Size,
			LastModified: info.LastModified.UTC(),
		})
	}

	if len(objects) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, prefix)
	}
	return objects, nil
}

// Objects resolves a storage location to its objects. The location is
// normalized to bucket-relative form first; a location ending in "/" is
// enumerated as a prefix, anything else is probed as a single object.
func (s *Store) Objects(ctx context.Context, location string, recursive bool) ([]Object, error) {
	key := CleanPath(location)
	if recursive {
		return s.List(ctx, key)
	}

	obj, err := s.Head(ctx, key)
	if err != nil {
		return nil, err
	}
	return []Object{obj}, nil
}

// Reader is a ranged view over one object's contents.
type Reader interface {
	io.ReaderAt
	io.Closer
}

// Open returns a ranged reader over the object plus its size, suitable for
// footer-only metadata reads. The caller closes the reader.
func (s *Store) Open(ctx context.Context, key string) (Reader, int64, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("open object %q: %w", key, err)
	}

	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if isNotFound(err) {
			return nil, 0, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
		}
		return nil, 0, fmt.Errorf("stat object %q: %w", key, err)
	}

	return obj, info.Size, nil
}

// Upload writes one object with the given media type.
func (s *Store) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload object %q: %w", key, err)
	}
	return nil
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" || resp.StatusCode == http.StatusNotFound
}
