package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/hupe1980/lloyd/blobstore"
)

// Store implements blobstore.BlobStore on a MinIO (or other S3-compatible)
// bucket.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore wraps an existing client. rootPrefix scopes every blob name.
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: rootPrefix}
}

// Dial connects to endpoint (host:port, no scheme).
func Dial(endpoint, bucket string, optFns ...Option) (*Store, error) {
	o := options{secure: true}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	client, err := minio.New(endpoint, o.client())
	if err != nil {
		return nil, fmt.Errorf("minio %s: %w", endpoint, err)
	}
	return NewStore(client, bucket, o.prefix), nil
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

func (s *Store) url(key string) string {
	return "minio://" + s.bucket + "/" + key
}

// Open stats the object; the returned blob fetches byte ranges on demand.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)

	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%s: %w", s.url(key), blobstore.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", s.url(key), err)
	}

	return &minioBlob{store: s, key: key, size: info.Size}, nil
}

// Put uploads data in a single request. S3 object writes replace the whole
// object, so readers see either the old or the new report.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	key := s.key(name)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: blobstore.ContentType(name),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", s.url(key), err)
	}
	return nil
}

// List walks the bucket recursively and returns sorted names relative to the
// store's prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	fullPrefix := s.key(prefix)
	if strings.HasSuffix(prefix, "/") {
		fullPrefix += "/"
	}

	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: fullPrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if name := strings.TrimPrefix(strings.TrimPrefix(obj.Key, s.prefix), "/"); name != "" {
			names = append(names, name)
		}
	}

	slices.Sort(names)
	return names, nil
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return true
	}
	return resp.StatusCode == http.StatusNotFound
}

type minioBlob struct {
	store *Store
	key   string
	size  int64
}

func (b *minioBlob) Size() int64 { return b.size }

func (b *minioBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if off < 0 || off >= b.size {
		return nil, io.EOF
	}

	var opts minio.GetObjectOptions
	if err := opts.SetRange(off, min(off+length, b.size)-1); err != nil {
		return nil, err
	}
	obj, err := b.store.client.GetObject(ctx, b.store.bucket, b.key, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.store.url(b.key), err)
	}
	return obj, nil
}

func (b *minioBlob) Close() error { return nil }
