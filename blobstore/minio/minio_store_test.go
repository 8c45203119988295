package minio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd/blobstore"
)

// fakeS3 serves HEAD, ranged GET and ListObjectsV2 for one bucket.
type fakeS3 struct {
	bucket  string
	objects map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	bucket, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	if bucket != f.bucket {
		http.Error(w, "", http.StatusNotFound)
		return
	}

	if key == "" && r.Method == http.MethodGet && r.URL.Query().Get("list-type") == "2" {
		f.list(w, r.URL.Query())
		return
	}

	body, ok := f.objects[key]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	h := w.Header()
	h.Set("Last-Modified", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).Format(http.TimeFormat))
	h.Set("ETag", `"0123456789abcdef"`)
	h.Set("Content-Type", "text/csv")

	switch r.Method {
	case http.MethodHead:
		h.Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		start, end := 0, len(body)-1
		if rng := r.Header.Get("Range"); rng != "" {
			_, err := fmt.Sscanf(rng, "bytes=%d-%d", &start, &end)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			h.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, len(body)))
			h.Set("Content-Length", strconv.Itoa(end-start+1))
			w.WriteHeader(http.StatusPartialContent)
		} else {
			h.Set("Content-Length", strconv.Itoa(len(body)))
			w.WriteHeader(http.StatusOK)
		}
		_, _ = io.WriteString(w, body[start:end+1])
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeS3) list(w http.ResponseWriter, q url.Values) {
	prefix := q.Get("prefix")
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">`)
	fmt.Fprintf(&b, "<Name>%s</Name><Prefix>%s</Prefix><KeyCount>%d</KeyCount><MaxKeys>1000</MaxKeys><IsTruncated>false</IsTruncated>",
		f.bucket, prefix, len(keys))
	for _, k := range keys {
		fmt.Fprintf(&b, `<Contents><Key>%s</Key><LastModified>2024-01-02T03:04:05.000Z</LastModified><ETag>"0123"</ETag><Size>%d</Size><StorageClass>STANDARD</StorageClass></Contents>`,
			k, len(f.objects[k]))
	}
	b.WriteString(`</ListBucketResult>`)

	w.Header().Set("Content-Type", "application/xml")
	_, _ = io.WriteString(w, b.String())
}

func newFakeStore(t *testing.T, objects map[string]string) *Store {
	t.Helper()

	srv := httptest.NewServer(&fakeS3{bucket: "datasets", objects: objects})
	t.Cleanup(srv.Close)

	store, err := Dial(strings.TrimPrefix(srv.URL, "http://"), "datasets",
		WithSecure(false),
		WithRegion("us-east-1"),
		WithStaticCredentials("lloyd", "lloyd-secret"),
		WithPrefix("runs/"),
	)
	require.NoError(t, err)
	return store
}

func TestStore_OpenAndReadRange(t *testing.T) {
	store := newFakeStore(t, map[string]string{"runs/points.csv": "0,0\n0,1\n10,0\n10,1\n"})
	ctx := context.Background()

	blob, err := store.Open(ctx, "points.csv")
	require.NoError(t, err)
	defer blob.Close()
	assert.Equal(t, int64(19), blob.Size())

	rc, err := blob.ReadRange(ctx, 4, 4)
	require.NoError(t, err)
	part, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "0,1\n", string(part))

	_, err = blob.ReadRange(ctx, 19, 1)
	assert.ErrorIs(t, err, io.EOF)
}

func TestStore_OpenNotFound(t *testing.T) {
	store := newFakeStore(t, map[string]string{})

	_, err := store.Open(context.Background(), "missing.csv")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
	assert.Contains(t, err.Error(), "minio://datasets/runs/missing.csv")
}

func TestStore_List(t *testing.T) {
	store := newFakeStore(t, map[string]string{
		"runs/shards/part-0001.csv": "1,1\n",
		"runs/shards/part-0000.csv": "0,0\n",
		"runs/report.json":          "{}",
		"other/points.csv":          "2,2\n",
	})
	ctx := context.Background()

	names, err := store.List(ctx, "shards/")
	require.NoError(t, err)
	assert.Equal(t, []string{"shards/part-0000.csv", "shards/part-0001.csv"}, names)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"report.json", "shards/part-0000.csv", "shards/part-0001.csv"}, all)
}

func TestOptions_Credentials(t *testing.T) {
	t.Setenv("MINIO_ACCESS_KEY", "")
	t.Setenv("MINIO_SECRET_KEY", "")
	t.Setenv("MINIO_ROOT_USER", "")
	t.Setenv("MINIO_ROOT_PASSWORD", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "env-key")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "env-secret")

	v, err := options{}.credentials().Get()
	require.NoError(t, err)
	assert.Equal(t, "env-key", v.AccessKeyID)

	v, err = options{accessKey: "static", secretKey: "s"}.credentials().Get()
	require.NoError(t, err)
	assert.Equal(t, "static", v.AccessKeyID)
}

// TestStore_Integration needs a MinIO server at LLOYD_MINIO_ENDPOINT.
func TestStore_Integration(t *testing.T) {
	endpoint := os.Getenv("LLOYD_MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("LLOYD_MINIO_ENDPOINT not set")
	}
	bucket := "test-lloyd"

	store, err := Dial(endpoint, bucket,
		WithSecure(false),
		WithStaticCredentials("minioadmin", "minioadmin"),
		WithPrefix("test-prefix/"),
	)
	require.NoError(t, err)
	ctx := context.Background()

	exists, err := store.client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, store.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	data := []byte("0,0\n0,1\n10,0\n10,1\n")
	require.NoError(t, store.Put(ctx, "shards/points.csv", data))
	t.Cleanup(func() {
		_ = store.client.RemoveObject(ctx, bucket, store.key("shards/points.csv"), minio.RemoveObjectOptions{})
	})

	blob, err := store.Open(ctx, "shards/points.csv")
	require.NoError(t, err)
	r, err := blobstore.NewReader(ctx, blob)
	require.NoError(t, err)
	content, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, data, content)

	names, err := store.List(ctx, "shards/")
	require.NoError(t, err)
	assert.Contains(t, names, "shards/points.csv")
}
