package dataset

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/geometry"
	"github.com/hupe1980/lloyd/resource"
	"github.com/hupe1980/lloyd/testutil"
)

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zstdBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer func() { _ = enc.Close() }()
	return enc.EncodeAll(data, nil)
}

func lz4Bytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDetectCompression(t *testing.T) {
	assert.Equal(t, CompressionNone, DetectCompression("points.csv"))
	assert.Equal(t, CompressionGzip, DetectCompression("points.csv.gz"))
	assert.Equal(t, CompressionZSTD, DetectCompression("points.csv.zst"))
	assert.Equal(t, CompressionLZ4, DetectCompression("points.csv.lz4"))
	assert.Equal(t, "zstd", CompressionZSTD.String())
}

func TestLoad_Compressed(t *testing.T) {
	ctx := context.Background()
	points, _ := testutil.NewRNG(1).ClusteredPoints(200, 3, 4, 0.5)
	raw := testutil.CSV(points)

	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "points.csv", raw))
	require.NoError(t, store.Put(ctx, "points.csv.gz", gzipBytes(t, raw)))
	require.NoError(t, store.Put(ctx, "points.csv.zst", zstdBytes(t, raw)))
	require.NoError(t, store.Put(ctx, "points.csv.lz4", lz4Bytes(t, raw)))

	for _, name := range []string{"points.csv", "points.csv.gz", "points.csv.zst", "points.csv.lz4"} {
		t.Run(name, func(t *testing.T) {
			ds, err := Load(ctx, store, name)
			require.NoError(t, err)
			assert.Equal(t, 3, ds.Dim())
			assert.Equal(t, points, ds.Points())
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(context.Background(), blobstore.NewMemoryStore(), "missing.csv")

	var ioe *IOError
	require.ErrorAs(t, err, &ioe)
	assert.Equal(t, "missing.csv", ioe.Source)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestLoad_CorruptCompression(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "points.csv.gz", []byte("0,0\n1,1\n")))

	_, err := Load(ctx, store, "points.csv.gz")
	var ioe *IOError
	assert.ErrorAs(t, err, &ioe)
}

func TestLoad_ParseErrorNamesBlob(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "bad.csv", []byte("0,0\n1,x\n")))

	_, err := Load(ctx, store, "bad.csv", WithSourceName("ignored"))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "bad.csv", pe.Source)
	assert.Equal(t, 2, pe.Line)
}

func TestLoad_WithController(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "points.csv", []byte("0,0\n1,1\n")))

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:   1 << 20,
		IOLimitBytesPerSec: 1 << 20,
	})

	var info LoadInfo
	ds, err := Load(ctx, store, "points.csv", WithController(rc), WithLoadHook(func(li LoadInfo) { info = li }))
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())

	// Memory is released once parsing is done.
	assert.Equal(t, resource.Stats{PeakMemory: 8}, rc.Stats())

	assert.Equal(t, "points.csv", info.Source)
	assert.Equal(t, int64(8), info.Bytes)
	assert.Equal(t, 2, info.Points)
}

func TestLoadAll(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "shards/b.csv", []byte("2,2\n3,3\n")))
	require.NoError(t, store.Put(ctx, "shards/a.csv.gz", gzipBytes(t, []byte("0,0\n1,1\n"))))
	require.NoError(t, store.Put(ctx, "shards/c.csv.zst", zstdBytes(t, []byte("4,4\n"))))
	require.NoError(t, store.Put(ctx, "other.csv", []byte("9,9\n")))

	var (
		mu    sync.Mutex
		loads []string
	)
	hook := func(li LoadInfo) {
		mu.Lock()
		defer mu.Unlock()
		loads = append(loads, li.Source)
	}

	rc := resource.NewController(resource.Config{MaxConcurrentLoads: 2})
	ds, err := LoadAll(ctx, store, "shards/", WithController(rc), WithLoadHook(hook))
	require.NoError(t, err)

	assert.Equal(t, []geometry.Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}}, ds.Points())
	assert.ElementsMatch(t, []string{"shards/a.csv.gz", "shards/b.csv", "shards/c.csv.zst"}, loads)
	assert.Zero(t, rc.Stats().LoadsInFlight, "load slots are released")
}

func TestLoadAll_LocalStore(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewLocalStore(t.TempDir())

	points, _ := testutil.NewRNG(7).ClusteredPoints(300, 2, 3, 1)
	require.NoError(t, store.Put(ctx, "part-0.csv", testutil.CSV(points[:150])))
	require.NoError(t, store.Put(ctx, "part-1.csv.lz4", lz4Bytes(t, testutil.CSV(points[150:]))))

	ds, err := LoadAll(ctx, store, "part-")
	require.NoError(t, err)
	assert.Equal(t, points, ds.Points())
}

func TestLoadAll_DimensionMismatch(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "a.csv", []byte("0,0\n")))
	require.NoError(t, store.Put(ctx, "b.csv", []byte("0,0,0\n")))

	_, err := LoadAll(ctx, store, "")
	var dm *geometry.ErrDimensionMismatch
	assert.ErrorAs(t, err, &dm)
}

func TestLoadAll_FirstErrorWins(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "a.csv", []byte("0,0\n")))
	require.NoError(t, store.Put(ctx, "b.csv", []byte("0,zz\n")))

	_, err := LoadAll(ctx, store, "")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "b.csv", pe.Source)
}

func TestLoadAll_NoBlobs(t *testing.T) {
	_, err := LoadAll(context.Background(), blobstore.NewMemoryStore(), "nothing/")

	var ioe *IOError
	require.ErrorAs(t, err, &ioe)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoadAll_Canceled(t *testing.T) {
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), "a.csv", []byte("0,0\n")))

	// Zero slots available forces every worker to wait on the context.
	rc := resource.NewController(resource.Config{MaxConcurrentLoads: 1})
	release, err := rc.Slot(context.Background())
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = LoadAll(ctx, store, "", WithController(rc))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadAll_NegativeColumns(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "a.csv", []byte("0,0\n1,1\n")))

	_, err := LoadAll(ctx, store, "", WithColumns(-2))
	assert.ErrorIs(t, err, ErrInvalidColumns)
}
