package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hupe1980/lloyd/blobstore"
	azurestore "github.com/hupe1980/lloyd/blobstore/azure"
	miniostore "github.com/hupe1980/lloyd/blobstore/minio"
	s3store "github.com/hupe1980/lloyd/blobstore/s3"
)

// source names what to load: a single blob, or every blob under a prefix.
type source struct {
	store  blobstore.BlobStore
	name   string
	prefix bool
}

// openSource resolves --store and --source into a store and a blob name.
// A source ending in "/" selects every blob under that prefix.
func openSource(cCtx *cli.Context) (*source, error) {
	name := cCtx.String("source")
	if name == "" {
		return nil, fmt.Errorf("--source is required")
	}
	isPrefix := strings.HasSuffix(name, "/")

	switch kind := cCtx.String("store"); kind {
	case "local":
		root := cCtx.String("root")
		if root == "" {
			if isPrefix {
				root, name = name, ""
			} else {
				root, name = filepath.Dir(name), filepath.Base(name)
			}
		}
		return &source{store: blobstore.NewLocalStore(root), name: name, prefix: isPrefix}, nil

	case "s3":
		bucket := cCtx.String("bucket")
		if bucket == "" {
			return nil, fmt.Errorf("--bucket is required for the s3 store")
		}
		var opts []s3store.Option
		if p := cCtx.String("prefix"); p != "" {
			opts = append(opts, s3store.WithPrefix(p))
		}
		if r := cCtx.String("region"); r != "" {
			opts = append(opts, s3store.WithRegion(r))
		}
		if e := cCtx.String("endpoint"); e != "" {
			opts = append(opts, s3store.WithEndpoint(e))
		}
		store, err := s3store.New(cCtx.Context, bucket, opts...)
		if err != nil {
			return nil, err
		}
		return &source{store: store, name: name, prefix: isPrefix}, nil

	case "minio":
		bucket := cCtx.String("bucket")
		endpoint := cCtx.String("endpoint")
		if bucket == "" || endpoint == "" {
			return nil, fmt.Errorf("--bucket and --endpoint are required for the minio store")
		}
		opts := []miniostore.Option{
			miniostore.WithSecure(cCtx.Bool("secure")),
			miniostore.WithPrefix(cCtx.String("prefix")),
			miniostore.WithRegion(cCtx.String("region")),
		}
		if ak, sk := cCtx.String("access-key"), cCtx.String("secret-key"); ak != "" || sk != "" {
			opts = append(opts, miniostore.WithStaticCredentials(ak, sk))
		}
		store, err := miniostore.Dial(endpoint, bucket, opts...)
		if err != nil {
			return nil, err
		}
		return &source{store: store, name: name, prefix: isPrefix}, nil

	case "azure":
		container := cCtx.String("bucket")
		if container == "" {
			return nil, fmt.Errorf("--bucket is required for the azure store")
		}
		var (
			store *azurestore.Store
			err   error
		)
		switch conn, account := cCtx.String("connection-string"), cCtx.String("account-url"); {
		case conn != "":
			store, err = azurestore.DialConnectionString(conn, container, cCtx.String("prefix"))
		case account != "":
			store, err = azurestore.Dial(account, container, cCtx.String("prefix"))
		default:
			return nil, fmt.Errorf("--account-url or --connection-string is required for the azure store")
		}
		if err != nil {
			return nil, err
		}
		return &source{store: store, name: name, prefix: isPrefix}, nil

	default:
		return nil, fmt.Errorf("unknown store %q (want local, s3, minio or azure)", kind)
	}
}
