// Package s3 stores datasets and reports in an Amazon S3 bucket with
// aws-sdk-go-v2.
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("datasets/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	ds, err := dataset.LoadAll(ctx, store, "shards/")
//
// Credentials and region come from the default AWS chain (environment,
// shared config, IMDS). Blobs are read with ranged GETs and written through
// the feature/s3/manager uploader. WithEndpoint targets S3-compatible
// servers with path-style addressing.
package s3
