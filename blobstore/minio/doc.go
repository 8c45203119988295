// Package minio stores datasets and reports in a MinIO bucket, or any other
// S3-compatible server the minio-go client can talk to (Ceph, SeaweedFS,
// Garage).
//
//	store, err := minio.Dial("localhost:9000", "datasets",
//	    minio.WithSecure(false),
//	    minio.WithPrefix("runs/"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ds, err := dataset.Load(ctx, store, "points.csv")
//
// Without WithStaticCredentials the key pair comes from MINIO_ACCESS_KEY and
// MINIO_SECRET_KEY, or from AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.
package minio
