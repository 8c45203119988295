// Package blobstore provides the storage abstraction datasets are loaded from
// and clustering reports are written to.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with mmap reads and atomic writes
//   - MemoryStore: In-memory store for tests
//   - s3.Store: Amazon S3 (aws-sdk-go-v2) with range reads and managed uploads
//   - minio.Store: MinIO and other S3-compatible services (minio-go)
//   - azure.Store: Azure Blob Storage (azblob, azidentity)
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Blob names always use forward slashes, whatever the backend.
package blobstore
