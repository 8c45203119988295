// Package azure provides a BlobStore implementation backed by Azure Blob Storage.
//
// Blobs live in a single container; an optional root prefix scopes every
// name. Credentials come either from a connection string or, for an account
// URL, from the azidentity default credential chain (environment, workload
// identity, managed identity, Azure CLI).
//
// # Basic Usage
//
//	store, err := azure.Dial("https://myaccount.blob.core.windows.net/", "datasets", "runs/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ds, err := dataset.LoadAll(ctx, store, "shards/")
//
// An existing *azblob.Client can be wrapped with NewStore.
package azure
