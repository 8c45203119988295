package azure

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/hupe1980/lloyd/blobstore"
)

// Client is the subset of *azblob.Client used by Store.
type Client interface {
	DownloadStream(ctx context.Context, containerName, blobName string, o *azblob.DownloadStreamOptions) (azblob.DownloadStreamResponse, error)
	UploadBuffer(ctx context.Context, containerName, blobName string, buffer []byte, o *azblob.UploadBufferOptions) (azblob.UploadBufferResponse, error)
	NewListBlobsFlatPager(containerName string, o *azblob.ListBlobsFlatOptions) *runtime.Pager[azblob.ListBlobsFlatResponse]
}

var _ Client = (*azblob.Client)(nil)

// Store implements blobstore.BlobStore for an Azure Blob Storage container.
type Store struct {
	client    Client
	container string
	prefix    string
}

// NewStore wraps client. rootPrefix is prepended to all blob names.
func NewStore(client Client, container, rootPrefix string) *Store {
	return &Store{
		client:    client,
		container: container,
		prefix:    rootPrefix,
	}
}

// Dial connects to the storage account at accountURL with the default Azure
// credential chain.
func Dial(accountURL, container, rootPrefix string) (*Store, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("azure credentials: %w", err)
	}
	client, err := azblob.NewClient(accountURL, cred, nil)
	if err != nil {
		return nil, err
	}
	return NewStore(client, container, rootPrefix), nil
}

// DialConnectionString connects with a storage account connection string.
func DialConnectionString(connectionString, container, rootPrefix string) (*Store, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, err
	}
	return NewStore(client, container, rootPrefix), nil
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open looks the blob up by listing its exact name, which also yields its size.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)

	pager := s.client.NewListBlobsFlatPager(s.container, &azblob.ListBlobsFlatOptions{Prefix: &key})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			if isNotFound(err) {
				break
			}
			return nil, err
		}
		if page.Segment == nil {
			continue
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil || *item.Name != key {
				continue
			}
			var size int64
			if item.Properties != nil && item.Properties.ContentLength != nil {
				size = *item.Properties.ContentLength
			}
			return &azureBlob{client: s.client, container: s.container, key: key, size: size}, nil
		}
	}

	return nil, fmt.Errorf("azure://%s/%s: %w", s.container, key, blobstore.ErrNotFound)
}

// Put uploads data as a block blob, replacing any previous content.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	contentType := blobstore.ContentType(name)
	_, err := s.client.UploadBuffer(ctx, s.container, s.key(name), data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	return err
}

// List returns all blob names with the given prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	fullPrefix := s.key(prefix)
	if strings.HasSuffix(prefix, "/") {
		fullPrefix += "/"
	}

	var names []string
	pager := s.client.NewListBlobsFlatPager(s.container, &azblob.ListBlobsFlatOptions{Prefix: &fullPrefix})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		if page.Segment == nil {
			continue
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			name := strings.TrimPrefix(*item.Name, s.prefix)
			name = strings.TrimPrefix(name, "/")
			if name != "" {
				names = append(names, name)
			}
		}
	}

	sort.Strings(names)
	return names, nil
}

func isNotFound(err error) bool {
	return bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound, bloberror.ResourceNotFound)
}

// azureBlob implements blobstore.Blob for Azure Blob Storage.
type azureBlob struct {
	client    Client
	container string
	key       string
	size      int64
}

func (b *azureBlob) Size() int64 {
	return b.size
}

func (b *azureBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if off >= b.size {
		return nil, io.EOF
	}

	resp, err := b.client.DownloadStream(ctx, b.container, b.key, &azblob.DownloadStreamOptions{
		Range: blob.HTTPRange{Offset: off, Count: min(length, b.size-off)},
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("azure://%s/%s: %w", b.container, b.key, blobstore.ErrNotFound)
		}
		return nil, err
	}
	return resp.Body, nil
}

func (b *azureBlob) Close() error {
	return nil
}
