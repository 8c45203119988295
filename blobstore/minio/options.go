package minio

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type options struct {
	prefix    string
	region    string
	secure    bool
	accessKey string
	secretKey string
}

// Option configures Dial.
type Option func(*options)

// WithPrefix scopes every blob name under prefix (e.g. "datasets/").
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithRegion skips the bucket location lookup. Required by servers that do
// not implement GetBucketLocation.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithSecure toggles TLS. Default: true.
func WithSecure(secure bool) Option {
	return func(o *options) { o.secure = secure }
}

// WithStaticCredentials signs requests with a fixed key pair. Without it Dial
// reads MINIO_ACCESS_KEY/MINIO_SECRET_KEY, then the AWS_* variables.
func WithStaticCredentials(accessKey, secretKey string) Option {
	return func(o *options) {
		o.accessKey = accessKey
		o.secretKey = secretKey
	}
}

func (o options) credentials() *credentials.Credentials {
	if o.accessKey != "" || o.secretKey != "" {
		return credentials.NewStaticV4(o.accessKey, o.secretKey, "")
	}
	return credentials.NewChainCredentials([]credentials.Provider{
		&credentials.EnvMinio{},
		&credentials.EnvAWS{},
	})
}

func (o options) client() *minio.Options {
	return &minio.Options{
		Creds:  o.credentials(),
		Secure: o.secure,
		Region: o.region,
	}
}
