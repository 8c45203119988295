package main

import (
	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:            "lloyd",
		Usage:           "Cluster points with Lloyd's k-means algorithm",
		UsageText:       "lloyd COMMAND [OPTIONS]",
		HideVersion:     true,
		HideHelpCommand: true,
		Commands: []*cli.Command{
			clusterCommand(),
			costCommand(),
		},
	}
}

func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "store",
			Value:   "local",
			Usage:   "Blob store holding the source: local, s3, minio or azure",
			EnvVars: []string{"LLOYD_STORE"},
		},
		&cli.StringFlag{
			Name:    "root",
			Usage:   "Root directory of the local store (default: directory of --source)",
			EnvVars: []string{"LLOYD_ROOT"},
		},
		&cli.StringFlag{
			Name:    "bucket",
			Usage:   "Bucket of the s3 or minio store, container of the azure store",
			EnvVars: []string{"LLOYD_BUCKET"},
		},
		&cli.StringFlag{
			Name:    "prefix",
			Usage:   "Key prefix inside the bucket",
			EnvVars: []string{"LLOYD_PREFIX"},
		},
		&cli.StringFlag{
			Name:    "endpoint",
			Usage:   "Endpoint of the s3 or minio store",
			EnvVars: []string{"LLOYD_ENDPOINT"},
		},
		&cli.StringFlag{
			Name:    "region",
			Usage:   "Region of the s3 or minio store",
			EnvVars: []string{"LLOYD_REGION", "AWS_REGION"},
		},
		&cli.StringFlag{
			Name:    "access-key",
			Usage:   "Access key of the minio store (default: MINIO_ACCESS_KEY or AWS_ACCESS_KEY_ID)",
			EnvVars: []string{"LLOYD_ACCESS_KEY"},
		},
		&cli.StringFlag{
			Name:    "secret-key",
			Usage:   "Secret key of the minio store (default: MINIO_SECRET_KEY or AWS_SECRET_ACCESS_KEY)",
			EnvVars: []string{"LLOYD_SECRET_KEY"},
		},
		&cli.BoolFlag{
			Name:    "secure",
			Value:   true,
			Usage:   "Use TLS for the minio store",
			EnvVars: []string{"LLOYD_SECURE"},
		},
		&cli.StringFlag{
			Name:    "account-url",
			Usage:   "Storage account URL of the azure store, authenticated with the default Azure credential chain",
			EnvVars: []string{"LLOYD_ACCOUNT_URL"},
		},
		&cli.StringFlag{
			Name:    "connection-string",
			Usage:   "Storage account connection string of the azure store",
			EnvVars: []string{"LLOYD_CONNECTION_STRING", "AZURE_STORAGE_CONNECTION_STRING"},
		},
	}
}

func logFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-format",
			Value:   "text",
			Usage:   "Log format: text or json",
			EnvVars: []string{"LLOYD_LOG_FORMAT"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "warn",
			Usage:   "Minimum log level: debug, info, warn or error",
			EnvVars: []string{"LLOYD_LOG_LEVEL"},
		},
	}
}
