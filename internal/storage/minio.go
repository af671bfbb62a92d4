package storage

import (
	"fmt"

	"github.com/AdaptationAtlas/data-management/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// NewMinIOClient establishes a MinIO client using the provided configuration.
// When no credentials are configured the client runs unsigned, which is enough
// for public buckets.
func NewMinIOClient(cfg config.StorageConfig) (*minio.Client, error) {
	creds := credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	if cfg.Anonymous {
		creds = credentials.NewStatic("", "", "", credentials.SignatureAnonymous)
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return client, nil
}
