// Package archive mirrors uploaded inspection photos to S3-compatible object
// storage (R2 in production). The upstream Drive folder is the system of
// record; the archive is a second copy for retention.
package archive

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"fishplant-backend/internal/config"
)

type Archiver struct {
	client *s3.Client
	bucket string
}

// New builds an Archiver from config, or returns nil when archiving is
// disabled. Callers treat a nil Archiver as a no-op.
func New(cfg *config.Config) *Archiver {
	if !cfg.Archive.Enabled {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Archive.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Archive.AccessKey, cfg.Archive.SecretKey, "")),
	)
	if err != nil {
		log.Printf("[Archive] disabled, config load failed: %v", err)
		return nil
	}

	endpoint := cfg.Archive.Endpoint
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = &endpoint
			o.UsePathStyle = true
		}
	})

	log.Printf("[Archive] enabled, bucket %s", cfg.Archive.Bucket)
	return &Archiver{client: client, bucket: cfg.Archive.Bucket}
}

// Put stores one base64-encoded photo under tickets/<ticketId>/<fileName>.
func (a *Archiver) Put(ctx context.Context, ticketID, fileName, contentB64, mimeType string) error {
	if a == nil {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(contentB64)
	if err != nil {
		return fmt.Errorf("decode photo content: %w", err)
	}

	key := fmt.Sprintf("tickets/%s/%s", ticketID, fileName)
	input := &s3.PutObjectInput{
		Bucket: &a.bucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	}
	if mimeType != "" {
		input.ContentType = &mimeType
	}
	if _, err := a.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("archive photo %s: %w", key, err)
	}
	return nil
}
