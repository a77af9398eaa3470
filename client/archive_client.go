package client

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/Aashish23092/expense-insights/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Archiver writes to an S3-compatible bucket such as Cloudflare R2.
type R2Archiver struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewR2Archiver(ctx context.Context, cfg config.ArchiveConfig) (*R2Archiver, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &R2Archiver{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

func (r *R2Archiver) Archive(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", key, err)
	}

	if r.baseURL == "" {
		return fmt.Sprintf("s3://%s/%s", r.bucket, key), nil
	}
	return fmt.Sprintf("%s/%s", r.baseURL, key), nil
}
