package archive

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const csvContentType = "text/csv"

//go:generate mockgen --build_flags=--mod=mod -source=./archive.go -destination=./test/mock_archive.go -package test

// Archiver keeps a copy of every exported file
type Archiver interface {
	Archive(ctx context.Context, runId string, startedTime time.Time, data []byte) (string, error)
}

type Config struct {
	Bucket          string `envconfig:"TESTLEDGER_EXPORT_ARCHIVE_BUCKET"`
	Region          string `envconfig:"TESTLEDGER_EXPORT_ARCHIVE_REGION" default:"us-east-1"`
	Endpoint        string `envconfig:"TESTLEDGER_EXPORT_ARCHIVE_ENDPOINT"`
	PathStyle       bool   `envconfig:"TESTLEDGER_EXPORT_ARCHIVE_PATH_STYLE" default:"false"`
	Prefix          string `envconfig:"TESTLEDGER_EXPORT_ARCHIVE_PREFIX" default:"exports"`
	AccessKeyId     string `envconfig:"TESTLEDGER_EXPORT_ARCHIVE_ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"TESTLEDGER_EXPORT_ARCHIVE_SECRET_ACCESS_KEY"`
}

func NewConfig() (Config, error) {
	cfg := Config{}
	err := envconfig.Process("", &cfg)
	return cfg, err
}

// NewArchiver returns an S3 archiver, or a no-op archiver when no bucket is configured
func NewArchiver(cfg Config, logger *zap.SugaredLogger) (Archiver, error) {
	if cfg.Bucket == "" {
		logger.Infow("export archive is disabled because no bucket is configured")
		return &noopArchiver{}, nil
	}

	client, err := NewS3Client(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	return NewS3Archiver(client, cfg, logger), nil
}

func NewS3Client(ctx context.Context, cfg Config) (*s3.Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyId != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyId, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

type S3Archiver struct {
	client *s3.Client
	bucket string
	prefix string
	logger *zap.SugaredLogger
}

func NewS3Archiver(client *s3.Client, cfg Config, logger *zap.SugaredLogger) *S3Archiver {
	return &S3Archiver{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		logger: logger,
	}
}

func (s *S3Archiver) Archive(ctx context.Context, runId string, startedTime time.Time, data []byte) (string, error) {
	key := Key(s.prefix, runId, startedTime)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(csvContentType),
		Metadata: map[string]string{
			"run-id": runId,
		},
	})
	if err != nil {
		return "", fmt.Errorf("unable to archive export %s: %w", key, err)
	}

	s.logger.Infow("archived export file", "bucket", s.bucket, "key", key, "bytes", len(data))
	return key, nil
}

// Key returns the object key of an export file, partitioned by the run's start date
func Key(prefix string, runId string, startedTime time.Time) string {
	t := startedTime.UTC()
	key := fmt.Sprintf("%04d/%02d/%02d/%s-%s.csv", t.Year(), t.Month(), t.Day(), t.Format("150405"), runId)
	if prefix == "" {
		return key
	}
	return fmt.Sprintf("%s/%s", prefix, key)
}

type noopArchiver struct{}

func (n *noopArchiver) Archive(_ context.Context, _ string, _ time.Time, _ []byte) (string, error) {
	return "", nil
}

var _ Archiver = &S3Archiver{}

var Module = fx.Provide(
	NewConfig,
	NewArchiver,
)
