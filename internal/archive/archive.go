// Package archive copies generated session containers to S3-compatible
// object storage.
package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/tgsession/internal/common"
	"github.com/google/uuid"
)

const contentType = "application/vnd.sqlite3"

// ErrNoBucket is returned by Upload when no bucket is set.
var ErrNoBucket = errors.New("archive bucket not configured")

// Settings describes the storage backend.
type Settings struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	Prefix       string
}

// PutObjectAPI is the part of the S3 client the uploader needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

// NewClient builds an S3 client for s. Static credentials are used when an
// access key is set, the default chain otherwise.
func NewClient(ctx context.Context, s Settings) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(s.Region)}
	if s.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.AccessKey, s.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Uploader stores files under unique keys in one bucket.
type Uploader struct {
	client PutObjectAPI
	bucket string
	prefix string
	now    func() time.Time
}

// NewUploader returns an Uploader writing to bucket under prefix.
func NewUploader(client PutObjectAPI, bucket, prefix string) *Uploader {
	return &Uploader{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

// StorageKey returns prefix/YYYY/M/D/<uuid>-<name>.
func StorageKey(prefix, name string, t time.Time) string {
	return path.Join(prefix, fmt.Sprintf("%d/%d/%d/%v-%s", t.Year(), t.Month(), t.Day(), uuid.New(), name))
}

// Upload copies the file at localPath and returns its object key. Errors
// wrap common.ErrExternalService.
func (u *Uploader) Upload(ctx context.Context, localPath string) (string, error) {
	if u.bucket == "" {
		return "", fmt.Errorf("%w: %w", common.ErrExternalService, ErrNoBucket)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "", err
	}

	key := StorageKey(u.prefix, filepath.Base(localPath), u.now().UTC())
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(fi.Size()),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: put %s/%s: %w", common.ErrExternalService, u.bucket, key, err)
	}
	return key, nil
}
