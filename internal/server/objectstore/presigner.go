// Package objectstore issues presigned S3 upload URLs for diary images.
// It works against AWS S3 and S3-compatible stores such as MinIO.
package objectstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/lifeboard/internal/common"
	sc "github.com/dmitrijs2005/lifeboard/internal/server/config"
	"github.com/google/uuid"
)

// DefaultExpiry is how long a presigned upload URL stays valid.
const DefaultExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	now = time.Now
)

// Presigner signs PUT requests against the configured bucket.
type Presigner struct {
	config *sc.Config
	expiry time.Duration
}

func NewPresigner(config *sc.Config) *Presigner {
	return &Presigner{config: config, expiry: DefaultExpiry}
}

// Enabled reports whether a bucket is configured.
func (p *Presigner) Enabled() bool {
	return p.config.S3Bucket != ""
}

// NewStorageKey returns a date-partitioned random object key.
func NewStorageKey() string {
	d := now()
	return fmt.Sprintf("diary/%d/%02d/%02d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (p *Presigner) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(p.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			p.config.S3RootUser,
			p.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(p.config.S3BaseEndpoint)
		// MinIO serves buckets under the path, not a subdomain.
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignPut returns a fresh object key and a URL the client can PUT to.
func (p *Presigner) PresignPut(ctx context.Context) (string, string, error) {
	if !p.Enabled() {
		return "", "", common.ErrorStorageDisabled
	}

	pc, err := p.presignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := p.config.S3Bucket
	key := NewStorageKey()

	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// ObjectLink is the path-style URL of key within the bucket.
func (p *Presigner) ObjectLink(key string) string {
	return strings.TrimRight(p.config.S3BaseEndpoint, "/") + "/" + p.config.S3Bucket + "/" + key
}
