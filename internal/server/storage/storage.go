// Package storage keeps catalog image assets in an S3-compatible bucket and
// hands out their public URLs.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/catalogadmin/internal/server/config"
	"github.com/google/uuid"
)

// ErrForeignURL is returned by Remove for URLs this store did not produce.
var ErrForeignURL = errors.New("url does not belong to this store")

// BlobStore is what the catalog services need from blob storage.
type BlobStore interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
	Remove(ctx context.Context, url string) error
}

type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) s3API {
		return s3.NewFromConfig(cfg, optFns...)
	}

	now = time.Now
)

type S3Store struct {
	client     s3API
	bucket     string
	publicBase string
}

// NewS3Store builds a client from static credentials. Objects are addressed
// path-style so MinIO and similar servers work without DNS tricks.
func NewS3Store(ctx context.Context, c *sc.Config) (*S3Store, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.S3RootUser,
			c.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.S3BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return newS3Store(client, c.S3Bucket, publicBase(c)), nil
}

func newS3Store(client s3API, bucket, base string) *S3Store {
	return &S3Store{client: client, bucket: bucket, publicBase: strings.TrimRight(base, "/") + "/"}
}

func publicBase(c *sc.Config) string {
	if c.S3PublicBaseURL != "" {
		return c.S3PublicBaseURL
	}
	return strings.TrimRight(c.S3BaseEndpoint, "/") + "/" + c.S3Bucket
}

// Upload stores body under key with public-read semantics left to the bucket
// policy, and returns the object's public URL.
func (s *S3Store) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return s.publicBase + key, nil
}

// KeyFromURL is the inverse of the URL returned by Upload.
func (s *S3Store) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, s.publicBase)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

func (s *S3Store) Remove(ctx context.Context, url string) error {
	key, ok := s.KeyFromURL(url)
	if !ok {
		return fmt.Errorf("%w: %s", ErrForeignURL, url)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// ExtensionFor maps an image MIME type to a file extension, defaulting to jpg.
func ExtensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	default:
		return "jpg"
	}
}

// NewObjectKey returns a fresh key of the form <collection>/<yyyy>/<mm>/<uuid>.<ext>.
func NewObjectKey(collection, contentType string) string {
	d := now()
	return fmt.Sprintf("%s/%04d/%02d/%v.%s", collection, d.Year(), int(d.Month()), uuid.New(), ExtensionFor(contentType))
}
