package kvstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/epicurean/epicurean/config"
)

// S3Store keeps one object per key. Works with AWS S3, MinIO, DigitalOcean
// Spaces and Cloudflare R2.
type S3Store struct {
	client *s3.Client
	bucket string
}

func NewS3Store() (*S3Store, error) {
	bucket := config.CartS3Bucket()
	if bucket == "" {
		return nil, fmt.Errorf("kvstore/s3: CART_S3_BUCKET is not configured")
	}

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(config.CartS3Region()),
	}

	// Static credentials (required for MinIO / R2 / Spaces).
	if key, secret := config.CartS3Key(), config.CartS3Secret(); key != "" && secret != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, ""),
		))
	}

	cfg, err := awscfg.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("kvstore/s3: load config: %w", err)
	}

	clientOpts := []func(*s3.Options){}
	if endpoint := config.CartS3Endpoint(); endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true // required for MinIO
		})
	}

	return &S3Store{
		client: s3.NewFromConfig(cfg, clientOpts...),
		bucket: bucket,
	}, nil
}

func (s *S3Store) objectKey(key string) string {
	return strings.ReplaceAll(key, ":", "/") + ".json"
}

func (s *S3Store) Get(key string) (string, bool, error) {
	out, err := s.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kvstore/s3: get %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return "", false, fmt.Errorf("kvstore/s3: read %s: %w", key, err)
	}
	return string(data), true, nil
}

func (s *S3Store) Set(key, value string) error {
	_, err := s.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
		Body:   bytes.NewReader([]byte(value)),
	})
	if err != nil {
		return fmt.Errorf("kvstore/s3: put %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) Delete(key string) error {
	_, err := s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return fmt.Errorf("kvstore/s3: delete %s: %w", key, err)
	}
	return nil
}
