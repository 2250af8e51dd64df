package photostorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	appconfig "hospital-maintenance/pkg/config"
	apperrors "hospital-maintenance/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type S3PhotoStorage struct {
	client       s3API
	bucket       string
	region       string
	endpoint     string
	customDomain string
	pathStyle    bool
}

func NewS3PhotoStorage(cfg appconfig.S3Config) (PhotoStorageInterface, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("photo storage: bucket is required")
	}

	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		UsePathStyle: cfg.UsePathStyle,
	}

	endpoint := strings.TrimSuffix(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		opts.BaseEndpoint = aws.String(endpoint)
	}

	return &S3PhotoStorage{
		client:       s3.New(opts),
		bucket:       cfg.Bucket,
		region:       cfg.Region,
		endpoint:     endpoint,
		customDomain: strings.TrimSuffix(strings.TrimSpace(cfg.CustomDomain), "/"),
		pathStyle:    cfg.UsePathStyle,
	}, nil
}

// objectKey builds a collision-resistant key under the equipment's namespace.
func (s *S3PhotoStorage) objectKey(equipmentCode, originalFileName string) string {
	ext := filepath.Ext(originalFileName)
	return fmt.Sprintf("%s/%d-%s%s", equipmentCode, time.Now().UnixMilli(), uuid.New().String(), ext)
}

func (s *S3PhotoStorage) publicURL(key string) string {
	if s.customDomain != "" {
		return fmt.Sprintf("%s/%s", s.customDomain, key)
	}
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *S3PhotoStorage) Upload(ctx context.Context, file File, equipmentCode string) (string, error) {
	content, err := io.ReadAll(file.Content)
	if err != nil {
		return "", fmt.Errorf("reading photo %s: %w", file.Name, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(file.Name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := s.objectKey(equipmentCode, file.Name)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading photo %s: %w", file.Name, err)
	}

	return s.publicURL(key), nil
}

// UploadMany uploads all files concurrently. The batch is all-or-nothing:
// a single failure fails the whole call.
func (s *S3PhotoStorage) UploadMany(ctx context.Context, files []File, equipmentCode string) ([]string, error) {
	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)

	for i, file := range files {
		g.Go(func() error {
			url, err := s.Upload(gctx, file, equipmentCode)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

// keyFromURL reverse-maps a public URL to the object key. It recognizes the
// three URL shapes publicURL emits; anything else is rejected before a remote
// call is attempted.
func (s *S3PhotoStorage) keyFromURL(fileURL string) (string, error) {
	// Custom-domain URLs carry the key directly after the domain.
	if s.customDomain != "" && strings.HasPrefix(fileURL, s.customDomain+"/") {
		if key := strings.TrimPrefix(fileURL, s.customDomain+"/"); key != "" {
			return key, nil
		}
		return "", apperrors.NewInvalidInputError("invalid photo URL: %s", fileURL)
	}

	// Virtual-hosted AWS URLs have the bucket in the hostname.
	if hostPrefix := "https://" + s.bucket + ".s3."; strings.HasPrefix(fileURL, hostPrefix) {
		rest := fileURL[len(hostPrefix):]
		if idx := strings.Index(rest, "/"); idx >= 0 && rest[idx+1:] != "" {
			return rest[idx+1:], nil
		}
		return "", apperrors.NewInvalidInputError("invalid photo URL: %s", fileURL)
	}

	// Path-style endpoint URLs put the key after the bucket segment.
	marker := "/" + s.bucket + "/"
	if idx := strings.Index(fileURL, marker); idx >= 0 {
		if key := fileURL[idx+len(marker):]; key != "" {
			return key, nil
		}
	}
	return "", apperrors.NewInvalidInputError("invalid photo URL: %s", fileURL)
}

func (s *S3PhotoStorage) Delete(ctx context.Context, fileURL string) error {
	key, err := s.keyFromURL(fileURL)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting photo %s: %w", key, err)
	}
	return nil
}

func (s *S3PhotoStorage) DeleteMany(ctx context.Context, fileURLs []string) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, fileURL := range fileURLs {
		g.Go(func() error {
			return s.Delete(gctx, fileURL)
		})
	}
	return g.Wait()
}

func (s *S3PhotoStorage) ListForEquipment(ctx context.Context, equipmentCode string) ([]string, error) {
	prefix := equipmentCode + "/"
	urls := make([]string, 0)

	var continuationToken *string
	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: continuationToken,
		})
		if err != nil {
			return nil, fmt.Errorf("listing photos for %s: %w", equipmentCode, err)
		}

		for _, obj := range out.Contents {
			if obj.Key != nil {
				urls = append(urls, s.publicURL(*obj.Key))
			}
		}

		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		continuationToken = out.NextContinuationToken
	}

	return urls, nil
}
