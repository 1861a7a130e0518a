package s3store

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/domain"
)

// Store implements domain.AttachmentStore on an S3-compatible bucket.
type Store struct {
	client  *s3.Client
	bucket  string
	baseURL string // public object URL prefix, no trailing slash
	host    string // host substring used to recognize store-hosted URLs
}

// NewStore wires an attachment store around an S3 client. Objects are
// served from virtual-hosted AWS URLs, or path-style endpoint URLs for
// Wasabi.
func NewStore(client *s3.Client, cfg ClientConfig) *Store {
	var base string
	if cfg.Provider == ProviderWasabi {
		endpoint := cfg.WasabiEndpoint
		if endpoint == "" {
			endpoint = WasabiEndpoints[cfg.Region]
		}
		base = fmt.Sprintf("https://%s/%s", endpoint, cfg.Bucket)
	} else {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	host := base
	if u, err := url.Parse(base); err == nil {
		host = u.Host
	}

	return &Store{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: base,
		host:    host,
	}
}

func (s *Store) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Owns reports whether the URL points into this bucket.
func (s *Store) Owns(rawURL string) bool {
	return strings.Contains(rawURL, s.host)
}

var _ domain.AttachmentStore = (*Store)(nil)
