package infra

import (
	"bytes"
	"context"
	"fmt"
	"time"

	appcfg "github.com/29jbarrera/FaktuFlow-back/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ArchivoStore keeps invoice attachments in S3-compatible object storage
// (AWS S3 or MinIO, depending on S3_ENDPOINT). Objects are keyed per owner;
// downloads go through short-lived presigned URLs so file bytes never pass
// back through the API.
type ArchivoStore struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

func NewArchivoStore(ctx context.Context, cfg *appcfg.Config) (*ArchivoStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey, cfg.S3SecretKey, "",
		)))
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true // MinIO
		}
	})

	return &ArchivoStore{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.S3Bucket,
	}, nil
}

// NewKey builds the object key for a new attachment.
func (s *ArchivoStore) NewKey(usuarioID uint, ext string) string {
	return fmt.Sprintf("facturas/%d/%s%s", usuarioID, uuid.New(), ext)
}

// Upload writes the attachment bytes under key.
func (s *ArchivoStore) Upload(ctx context.Context, key, contentType string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("storage: put %q: %w", key, err)
	}
	return nil
}

// PresignGet returns a 15-minute download URL for key.
func (s *ArchivoStore) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", fmt.Errorf("storage: presign %q: %w", key, err)
	}
	return req.URL, nil
}

// Delete removes an attachment object; missing keys are not an error.
func (s *ArchivoStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("storage: delete %q: %w", key, err)
	}
	return nil
}
