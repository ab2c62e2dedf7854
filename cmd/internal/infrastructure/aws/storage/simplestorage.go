package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// PathAlunos is the key prefix of aluno photos: alunos/<alunoID>/<uuid><ext>.
const PathAlunos = "alunos/"

type S3Client interface {
	UploadFile(ctx context.Context, data []byte, key string) error
	DeleteFile(ctx context.Context, key string) error
	PublicURL(key string) string
}

type storageClient struct {
	bucket string
	region string
	client *s3.Client
}

func NewStorageClient(ctx context.Context, region, bucket string) (S3Client, error) {
	if bucket == "" {
		return nil, errors.New("bucket name is empty")
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	return &storageClient{
		bucket: bucket,
		region: region,
		client: s3.NewFromConfig(cfg),
	}, nil
}

func (s *storageClient) UploadFile(ctx context.Context, data []byte, key string) error {
	if key == "" {
		return errors.New("key is empty")
	}

	mimeType := mime.TypeByExtension(filepath.Ext(key))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// DeleteFile is idempotent: a missing object is not an error.
func (s *storageClient) DeleteFile(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})

	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *storageClient) PublicURL(key string) string {
	return PublicURL(s.bucket, s.region, key)
}

// PublicURL builds the virtual-hosted style URL of a public object.
func PublicURL(bucket, region, key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, strings.TrimPrefix(key, "/"))
}

// AlunoPhotoKey builds the object key of an aluno photo.
func AlunoPhotoKey(alunoID int64, name, ext string) string {
	return fmt.Sprintf("%s%d/%s%s", PathAlunos, alunoID, name, strings.ToLower(ext))
}
