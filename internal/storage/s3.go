package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/TaiyoMatsuda/board-app/internal/config"
	"github.com/TaiyoMatsuda/board-app/internal/domain"
)

var errMissingBucket = errors.New("storage.s3.bucket is required")

// ObjectAPI is the part of the S3 client the storage uses.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3 stores files in an S3 compatible bucket. A custom endpoint switches to
// path style addressing, which MinIO and LocalStack expect.
type S3 struct {
	client    ObjectAPI
	bucket    string
	publicURL string
	staticURL string
	maxBytes  int64
}

func NewS3(conf *config.StorageConfig) (*S3, error) {
	if conf.S3 == nil || conf.S3.Bucket == "" {
		return nil, errMissingBucket
	}

	awsConf := aws.Config{
		Region: conf.S3.Region,
	}
	if conf.S3.AccessKeyID != "" {
		awsConf.Credentials = credentials.NewStaticCredentialsProvider(conf.S3.AccessKeyID, conf.S3.SecretAccessKey, "")
	}

	client := s3.NewFromConfig(awsConf, func(o *s3.Options) {
		if conf.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.S3.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3WithClient(client, conf), nil
}

func NewS3WithClient(client ObjectAPI, conf *config.StorageConfig) *S3 {
	publicURL := conf.S3.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", conf.S3.Bucket, conf.S3.Region)
	}

	return &S3{
		client:    client,
		bucket:    conf.S3.Bucket,
		publicURL: publicURL,
		staticURL: conf.StaticURL,
		maxBytes:  conf.MaxUploadBytes,
	}
}

func (s *S3) Save(ctx context.Context, kind Kind, upload domain.Upload) (string, error) {
	obj, err := prepare(kind, upload, s.maxBytes)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(obj.key),
		Body:          obj.reader(),
		ContentType:   aws.String(obj.contentType),
		ContentLength: aws.Int64(int64(len(obj.body))),
	})
	if err != nil {
		return "", fmt.Errorf("s.client.PutObject -> %w", err)
	}

	return obj.key, nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s.client.DeleteObject -> %w", err)
	}

	return nil
}

func (s *S3) URL(key, placeholder string) string {
	if key == "" {
		return joinURL(s.staticURL, placeholder)
	}

	return joinURL(s.publicURL, key)
}
