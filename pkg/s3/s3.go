package s3

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// maxObjectSize caps downloads; the knowledge base is a few KB of JSON.
const maxObjectSize = 8 << 20

type ItfS3 interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
}

type s3Client struct {
	client     *s3.S3
	bucketName string
}

// New builds a client for bucket from AWS_REGION, AWS_ACCESS_KEY_ID and
// AWS_SECRET_ACCESS_KEY.
func New(bucket string) (ItfS3, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket name is empty")
	}

	sess, err := newSession()
	if err != nil {
		return nil, err
	}

	return &s3Client{
		client:     s3.New(sess),
		bucketName: bucket,
	}, nil
}

func (s *s3Client) GetObject(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.bucketName, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxObjectSize+1))
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", s.bucketName, key, err)
	}
	if len(data) > maxObjectSize {
		return nil, fmt.Errorf("s3://%s/%s exceeds %d bytes", s.bucketName, key, maxObjectSize)
	}

	return data, nil
}

func newSession() (*session.Session, error) {
	cfg := &aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
	}

	// Fall back to the SDK's default chain (env, shared config, instance
	// role) when no static keys are set.
	if id := os.Getenv("AWS_ACCESS_KEY_ID"); id != "" {
		cfg.Credentials = credentials.NewStaticCredentials(
			id,
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}

	return sess, nil
}
