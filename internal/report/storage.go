package report

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const reportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ObjectStorage interface {
	Save(ctx context.Context, objectKey string, data []byte) (checksum string, size int64, err error)
	Get(ctx context.Context, objectKey string) (io.ReadCloser, int64, error)
	Bucket() string
}

type minioStorage struct {
	client     *minio.Client
	bucketName string
}

func hashSHA256(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func NewMinioStorage(endpoint, accessKey, secretKey string, useSSL bool, bucket string) (ObjectStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, errBucket := client.BucketExists(ctx, bucket)
	if errBucket != nil {
		return nil, errBucket
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &minioStorage{
		client:     client,
		bucketName: bucket,
	}, nil
}

func (s *minioStorage) Save(ctx context.Context, objectKey string, data []byte) (string, int64, error) {
	reader := bytes.NewReader(data)
	size := int64(len(data))
	checksum := hashSHA256(data)

	_, err := s.client.PutObject(ctx, s.bucketName, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: reportContentType,
	})
	if err != nil {
		return "", 0, err
	}

	return checksum, size, nil
}

func (s *minioStorage) Get(ctx context.Context, objectKey string) (io.ReadCloser, int64, error) {
	obj, err := s.client.GetObject(ctx, s.bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, err
	}

	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, 0, err
	}

	return obj, stat.Size, nil
}

func (s *minioStorage) Bucket() string {
	return s.bucketName
}
