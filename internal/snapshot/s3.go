// Package snapshot архивирует состояние всех зон в S3-совместимое хранилище.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/shenikar/danger_zones/internal/config"
	"github.com/shenikar/danger_zones/internal/models"
)

// ObjectStore - подмножество minio.Client, которое использует Archiver
type ObjectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Document - содержимое снимка
type Document struct {
	TakenAt time.Time     `json:"taken_at"`
	Zones   []models.Zone `json:"zones"`
}

// Archiver сохраняет снимки зон в бакет
type Archiver struct {
	store  ObjectStore
	bucket string
}

// NewMinioClient создает клиента MinIO по конфигурации
func NewMinioClient(cfg *config.Config) (*minio.Client, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}
	return client, nil
}

// NewArchiver создает новый Archiver
func NewArchiver(store ObjectStore, bucket string) *Archiver {
	return &Archiver{
		store:  store,
		bucket: bucket,
	}
}

// EnsureBucket создает бакет, если его нет
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.store.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.store.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
	}
	return nil
}

// Archive сохраняет снимок и возвращает имя объекта
func (a *Archiver) Archive(ctx context.Context, zones []models.Zone, takenAt time.Time) (string, error) {
	payload, err := json.Marshal(Document{TakenAt: takenAt.UTC(), Zones: zones})
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	objectName := ObjectName(takenAt)
	_, err = a.store.PutObject(ctx, a.bucket, objectName, bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot %s: %w", objectName, err)
	}
	return objectName, nil
}

// ObjectName возвращает ключ объекта для момента снятия снимка
func ObjectName(takenAt time.Time) string {
	t := takenAt.UTC()
	return fmt.Sprintf("zones/%s/%s.json", t.Format("2006/01/02"), t.Format("20060102T150405.000Z"))
}
