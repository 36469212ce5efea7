package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/shenikar/danger_zones/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	buckets map[string]bool
	objects map[string][]byte
	putErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{buckets: map[string]bool{}, objects: map[string][]byte{}}
}

func (f *fakeStore) BucketExists(_ context.Context, bucketName string) (bool, error) {
	return f.buckets[bucketName], nil
}

func (f *fakeStore) MakeBucket(_ context.Context, bucketName string, _ minio.MakeBucketOptions) error {
	f.buckets[bucketName] = true
	return nil
}

func (f *fakeStore) PutObject(_ context.Context, bucketName, objectName string, reader io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[bucketName+"/"+objectName] = data
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: int64(len(data))}, nil
}

func TestArchiver_EnsureBucket(t *testing.T) {
	store := newFakeStore()
	a := NewArchiver(store, "zone-snapshots")

	require.NoError(t, a.EnsureBucket(context.Background()))
	assert.True(t, store.buckets["zone-snapshots"])
	require.NoError(t, a.EnsureBucket(context.Background()))
}

func TestArchiver_Archive(t *testing.T) {
	store := newFakeStore()
	a := NewArchiver(store, "zone-snapshots")
	takenAt := time.Date(2024, 11, 6, 10, 30, 0, 0, time.UTC)
	zones := []models.Zone{{ID: uuid.New(), Name: "Juriquilla", ConfirmedIncidents: 1}}

	name, err := a.Archive(context.Background(), zones, takenAt)
	require.NoError(t, err)
	assert.Equal(t, "zones/2024/11/06/20241106T103000.000Z.json", name)

	var doc Document
	require.NoError(t, json.Unmarshal(store.objects["zone-snapshots/"+name], &doc))
	assert.True(t, takenAt.Equal(doc.TakenAt))
	require.Len(t, doc.Zones, 1)
	assert.Equal(t, "Juriquilla", doc.Zones[0].Name)
}

func TestArchiver_ArchiveError(t *testing.T) {
	store := newFakeStore()
	store.putErr = errors.New("access denied")
	a := NewArchiver(store, "zone-snapshots")

	_, err := a.Archive(context.Background(), nil, time.Now())
	assert.ErrorContains(t, err, "failed to upload snapshot")
}
