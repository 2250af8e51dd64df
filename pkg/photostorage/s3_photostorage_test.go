package photostorage

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	apperrors "hospital-maintenance/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	mu        sync.Mutex
	putKeys   []string
	putTypes  []string
	deleted   []string
	putErr    error
	deleteErr error
	listPages []*s3.ListObjectsV2Output
	listCalls int
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.putKeys = append(f.putKeys, *params.Key)
	f.putTypes = append(f.putTypes, *params.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.deleted = append(f.deleted, *params.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listCalls >= len(f.listPages) {
		return &s3.ListObjectsV2Output{}, nil
	}
	page := f.listPages[f.listCalls]
	f.listCalls++
	return page, nil
}

func newTestStorage(client s3API) *S3PhotoStorage {
	return &S3PhotoStorage{
		client: client,
		bucket: "hospital-photos",
		region: "eu-central-1",
	}
}

func TestObjectKey(t *testing.T) {
	storage := newTestStorage(&fakeS3{})

	key := storage.objectKey("EQ-XR-001", "broken panel.jpg")
	assert.True(t, strings.HasPrefix(key, "EQ-XR-001/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	other := storage.objectKey("EQ-XR-001", "broken panel.jpg")
	assert.NotEqual(t, key, other, "keys must not collide for identical file names")
}

func TestPublicURL(t *testing.T) {
	t.Run("virtual-hosted AWS URL by default", func(t *testing.T) {
		storage := newTestStorage(&fakeS3{})
		url := storage.publicURL("EQ-XR-001/photo.jpg")
		assert.Equal(t, "https://hospital-photos.s3.eu-central-1.amazonaws.com/EQ-XR-001/photo.jpg", url)
	})

	t.Run("endpoint URL for S3-compatible stores", func(t *testing.T) {
		storage := newTestStorage(&fakeS3{})
		storage.endpoint = "https://storage.example.com"
		url := storage.publicURL("EQ-XR-001/photo.jpg")
		assert.Equal(t, "https://storage.example.com/hospital-photos/EQ-XR-001/photo.jpg", url)
	})

	t.Run("custom domain wins", func(t *testing.T) {
		storage := newTestStorage(&fakeS3{})
		storage.endpoint = "https://storage.example.com"
		storage.customDomain = "https://photos.hospital.tj"
		url := storage.publicURL("EQ-XR-001/photo.jpg")
		assert.Equal(t, "https://photos.hospital.tj/EQ-XR-001/photo.jpg", url)
	})
}

func TestKeyFromURL(t *testing.T) {
	storage := newTestStorage(&fakeS3{})

	t.Run("virtual-hosted AWS URL", func(t *testing.T) {
		key, err := storage.keyFromURL("https://hospital-photos.s3.eu-central-1.amazonaws.com/EQ-XR-001/photo.jpg")
		require.NoError(t, err)
		assert.Equal(t, "EQ-XR-001/photo.jpg", key)
	})

	t.Run("path-style endpoint URL", func(t *testing.T) {
		key, err := storage.keyFromURL("https://storage.example.com/hospital-photos/EQ-XR-001/photo.jpg")
		require.NoError(t, err)
		assert.Equal(t, "EQ-XR-001/photo.jpg", key)
	})

	t.Run("custom domain URL", func(t *testing.T) {
		storage := newTestStorage(&fakeS3{})
		storage.customDomain = "https://photos.hospital.tj"
		key, err := storage.keyFromURL("https://photos.hospital.tj/EQ-XR-001/photo.jpg")
		require.NoError(t, err)
		assert.Equal(t, "EQ-XR-001/photo.jpg", key)
	})

	t.Run("foreign URL is rejected", func(t *testing.T) {
		_, err := storage.keyFromURL("https://other.example.com/something.jpg")
		var invalid *apperrors.InvalidInputError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("marker with empty key is rejected", func(t *testing.T) {
		_, err := storage.keyFromURL("https://storage.example.com/hospital-photos/")
		var invalid *apperrors.InvalidInputError
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores under the equipment namespace with a content type", func(t *testing.T) {
		client := &fakeS3{}
		storage := newTestStorage(client)

		url, err := storage.Upload(ctx, File{Name: "panel.jpg", Content: strings.NewReader("jpeg")}, "EQ-XR-001")
		require.NoError(t, err)

		require.Len(t, client.putKeys, 1)
		assert.True(t, strings.HasPrefix(client.putKeys[0], "EQ-XR-001/"))
		assert.Equal(t, "image/jpeg", client.putTypes[0])
		assert.Contains(t, url, client.putKeys[0])
	})

	t.Run("unknown extensions fall back to octet-stream", func(t *testing.T) {
		client := &fakeS3{}
		storage := newTestStorage(client)

		_, err := storage.Upload(ctx, File{Name: "photo.unknownext", Content: strings.NewReader("x")}, "EQ-XR-001")
		require.NoError(t, err)
		assert.Equal(t, "application/octet-stream", client.putTypes[0])
	})
}

func TestUploadMany(t *testing.T) {
	ctx := context.Background()

	t.Run("preserves input order", func(t *testing.T) {
		client := &fakeS3{}
		storage := newTestStorage(client)

		urls, err := storage.UploadMany(ctx, []File{
			{Name: "first.jpg", Content: strings.NewReader("a")},
			{Name: "second.png", Content: strings.NewReader("b")},
			{Name: "third.jpg", Content: strings.NewReader("c")},
		}, "EQ-XR-001")
		require.NoError(t, err)

		require.Len(t, urls, 3)
		assert.True(t, strings.HasSuffix(urls[0], ".jpg"))
		assert.True(t, strings.HasSuffix(urls[1], ".png"))
		assert.True(t, strings.HasSuffix(urls[2], ".jpg"))
	})

	t.Run("is all-or-nothing", func(t *testing.T) {
		client := &fakeS3{putErr: errors.New("access denied")}
		storage := newTestStorage(client)

		urls, err := storage.UploadMany(ctx, []File{
			{Name: "first.jpg", Content: strings.NewReader("a")},
		}, "EQ-XR-001")
		require.Error(t, err)
		assert.Nil(t, urls)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves the key before calling the store", func(t *testing.T) {
		client := &fakeS3{}
		storage := newTestStorage(client)

		err := storage.Delete(ctx, "https://x.example.com/hospital-photos/EQ-XR-001/photo.jpg")
		require.NoError(t, err)
		assert.Equal(t, []string{"EQ-XR-001/photo.jpg"}, client.deleted)
	})

	t.Run("invalid URL never reaches the store", func(t *testing.T) {
		client := &fakeS3{}
		storage := newTestStorage(client)

		err := storage.Delete(ctx, "https://elsewhere.example.com/photo.jpg")
		require.Error(t, err)
		assert.Empty(t, client.deleted)
	})
}

func TestListForEquipment(t *testing.T) {
	truncated := true
	done := false
	keyA := "EQ-XR-001/a.jpg"
	keyB := "EQ-XR-001/b.jpg"
	token := "next"

	client := &fakeS3{listPages: []*s3.ListObjectsV2Output{
		{
			Contents:              []s3types.Object{{Key: &keyA}},
			IsTruncated:           &truncated,
			NextContinuationToken: &token,
		},
		{
			Contents:    []s3types.Object{{Key: &keyB}},
			IsTruncated: &done,
		},
	}}
	storage := newTestStorage(client)

	urls, err := storage.ListForEquipment(context.Background(), "EQ-XR-001")
	require.NoError(t, err)
	require.Len(t, urls, 2)
	assert.Contains(t, urls[0], keyA)
	assert.Contains(t, urls[1], keyB)
	assert.Equal(t, 2, client.listCalls)
}
