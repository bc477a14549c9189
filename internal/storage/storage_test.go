package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPhotoStoreSaveWritesUniqueFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalPhotoStore(dir, "/uploads/")
	require.NoError(t, err)

	first, err := store.Save(context.Background(), ".PNG", "image/png", []byte("one"))
	require.NoError(t, err)
	second, err := store.Save(context.Background(), "png", "image/png", []byte("two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "/uploads/"))
	assert.True(t, strings.HasSuffix(first, ".png"))
	assert.True(t, strings.HasSuffix(second, ".png"))

	content, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(first, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "one", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLocalPhotoStoreHonorsCanceledContext(t *testing.T) {
	store, err := NewLocalPhotoStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Save(ctx, ".jpg", "image/jpeg", []byte("data"))
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingPutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (putter *recordingPutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	putter.input = params
	body, _ := io.ReadAll(params.Body)
	putter.body = body
	if putter.err != nil {
		return nil, putter.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3PhotoStoreSaveUploadsObject(t *testing.T) {
	putter := &recordingPutter{}
	store := newS3PhotoStore(putter, S3Config{Bucket: "photos", Endpoint: "http://minio:9000/"})

	link, err := store.Save(context.Background(), ".jpg", "image/jpeg", []byte("jpeg-bytes"))
	require.NoError(t, err)

	require.NotNil(t, putter.input)
	assert.Equal(t, "photos", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(putter.input.ContentType))
	assert.True(t, strings.HasPrefix(aws.ToString(putter.input.Key), "users_photo/"))
	assert.Equal(t, "jpeg-bytes", string(putter.body))
	assert.Equal(t, "http://minio:9000/photos/"+aws.ToString(putter.input.Key), link)
}

func TestS3PhotoStoreSavePropagatesErrors(t *testing.T) {
	putter := &recordingPutter{err: errors.New("boom")}
	store := newS3PhotoStore(putter, S3Config{Bucket: "photos", PublicURL: "https://cdn.example.com"})

	_, err := store.Save(context.Background(), ".png", "image/png", []byte("x"))
	assert.ErrorContains(t, err, "boom")
}
