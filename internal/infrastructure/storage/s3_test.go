package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"crowdfund.backend/internal/config"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string]string
	types   map[string]string
	err     error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string]string{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = string(data)
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_RoundTrip(t *testing.T) {
	fake := newFakeS3()
	store := NewS3StoreWithClient(fake, "docs")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "id_card/2026-03/a.png", strings.NewReader("png"), 3, "image/png"))
	require.Equal(t, "image/png", fake.types["id_card/2026-03/a.png"])

	rc, err := store.Open(ctx, "id_card/2026-03/a.png")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	require.Equal(t, "png", string(data))

	require.NoError(t, store.Delete(ctx, "id_card/2026-03/a.png"))
	_, err = store.Open(ctx, "id_card/2026-03/a.png")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestS3Store_WrapsErrors(t *testing.T) {
	fake := newFakeS3()
	fake.err = errors.New("access denied")
	store := NewS3StoreWithClient(fake, "docs")

	err := store.Put(context.Background(), "k", strings.NewReader("x"), 1, "text/plain")
	require.ErrorContains(t, err, "put object k")
	require.ErrorContains(t, store.Delete(context.Background(), "k"), "access denied")
}

func TestNew_SelectsDriver(t *testing.T) {
	store, err := New(context.Background(), config.StorageConfig{Driver: config.StorageDriverDisk, Dir: t.TempDir()})
	require.NoError(t, err)
	require.IsType(t, &DiskStore{}, store)

	s3Store, err := New(context.Background(), config.StorageConfig{
		Driver:      config.StorageDriverS3,
		S3Bucket:    "docs",
		S3Region:    "eu-west-1",
		S3Endpoint:  "http://localhost:9000",
		S3AccessKey: "minio",
		S3SecretKey: "minio123",
	})
	require.NoError(t, err)
	require.IsType(t, &S3Store{}, s3Store)

	_, err = New(context.Background(), config.StorageConfig{Driver: "ftp"})
	require.Error(t, err)
}

func TestNewS3Store_ConfigError(t *testing.T) {
	orig := loadAWSConfig
	t.Cleanup(func() { loadAWSConfig = orig })
	loadAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no region")
	}

	_, err := NewS3Store(context.Background(), config.StorageConfig{S3Bucket: "docs"})
	require.ErrorContains(t, err, "load aws config")
}
