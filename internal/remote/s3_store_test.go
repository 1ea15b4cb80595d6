package remote

import (
	"context"
	"errors"
	"io"
	"shiftplan/internal/structures"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
	fail    error
	buckets []string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string]string)}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buckets = append(f.buckets, aws.ToString(in.Bucket))
	if f.fail != nil {
		return nil, f.fail
	}
	v, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(v))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = string(data)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_RoundTrip(t *testing.T) {
	fake := newFakeS3()
	s := newS3Store(fake, "plans", "shiftplan/")
	ctx := context.Background()

	_, found, err := s.Get(ctx, "schedule:7:2025")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Put(ctx, "schedule:7:2025", `{"employees":[]}`))
	assert.Contains(t, fake.objects, "shiftplan/schedule:7:2025")

	v, found, err := s.Get(ctx, "schedule:7:2025")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"employees":[]}`, v)
	assert.Equal(t, "plans", fake.buckets[0])

	require.NoError(t, s.Delete(ctx, "schedule:7:2025"))
	_, found, err = s.Get(ctx, "schedule:7:2025")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestS3Store_BackendError(t *testing.T) {
	fake := newFakeS3()
	fake.fail = errors.New("access denied")
	s := newS3Store(fake, "plans", "")
	ctx := context.Background()

	_, _, err := s.Get(ctx, "k")
	assert.ErrorContains(t, err, "access denied")
	assert.Error(t, s.Put(ctx, "k", "v"))
	assert.Error(t, s.Delete(ctx, "k"))
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), structures.RemoteConfig{Backend: "s3"})
	assert.Error(t, err)
}

func TestNewS3Store_StaticCredentialsAndEndpoint(t *testing.T) {
	s, err := NewS3Store(context.Background(), structures.RemoteConfig{
		Backend:   "s3",
		Bucket:    "plans",
		Region:    "us-east-1",
		Endpoint:  "http://127.0.0.1:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.NoError(t, err)
	client, ok := s.client.(*s3.Client)
	require.True(t, ok)
	assert.Equal(t, "http://127.0.0.1:9000", aws.ToString(client.Options().BaseEndpoint))
	assert.True(t, client.Options().UsePathStyle)
}
