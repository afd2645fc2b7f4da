package blob

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// fakeS3 captures the PutObject input instead of talking to a bucket.
type fakeS3 struct {
	input *s3.PutObjectInput
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Save(t *testing.T) {
	fake := &fakeS3{}
	s := &S3Store{
		client:  fake,
		bucket:  "recipe-images",
		baseURL: "http://localhost:9000/recipe-images",
	}

	url, err := s.Save(context.Background(), ".png", "image/png", strings.NewReader("bytes"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if fake.input == nil {
		t.Fatal("PutObject was never called")
	}
	if got := *fake.input.Bucket; got != "recipe-images" {
		t.Errorf("bucket = %q", got)
	}
	if got := *fake.input.ContentType; got != "image/png" {
		t.Errorf("content type = %q", got)
	}

	key := *fake.input.Key
	if !strings.HasPrefix(key, "uploads/") || !strings.HasSuffix(key, ".png") {
		t.Errorf("key = %q, want uploads/YYYY/M/D/<id>.png", key)
	}
	if url != "http://localhost:9000/recipe-images/"+key {
		t.Errorf("url = %q does not match key %q", url, key)
	}

	body, _ := io.ReadAll(fake.input.Body)
	if string(body) != "bytes" {
		t.Errorf("uploaded body = %q", body)
	}
}

func TestS3Store_SaveError(t *testing.T) {
	s := &S3Store{
		client:  &fakeS3{err: io.ErrUnexpectedEOF},
		bucket:  "b",
		baseURL: "http://x/b",
	}
	if _, err := s.Save(context.Background(), ".png", "image/png", strings.NewReader("x")); err == nil {
		t.Fatal("Save() should surface PutObject errors")
	}
}
