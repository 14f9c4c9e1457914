package archive

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"recipe-master/internal/core/export"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string]string
	types   map[string]string
	failKey string
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	key := aws.ToString(params.Key)
	if key == f.failKey {
		return nil, errors.New("access denied")
	}
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[key] = string(data)
	f.types[key] = aws.ToString(params.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func newFake() *fakeS3 {
	return &fakeS3{objects: map[string]string{}, types: map[string]string{}}
}

func TestArchive(t *testing.T) {
	fake := newFake()
	a := NewWithClient(fake, "bucket", "recipes")

	artifacts := []*export.Artifact{
		{Format: export.FormatTXT, Filename: "Dal.txt", MIMEType: "text/plain; charset=utf-8", Data: []byte("body")},
		nil,
		{Format: export.FormatPDF, Filename: "Dal.pdf", MIMEType: "application/pdf", Data: []byte("%PDF-")},
	}
	require.NoError(t, a.Archive(context.Background(), "abc", artifacts))

	assert.Equal(t, "body", fake.objects["recipes/abc/Dal.txt"])
	assert.Equal(t, "application/pdf", fake.types["recipes/abc/Dal.pdf"])
}

func TestArchivePartialFailure(t *testing.T) {
	fake := newFake()
	fake.failKey = "recipes/abc/Dal.pdf"
	a := NewWithClient(fake, "bucket", "recipes")

	err := a.Archive(context.Background(), "abc", []*export.Artifact{
		{Filename: "Dal.pdf", Data: []byte("x")},
		{Filename: "Dal.txt", Data: []byte("y")},
	})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Dal.pdf"))
	assert.Contains(t, fake.objects, "recipes/abc/Dal.txt")
}

func TestKey(t *testing.T) {
	assert.Equal(t, "abc/Dal.docx", NewWithClient(nil, "b", "").Key("abc", "Dal.docx"))
	assert.Equal(t, "recipes/abc/Dal.docx", NewWithClient(nil, "b", "recipes/").Key("abc", "Dal.docx"))
}
