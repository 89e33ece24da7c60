package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/procure-be/test/helpers"
)

func testS3(prefix string) *S3Storage {
	awsCfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("test", "test", ""),
	}
	return newS3Storage(awsCfg, S3Config{
		Region:       "us-east-1",
		Bucket:       "procure-attachments",
		Endpoint:     "http://localhost:9000",
		UsePathStyle: true,
		KeyPrefix:    prefix,
	}, helpers.TestLogger())
}

func TestS3Storage_ObjectKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no_prefix", key: "purchase-orders/PO-1/invoice.pdf", want: "purchase-orders/PO-1/invoice.pdf"},
		{name: "with_prefix", prefix: "prod", key: "purchase-orders/PO-1/invoice.pdf", want: "prod/purchase-orders/PO-1/invoice.pdf"},
		{name: "prefix_trailing_slash", prefix: "prod/", key: "a.pdf", want: "prod/a.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testS3(tt.prefix).objectKey(tt.key))
		})
	}
}

func TestS3Storage_PresignedURL(t *testing.T) {
	s := testS3("prod")

	raw, err := s.GetPresignedURL(context.Background(), "purchase-orders/PO-1/invoice.pdf", 15*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/procure-attachments/prod/purchase-orders/PO-1/invoice.pdf", u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	assert.Contains(t, u.Query().Get("response-content-disposition"), `filename="invoice.pdf"`)
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		declared string
		want     string
	}{
		{name: "declared_wins", key: "a.pdf", declared: "application/x-custom", want: "application/x-custom"},
		{name: "by_extension", key: "a.pdf", want: "application/pdf"},
		{name: "unknown_extension", key: "a.zzz", want: "application/octet-stream"},
		{name: "blank_declared", key: "a.zzz", declared: "  ", want: "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contentTypeFor(tt.key, tt.declared))
		})
	}
}
