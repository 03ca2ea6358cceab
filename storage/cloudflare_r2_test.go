package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinPublicURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		key  string
		want string
	}{
		{name: "host only", base: "https://cdn.example.com", key: "state/doc.json", want: "https://cdn.example.com/state/doc.json"},
		{name: "base with slash", base: "https://cdn.example.com/files/", key: "/doc.json", want: "https://cdn.example.com/files/doc.json"},
		{name: "base without slash", base: "https://cdn.example.com/files", key: "doc.json", want: "https://cdn.example.com/files/doc.json"},
		{name: "empty base", base: "", key: "doc.json", want: ""},
		{name: "empty key", base: "https://cdn.example.com", key: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, joinPublicURL(tt.base, tt.key))
		})
	}
}

func TestNewCloudflareR2Storage_Validation(t *testing.T) {
	_, err := NewCloudflareR2Storage(context.Background(), CloudflareR2Config{BucketName: "b"})
	require.Error(t, err)

	_, err = NewCloudflareR2Storage(context.Background(), CloudflareR2Config{
		AccessKeyID: "k", SecretAccessKey: "s", BucketName: "b",
	})
	require.Error(t, err, "account id or endpoint is required")

	st, err := NewCloudflareR2Storage(context.Background(), CloudflareR2Config{
		AccessKeyID: "k", SecretAccessKey: "s", BucketName: "b", Endpoint: "http://localhost:9000",
		PublicBaseURL: "https://cdn.example.com",
	})
	require.NoError(t, err)
	r2, ok := st.(*cloudflareR2Storage)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/a.json", r2.publicURL("a.json"))
}
