package miniostore

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/stark-bootcamp.net/internal/adapter/logging"
	"gitlab.com/stark-bootcamp.net/internal/config"
)

func TestObjectURL(t *testing.T) {
	base, err := url.Parse("https://cdn.example.com/files/")
	require.NoError(t, err)

	got := objectURL(base, "bootcamp", "round_2/acme/1234-design file.png")
	assert.Equal(t, "https://cdn.example.com/files/bootcamp/round_2/acme/1234-design%20file.png", got)
}

func TestNewUsesEndpointWhenNoPublicBase(t *testing.T) {
	store, err := New(&config.StorageConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "bootcamp",
	}, logging.NewNopLogger())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/bootcamp/a.png", objectURL(store.baseURL, store.bucket, "a.png"))
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(&config.StorageConfig{Bucket: "b"}, logging.NewNopLogger())
	assert.Error(t, err)

	_, err = New(&config.StorageConfig{Endpoint: "localhost:9000"}, logging.NewNopLogger())
	assert.Error(t, err)
}
