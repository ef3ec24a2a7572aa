package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/chatia-cau/ofertas/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferFilename(t *testing.T) {
	assert.Equal(t, "oferta_OFF-1.md", OfferFilename("OFF-1"))
}

func TestStaticFileLocator(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	locator := &StaticFileLocator{now: func() time.Time { return fixed }}

	info, err := locator.Locate(context.Background(), "OFF-abc", "anexo")
	require.NoError(t, err)

	assert.Equal(t, "oferta_OFF-abc.md", info.Filename)
	assert.Equal(t, "anexo", info.FileType)
	assert.True(t, info.Exists)
	assert.True(t, info.DownloadAvailable)
	assert.EqualValues(t, 15000, info.SizeEstimate)
	assert.Equal(t, "2025-01-02T03:04:05Z", info.LastModified)
	assert.Empty(t, info.DownloadURL)
}

// fakeObjectStore answers the HEAD requests minio-go issues for StatObject.
func fakeObjectStore(t *testing.T, objects map[string]int) *httptest.Server {
	t.Helper()
	lastModified := time.Date(2024, 12, 15, 12, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		size, ok := objects[strings.TrimPrefix(r.URL.Path, "/")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(size))
		w.Header().Set("Content-Type", "text/markdown")
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.Header().Set("Last-Modified", lastModified.Format(http.TimeFormat))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestMinio(t *testing.T, server *httptest.Server) *MinioService {
	t.Helper()
	svc, err := NewMinioService(&config.StorageConfig{
		Endpoint:   strings.TrimPrefix(server.URL, "http://"),
		AccessKey:  "test",
		SecretKey:  "testsecret",
		Bucket:     "ofertas",
		ExpireDays: 1,
	})
	require.NoError(t, err)
	return svc
}

func TestMinioFileLocatorFound(t *testing.T) {
	server := fakeObjectStore(t, map[string]int{"ofertas/oferta/oferta_OFF-1.md": 2048})
	locator := NewMinioFileLocator(newTestMinio(t, server))

	info, err := locator.Locate(context.Background(), "OFF-1", "oferta")
	require.NoError(t, err)

	assert.True(t, info.Exists)
	assert.True(t, info.DownloadAvailable)
	assert.EqualValues(t, 2048, info.SizeEstimate)
	assert.Equal(t, "2024-12-15T12:00:00Z", info.LastModified)
	assert.Contains(t, info.DownloadURL, "/ofertas/oferta/oferta_OFF-1.md")
	assert.Contains(t, info.DownloadURL, "X-Amz-Signature=")
}

func TestMinioFileLocatorMissing(t *testing.T) {
	server := fakeObjectStore(t, map[string]int{})
	locator := NewMinioFileLocator(newTestMinio(t, server))

	info, err := locator.Locate(context.Background(), "OFF-2", "oferta")
	require.NoError(t, err)

	assert.Equal(t, "oferta_OFF-2.md", info.Filename)
	assert.False(t, info.Exists)
	assert.False(t, info.DownloadAvailable)
	assert.Empty(t, info.DownloadURL)
}

func TestNewMinioService(t *testing.T) {
	svc, err := NewMinioService(&config.StorageConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "test",
		SecretKey: "test",
		Bucket:    "test",
	})
	require.NoError(t, err)
	assert.Equal(t, "test", svc.bucket)
}
