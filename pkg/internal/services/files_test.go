package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/models"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T, handler http.Handler) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := minio.New(strings.TrimPrefix(server.URL, "http://"), &minio.Options{
		Creds:  credentials.NewStaticV4("test", "test", ""),
		Secure: false,
		Region: "us-east-1",
	})
	require.NoError(t, err)

	previous := Mc
	Mc = client
	t.Cleanup(func() { Mc = previous })

	viper.Set("storage.bucket", "uploads")
}

func TestStatSharedFileFindsUploadedObject(t *testing.T) {
	newTestStorage(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		assert.Equal(t, "/uploads/shared/abc/report.pdf", r.URL.Path)
		w.Header().Set("Content-Length", "2048")
		w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	}))

	stat, err := statSharedFile(models.SharedFile{
		FileName:  "report.pdf",
		ObjectKey: "shared/abc/report.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2048), stat.Size)
}

func TestStatSharedFileRejectsAbandonedUpload(t *testing.T) {
	newTestStorage(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := statSharedFile(models.SharedFile{
		FileName:  "ghost.pdf",
		ObjectKey: "shared/abc/ghost.pdf",
	})
	assert.Error(t, err)
}
