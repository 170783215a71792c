package s3_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docdesk/internal/config"
	"docdesk/internal/port"
	s3storage "docdesk/internal/storage/s3"
)

type recorded struct {
	method string
	path   string
}

func fakeS3(t *testing.T) (*httptest.Server, func() []recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		seen []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		mu.Lock()
		seen = append(seen, recorded{method: r.Method, path: r.URL.Path})
		mu.Unlock()
		switch r.Method {
		case http.MethodPut:
			w.Header().Set("ETag", `"abc123"`)
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), seen...)
	}
}

func TestNewS3Client_RequiresBucket(t *testing.T) {
	_, err := s3storage.NewS3Client(context.Background(), &config.S3Config{Region: "ap-south-1"})
	assert.Error(t, err)
}

func TestS3Client_UploadAndDelete(t *testing.T) {
	srv, seen := fakeS3(t)
	ctx := context.Background()

	store, err := s3storage.NewS3Client(ctx, &config.S3Config{
		Region:    "ap-south-1",
		Bucket:    "exports",
		Endpoint:  srv.URL,
		AccessKey: "test",
		SecretKey: "test",
	})
	require.NoError(t, err)

	body := []byte("workbook bytes")
	out, err := store.Upload(ctx, port.UploadInput{
		Key:         "acme-traders/Quotation_Q1_2026-03-07.xlsx",
		Body:        bytes.NewReader(body),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Size:        int64(len(body)),
	})
	require.NoError(t, err)
	assert.Equal(t, `"abc123"`, out.ETag)
	assert.Contains(t, out.Location, "/exports/acme-traders/Quotation_Q1_2026-03-07.xlsx")

	require.NoError(t, store.Delete(ctx, "acme-traders/Quotation_Q1_2026-03-07.xlsx"))

	calls := seen()
	require.Len(t, calls, 2)
	assert.Equal(t, http.MethodPut, calls[0].method)
	assert.Equal(t, "/exports/acme-traders/Quotation_Q1_2026-03-07.xlsx", calls[0].path)
	assert.Equal(t, http.MethodDelete, calls[1].method)
}
