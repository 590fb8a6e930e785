package s3_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/config"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
	s3storage "github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/storage/s3"
)

type recordedRequest struct {
	method string
	path   string
	header http.Header
	body   []byte
}

func fakeS3(t *testing.T) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	var reqs []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{method: r.Method, path: r.URL.Path, header: r.Header.Clone(), body: body})
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
	return srv, &reqs
}

func newStore(t *testing.T, endpoint string) port.ObjectStorage {
	t.Helper()
	store, err := s3storage.NewS3Client(context.Background(), &config.S3Config{
		Region:    "us-east-1",
		Bucket:    "evidence",
		Endpoint:  endpoint,
		AccessKey: "test",
		SecretKey: "test",
	})
	require.NoError(t, err)
	return store
}

func TestEvidenceStore_Upload(t *testing.T) {
	srv, reqs := fakeS3(t)
	store := newStore(t, srv.URL)

	data := []byte("%PDF-1.7 delivery note")
	out, err := store.Upload(context.Background(), port.UploadInput{
		Key:         "audits/a/incidents/i/e.pdf",
		Body:        bytes.NewReader(data),
		ContentType: "application/pdf",
		Size:        int64(len(data)),
	})
	require.NoError(t, err)
	assert.Equal(t, `"abc123"`, out.ETag)

	require.Len(t, *reqs, 1)
	req := (*reqs)[0]
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/evidence/audits/a/incidents/i/e.pdf", req.path, "empty bucket falls back to the configured one")
	assert.Equal(t, "application/pdf", req.header.Get("Content-Type"))
	assert.Equal(t, "AES256", req.header.Get("X-Amz-Server-Side-Encryption"))
	assert.Equal(t, `inline; filename="e.pdf"`, req.header.Get("Content-Disposition"))
	assert.Contains(t, string(req.body), string(data))
}

func TestEvidenceStore_Delete(t *testing.T) {
	srv, reqs := fakeS3(t)
	store := newStore(t, srv.URL)

	require.NoError(t, store.Delete(context.Background(), "other-bucket", "audits/a/x.png"))
	require.Len(t, *reqs, 1)
	assert.Equal(t, http.MethodDelete, (*reqs)[0].method)
	assert.Equal(t, "/other-bucket/audits/a/x.png", (*reqs)[0].path)
}

func TestEvidenceStore_GetPresignedURL(t *testing.T) {
	store := newStore(t, "http://localhost:9000")

	raw, err := store.GetPresignedURL(context.Background(), "evidence", "audits/a/incidents/i/e.png", 600)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(u.Path, "/evidence/audits/a/incidents/i/e.png"))
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))

	raw, err = store.GetPresignedURL(context.Background(), "evidence", "k", 0)
	require.NoError(t, err)
	assert.Contains(t, raw, "X-Amz-Expires=900")
}
