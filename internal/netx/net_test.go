package netx

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadPresignedURL(t *testing.T) {
	report := []byte(`{"total_users":3}`)

	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "sig", r.URL.Query().Get("X-Amz-Signature"))
			_, _ = w.Write(report)
		}))
		defer srv.Close()

		var buf bytes.Buffer
		n, err := DownloadPresignedURL(context.Background(), srv.URL+"/reports/x.json?X-Amz-Signature=sig", &buf)
		require.NoError(t, err)
		assert.Equal(t, int64(len(report)), n)
		assert.Equal(t, report, buf.Bytes())
	})

	t.Run("expired url", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Request has expired", http.StatusForbidden)
		}))
		defer srv.Close()

		var buf bytes.Buffer
		_, err := DownloadPresignedURL(context.Background(), srv.URL, &buf)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
		assert.Contains(t, err.Error(), "Request has expired")
		assert.Zero(t, buf.Len())
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := DownloadPresignedURL(context.Background(), "://nope", &bytes.Buffer{})
		require.Error(t, err)
	})

	t.Run("canceled", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := DownloadPresignedURL(ctx, srv.URL, &bytes.Buffer{})
		require.ErrorIs(t, err, context.Canceled)
	})
}
