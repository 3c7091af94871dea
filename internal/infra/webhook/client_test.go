package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/infra/events"
)

func TestPublishPostsEnvelope(t *testing.T) {
	var got events.Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).Publish(context.Background(), "payment.submitted", map[string]any{"order_id": 3})
	require.NoError(t, err)
	assert.Equal(t, "payment.submitted", got.Pattern)
	assert.Equal(t, map[string]any{"order_id": float64(3)}, got.Data)
}

func TestPublishReportsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).Publish(context.Background(), "order.created", nil)
	assert.ErrorContains(t, err, "502")
}
