package infra

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*DataServiceClient, *CircuitBreaker) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3})
	return NewDataServiceClient(srv.URL, "test-token", cb), cb
}

func TestDataServiceStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		kind   apperr.Kind
	}{
		{http.StatusNotFound, apperr.KindNotFound},
		{http.StatusConflict, apperr.KindConflict},
		{http.StatusBadRequest, apperr.KindValidation},
		{http.StatusUnprocessableEntity, apperr.KindValidation},
		{http.StatusInternalServerError, apperr.KindTransport},
	}
	for _, tc := range cases {
		status := tc.status
		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		})
		err := client.Post(context.Background(), "/cheque", map[string]string{}, nil)
		require.Error(t, err, "status %d", status)
		assert.Equal(t, tc.kind, apperr.KindOf(err), "status %d", status)
	}
}

func TestDataServiceSendsBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})
	var out map[string]interface{}
	require.NoError(t, client.Get(context.Background(), "/factor/x", nil, &out))
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestDataServiceRetriesReadsOnce(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{}`))
	})
	var out map[string]interface{}
	require.NoError(t, client.Get(context.Background(), "/cheque/x", nil, &out))
	assert.Equal(t, int32(2), calls.Load())
}

func TestDataServiceDoesNotRetryWrites(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})
	err := client.Post(context.Background(), "/cheque", map[string]string{}, nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDomainErrorsDoNotTripBreaker(t *testing.T) {
	client, cb := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		err := client.Post(ctx, "/customerRelation", map[string]string{}, nil)
		require.Error(t, err)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	}
	assert.Equal(t, CBClosed, cb.State())
}

func TestTransportErrorsTripBreaker(t *testing.T) {
	client, cb := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_ = client.Post(ctx, "/cheque", map[string]string{}, nil)
	}
	assert.Equal(t, CBOpen, cb.State())

	// While open, calls fast-fail as transport errors.
	err := client.Post(ctx, "/cheque", map[string]string{}, nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindTransport, apperr.KindOf(err))
}
