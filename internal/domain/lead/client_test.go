package lead

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateLeadPostsEnvelope(t *testing.T) {
	var got Envelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/broker/v1/request/lead/new", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", nil, time.Second)
	status, err := client.CreateLead(context.Background(), BuildEnvelope(VariantCareer, validCareerDraft(), fixedNow))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, RequestTypeCreateLead, got.RequestType)
	assert.Equal(t, "5512345678", got.Data.TelefonoLada)
}

func TestClient_AnyTwoHundredIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	status, err := NewClient(srv.URL, nil, time.Second).CreateLead(context.Background(), Envelope{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	status, err := NewClient(srv.URL, nil, time.Second).CreateLead(context.Background(), Envelope{})

	var se *ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "Internal Server Error", se.StatusText)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, nil, time.Second).CreateLead(context.Background(), Envelope{})

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Error(t, te.Unwrap())
}

func TestClient_CancelledContextIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, nil, time.Second).CreateLead(ctx, Envelope{})

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.True(t, errors.Is(err, context.Canceled))
}
