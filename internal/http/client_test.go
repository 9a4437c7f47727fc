package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	client := NewClient(WithUserAgent("test-agent"))
	defer client.Close()

	body, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(body))
}

func TestClient_GetBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient()
	defer client.Close()

	_, err := client.Get(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestClient_GetNoRetry(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient()
	defer client.Close()

	_, err := client.Get(context.Background(), server.URL)
	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestClient_GetTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(WithTimeout(20 * time.Millisecond))
	defer client.Close()

	_, err := client.Get(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestArtClient_Fetch(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0xFF, 0xD9}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(payload)
	}))
	defer server.Close()

	art := NewArtClient(WithUserAgent("test-agent"))
	defer art.Close()

	data, err := art.Fetch(context.Background(), server.URL+"/cover.jpg")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestArtClient_FetchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer server.Close()

	art := NewArtClient()
	defer art.Close()

	_, err := art.Fetch(context.Background(), server.URL+"/cover.jpg")
	assert.Error(t, err)
}

func TestArtClient_FetchCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{0xFF, 0xD8})
	}))
	defer server.Close()

	art := NewArtClient()
	defer art.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := art.Fetch(ctx, server.URL+"/cover.jpg")
	assert.Error(t, err)
}
