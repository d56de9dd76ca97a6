package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoom(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody createRoomRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 5*time.Second)
	require.NoError(t, c.CreateRoom(context.Background(), "room-abc123def"))

	assert.Equal(t, "POST /v1/rooms", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "room-abc123def", gotBody.Name)
	assert.True(t, gotBody.Properties.EnableChat)
	assert.True(t, gotBody.Properties.EnableScreenshare)
}

func TestCreateRoomNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"room already exists"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 5*time.Second)
	err := c.CreateRoom(context.Background(), "room-abc123def")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 400")
	assert.Contains(t, err.Error(), "room already exists")
}

func TestDeleteRoom(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 5*time.Second)
	require.NoError(t, c.DeleteRoom(context.Background(), "room-abc123def"))
	assert.Equal(t, "DELETE /v1/rooms/room-abc123def", gotPath)
}

func TestSendAction(t *testing.T) {
	var gotPath string
	var gotBody actionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 5*time.Second)
	require.NoError(t, c.SendAction(context.Background(), "room-abc123def", "p42", "switch-camera"))

	assert.Equal(t, "POST /v1/rooms/room-abc123def/participants/p42/actions", gotPath)
	assert.Equal(t, "switch-camera", gotBody.Action)
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, "test-key", time.Second)
	err := c.SendAction(context.Background(), "room-abc123def", "p42", "switch-camera")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send_action call failed")
}
