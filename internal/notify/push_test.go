package notify

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

func TestGatewayClient_Push(t *testing.T) {
	var got pushPayload
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewGatewayClient(server.URL, "key123", 2*time.Second)
	err := client.Push(context.Background(), "device-token", "Hola", "Cuerpo", map[string]string{"k": "v"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer key123", auth)
	assert.Equal(t, "device-token", got.To)
	assert.Equal(t, "Hola", got.Title)
	assert.Equal(t, "v", got.Data["k"])
}

func TestGatewayClient_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewGatewayClient(server.URL, "", time.Second)
	err := client.Push(context.Background(), "tok", "t", "b", nil)
	assert.Error(t, err)
}

func TestGatewayClient_NoURLIsNoop(t *testing.T) {
	client := NewGatewayClient("", "", time.Second)
	assert.NoError(t, client.Push(context.Background(), "tok", "t", "b", nil))
}
