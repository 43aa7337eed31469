//go:build !integration

package app

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/guttosm/parcel-service/config"
	"github.com/stretchr/testify/assert"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestNewServer(t *testing.T) {
	tests := []struct {
		name      string
		timeout   time.Duration
		wantWrite time.Duration
	}{
		{name: "short request timeout", timeout: 5 * time.Second, wantWrite: 15 * time.Second},
		{name: "long request timeout", timeout: 30 * time.Second, wantWrite: 35 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(okHandler, config.ServerConfig{Port: "8080", RequestTimeout: tt.timeout})

			assert.Equal(t, ":8080", s.Addr())
			assert.Equal(t, tt.wantWrite, s.httpServer.WriteTimeout)
			assert.Equal(t, 5*time.Second, s.httpServer.ReadHeaderTimeout)
			assert.Equal(t, 10*time.Second, s.shutdownTimeout)
		})
	}
}

func TestServer_RunContextStopsOnCancel(t *testing.T) {
	s := NewServer(okHandler, config.ServerConfig{Port: "0"})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.RunContext(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
