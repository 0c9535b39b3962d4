package api_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/numberguess/internal/api"
	"github.com/mcoot/numberguess/internal/factory"
	"github.com/mcoot/numberguess/internal/testutil"
)

func TestServerStartAndShutdown(t *testing.T) {
	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	cfg := api.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	server := api.NewServer(app.Router(), cfg, testutil.NopLogger())

	hubClosed := make(chan struct{})
	server.OnShutdown(func() {
		app.Hub.Close()
		close(hubClosed)
	})

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case <-server.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("server did not bind")
	}
	require.NotEqual(t, "127.0.0.1:0", server.Addr())

	resp, err := http.Get("http://" + server.Addr() + "/api/v1/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"ok"`)

	require.NoError(t, server.Shutdown(context.Background()))
	require.NoError(t, <-errCh)

	select {
	case <-hubClosed:
	case <-time.After(time.Second):
		t.Fatal("shutdown hook not run")
	}
}
