package client

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serverInfoHandler() http.Handler {
	return httphelpers.HandlerWithJSONResponse(map[string]string{
		"version": "1.3.0",
		"motd":    "welcome back",
	}, nil)
}

func newRestartServer(infoHandler http.Handler) *httptest.Server {
	mux := http.NewServeMux()
	mux.Handle("/api/system/restart", httphelpers.HandlerWithStatus(204))
	mux.Handle("/api/info", infoHandler)
	return httptest.NewServer(mux)
}

func fastRestartWaiter(session *Session) *RestartWaiter {
	w := NewRestartWaiter(session, nil)
	w.interval = time.Millisecond
	w.grace = time.Millisecond
	return w
}

func TestRestartWaiterSucceedsWhenServerComesRightBack(t *testing.T) {
	server := newRestartServer(serverInfoHandler())
	defer server.Close()

	waiter := fastRestartWaiter(newTestSession(server.URL))
	info, err := waiter.RestartAndWait()
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", info.Version)
}

func TestRestartWaiterToleratesDroppedConnectionsWhileRestarting(t *testing.T) {
	infoHandler := httphelpers.SequentialHandler(
		httphelpers.BrokenConnectionHandler(),
		httphelpers.BrokenConnectionHandler(),
		httphelpers.BrokenConnectionHandler(),
		serverInfoHandler(),
	)
	server := newRestartServer(infoHandler)
	defer server.Close()

	waiter := fastRestartWaiter(newTestSession(server.URL))
	info, err := waiter.RestartAndWait()
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", info.Version)
}

func TestRestartWaiterFailsWhenServerNeverComesBack(t *testing.T) {
	server := newRestartServer(httphelpers.BrokenConnectionHandler())
	defer server.Close()

	waiter := fastRestartWaiter(newTestSession(server.URL))
	_, err := waiter.RestartAndWait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not come back up after 10 tries")
}

func TestRestartWaiterFailsFastOnUnexpectedRestartStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/api/system/restart", httphelpers.HandlerWithStatus(403))
	server := httptest.NewServer(mux)
	defer server.Close()

	waiter := fastRestartWaiter(newTestSession(server.URL))
	_, err := waiter.RestartAndWait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestRestartWaiterIgnoresBodiesWithoutVersionFieldUntilBudget(t *testing.T) {
	infoHandler := httphelpers.SequentialHandler(
		httphelpers.HandlerWithJSONResponse(map[string]string{"motd": "starting up"}, nil),
		serverInfoHandler(),
	)
	server := newRestartServer(infoHandler)
	defer server.Close()

	waiter := fastRestartWaiter(newTestSession(server.URL))
	info, err := waiter.RestartAndWait()
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", info.Version)
}
