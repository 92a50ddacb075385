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

func eventStatusHandler(status string) http.Handler {
	return httphelpers.HandlerWithJSONResponse(map[string]string{
		"id":     "evt1",
		"status": status,
	}, nil)
}

func newEventServer(handler http.Handler) *httptest.Server {
	mux := http.NewServeMux()
	mux.Handle("/api/events/evt1", handler)
	return httptest.NewServer(mux)
}

func fastEventWaiter(session *Session) *EventWaiter {
	return NewEventWaiter(session, nil, WithInterval(time.Millisecond))
}

func TestEventWaiterSucceedsOnKthPollWithExactlyKRequests(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.SequentialHandler(
		eventStatusHandler("pending"),
		eventStatusHandler("in_progress"),
		eventStatusHandler("finished"),
	))
	server := newEventServer(handler)
	defer server.Close()

	waiter := fastEventWaiter(newTestSession(server.URL))
	event, err := waiter.Wait("evt1")
	require.NoError(t, err)
	assert.Equal(t, "finished", event.Status)
	assert.Len(t, requestsCh, 3)
}

func TestEventWaiterFailsWhenBudgetIsExhausted(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(eventStatusHandler("pending"))
	server := newEventServer(handler)
	defer server.Close()

	waiter := NewEventWaiter(newTestSession(server.URL), nil,
		WithTries(4), WithInterval(time.Millisecond))
	_, err := waiter.Wait("evt1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not finish after 4 tries")
	assert.Contains(t, err.Error(), `"pending"`)
	assert.Len(t, requestsCh, 4)
}

func TestEventWaiterTreatsFailedStatusLikeStillRunning(t *testing.T) {
	// A server-reported "failed" event is not a terminal state for the
	// waiter; it keeps polling until the status flips or the budget runs
	// out.
	handler := httphelpers.SequentialHandler(
		eventStatusHandler("failed"),
		eventStatusHandler("failed"),
		eventStatusHandler("finished"),
	)
	server := newEventServer(handler)
	defer server.Close()

	waiter := fastEventWaiter(newTestSession(server.URL))
	event, err := waiter.Wait("evt1")
	require.NoError(t, err)
	assert.Equal(t, "finished", event.Status)
}

func TestEventWaiterStopsImmediatelyOnNon200(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(500))
	server := newEventServer(handler)
	defer server.Close()

	waiter := fastEventWaiter(newTestSession(server.URL))
	_, err := waiter.Wait("evt1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Len(t, requestsCh, 1)
}
