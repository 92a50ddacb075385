package client

import (
	"fmt"
	"time"

	"github.com/ynput/ayon-test-fixtures/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	defaultEventTries    = 10
	defaultEventInterval = 6 * time.Second
)

// Event is the server's record of an asynchronous job.
type Event struct {
	ID          string        `json:"id"`
	Topic       string        `json:"topic"`
	Status      string        `json:"status"`
	Description string        `json:"description"`
	Summary     ldvalue.Value `json:"summary"`
}

// EventWaiter polls an event until its status becomes "finished".
type EventWaiter struct {
	session  *Session
	logger   framework.Logger
	tries    int
	interval time.Duration
}

// EventWaiterOption adjusts the polling budget of an EventWaiter.
type EventWaiterOption func(*EventWaiter)

// WithTries overrides the default attempt budget of 10.
func WithTries(n int) EventWaiterOption {
	return func(w *EventWaiter) { w.tries = n }
}

// WithInterval overrides the default 6 second pause between attempts.
func WithInterval(d time.Duration) EventWaiterOption {
	return func(w *EventWaiter) { w.interval = d }
}

func NewEventWaiter(session *Session, logger framework.Logger, opts ...EventWaiterOption) *EventWaiter {
	if logger == nil {
		logger = framework.NullLogger()
	}
	w := &EventWaiter{
		session:  session,
		logger:   logger,
		tries:    defaultEventTries,
		interval: defaultEventInterval,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Wait polls GET /api/events/{id} until the event reports status
// "finished" or the attempt budget runs out. A non-200 response ends the
// wait immediately. Any other status, including a server-reported
// "failed", is treated the same as "pending" and retried until the
// budget is exhausted.
func (w *EventWaiter) Wait(eventID string) (Event, error) {
	outcome := Poll(PollSpec{
		Request: func() (*Response, error) {
			resp, err := w.session.Get("/api/events/" + eventID)
			if err != nil {
				return nil, err
			}
			if resp.StatusCode != 200 {
				return nil, fmt.Errorf("failed to get event %s: status %d: %s",
					eventID, resp.StatusCode, resp.Body)
			}
			return resp, nil
		},
		Done: func(resp *Response) bool {
			var ev Event
			if err := resp.JSON(&ev); err != nil {
				return false
			}
			w.logger.Printf("event %s status: %s", eventID, ev.Status)
			return ev.Status == "finished"
		},
		MaxAttempts: w.tries,
		Delay:       w.interval,
	})
	if outcome.Err != nil {
		return Event{}, outcome.Err
	}
	if !outcome.Done {
		lastStatus := "unknown"
		if outcome.Response != nil {
			var ev Event
			if outcome.Response.JSON(&ev) == nil {
				lastStatus = ev.Status
			}
		}
		return Event{}, fmt.Errorf("event %s did not finish after %d tries, last status %q",
			eventID, outcome.Attempts, lastStatus)
	}
	var ev Event
	if err := outcome.Response.JSON(&ev); err != nil {
		return Event{}, fmt.Errorf("malformed event response: %w", err)
	}
	return ev, nil
}
