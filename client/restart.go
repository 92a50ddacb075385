package client

import (
	"fmt"
	"net/url"
	"time"

	"github.com/ynput/ayon-test-fixtures/framework"
)

// ServerInfo is the subset of GET /api/info that the fixtures care about.
type ServerInfo struct {
	Version string `json:"version"`
	Motd    string `json:"motd,omitempty"`
}

// RestartWaiter restarts the server and waits for it to come back up.
// The polling budget is fixed: the server gets one second of grace and
// then ten probes, six seconds apart.
type RestartWaiter struct {
	session  *Session
	logger   framework.Logger
	tries    int
	interval time.Duration
	grace    time.Duration
}

func NewRestartWaiter(session *Session, logger framework.Logger) *RestartWaiter {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &RestartWaiter{
		session:  session,
		logger:   logger,
		tries:    10,
		interval: 6 * time.Second,
		grace:    time.Second,
	}
}

// RestartAndWait issues POST /api/system/restart, then polls
// GET /api/info until the response body carries a "version" field.
// Connection-level errors while the server is down are expected and
// swallowed; exhausting the probe budget is an error.
func (w *RestartWaiter) RestartAndWait() (ServerInfo, error) {
	resp, err := w.session.Post("/api/system/restart", nil)
	if err != nil {
		return ServerInfo{}, fmt.Errorf("requesting restart: %w", err)
	}
	if resp.StatusCode != 204 {
		return ServerInfo{}, fmt.Errorf("failed to restart server: status %d: %s",
			resp.StatusCode, resp.Body)
	}

	w.logger.Printf("restart requested, waiting for the server to come back")
	time.Sleep(w.grace)

	outcome := Poll(PollSpec{
		Request: func() (*Response, error) {
			return w.session.Get("/api/info")
		},
		Done: func(resp *Response) bool {
			return resp.HasJSONField("version")
		},
		Transient: func(err error) bool {
			// The server drops connections while it restarts.
			_, ok := err.(*url.Error)
			return ok
		},
		MaxAttempts: w.tries,
		Delay:       w.interval,
	})
	if outcome.Err != nil {
		return ServerInfo{}, outcome.Err
	}
	if !outcome.Done {
		return ServerInfo{}, fmt.Errorf("server did not come back up after %d tries", outcome.Attempts)
	}
	var info ServerInfo
	if err := outcome.Response.JSON(&info); err != nil {
		return ServerInfo{}, fmt.Errorf("malformed server info: %w", err)
	}
	return info, nil
}
