package client

import "time"

// PollSpec parameterizes a bounded poll-until-predicate loop.
type PollSpec struct {
	// Request performs one attempt.
	Request func() (*Response, error)
	// Done reports whether the response is the one we are waiting for.
	Done func(*Response) bool
	// Transient, if non-nil, reports whether a request error should be
	// swallowed and retried. Any other error ends the poll immediately.
	Transient func(error) bool
	// MaxAttempts is the total request budget.
	MaxAttempts int
	// Delay is the pause between attempts.
	Delay time.Duration
}

// PollOutcome is the result of a Poll call. Exactly one of three shapes:
// Done true (success), Err non-nil (a terminal error ended the poll), or
// neither (the attempt budget ran out).
type PollOutcome struct {
	// Done is true if some response satisfied the predicate.
	Done bool
	// Response is the response that satisfied the predicate, or the last
	// response seen. Nil if every attempt errored.
	Response *Response
	// Attempts is the number of requests actually made.
	Attempts int
	// Err is the terminal (non-transient) error, if any.
	Err error
}

// Poll repeatedly calls spec.Request until the response satisfies
// spec.Done, a non-transient error occurs, or the attempt budget is
// exhausted. It never sleeps after a decisive attempt, so a poll that
// succeeds on the k-th try makes exactly k requests. Poll reports the
// outcome rather than failing; the caller decides whether a non-success
// is fatal.
func Poll(spec PollSpec) PollOutcome {
	var outcome PollOutcome
	for attempt := 1; attempt <= spec.MaxAttempts; attempt++ {
		outcome.Attempts = attempt
		resp, err := spec.Request()
		if err != nil {
			if spec.Transient != nil && spec.Transient(err) {
				if attempt < spec.MaxAttempts {
					time.Sleep(spec.Delay)
				}
				continue
			}
			outcome.Err = err
			return outcome
		}
		outcome.Response = resp
		if spec.Done(resp) {
			outcome.Done = true
			return outcome
		}
		if attempt < spec.MaxAttempts {
			time.Sleep(spec.Delay)
		}
	}
	return outcome
}
