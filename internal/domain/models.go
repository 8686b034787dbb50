package domain

import "time"

type Outcome int

const (
	Failure Outcome = iota
	Success
)

func (o Outcome) String() string {
	if o == Success {
		return "Success"
	}
	return "Failure"
}

// ProbeResult is the outcome of a single GET against the target. It lives
// only until the reporter has written it.
type ProbeResult struct {
	Target    string        `json:"target"`
	Timestamp time.Time     `json:"timestamp"`
	Elapsed   time.Duration `json:"elapsed"`
	Outcome   Outcome       `json:"outcome"`

	// StatusCode is 0 when no response was received.
	StatusCode int    `json:"status_code,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

func (r ProbeResult) OK() bool {
	return r.Outcome == Success
}

// ElapsedMicros never goes negative, even if the wall clock stepped back.
func (r ProbeResult) ElapsedMicros() int64 {
	if r.Elapsed < 0 {
		return 0
	}
	return r.Elapsed.Microseconds()
}
