package probe

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/hamed0406/uptimeping/internal/domain"
)

type HTTPChecker struct {
	Client *http.Client

	now func() time.Time
}

// NewHTTPChecker returns a checker whose timeout bounds the whole exchange:
// dial, TLS handshake, headers and body.
func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	return &HTTPChecker{
		Client: &http.Client{Timeout: timeout},
		now:    time.Now,
	}
}

func (h *HTTPChecker) Check(ctx context.Context, target string) domain.ProbeResult {
	now := h.now
	if now == nil {
		now = time.Now
	}

	start := now()
	res := domain.ProbeResult{
		Target:    target,
		Timestamp: start,
		Outcome:   domain.Failure,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		res.Elapsed = now().Sub(start)
		res.Reason = ReasonBadRequest
		return res
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		res.Elapsed = now().Sub(start)
		res.Reason = Classify(err)
		return res
	}
	defer resp.Body.Close()

	// the response is only complete once the body is in
	_, err = io.Copy(io.Discard, resp.Body)
	res.Elapsed = now().Sub(start)
	res.StatusCode = resp.StatusCode

	switch {
	case err != nil:
		res.Reason = Classify(err)
	case resp.StatusCode != http.StatusOK:
		res.Reason = ReasonHTTPStatus
	default:
		res.Outcome = domain.Success
	}
	return res
}
