package probe

import (
	"context"

	"github.com/hamed0406/uptimeping/internal/domain"
)

// Checker performs a single probe against a target URL.
//
// Implementations never return an error for network trouble: every attempt
// ends in a completed ProbeResult whose Outcome is Success or Failure.
type Checker interface {
	Check(ctx context.Context, target string) domain.ProbeResult
}

// CheckerFunc adapts a plain function to Checker.
type CheckerFunc func(ctx context.Context, target string) domain.ProbeResult

func (f CheckerFunc) Check(ctx context.Context, target string) domain.ProbeResult {
	return f(ctx, target)
}
