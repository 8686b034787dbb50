package report

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hamed0406/uptimeping/internal/domain"
)

// Reporter writes one line per probe: "<Outcome>: <elapsed µs>", at INFO for
// a success and ERROR for a failure.
type Reporter struct {
	log     *zap.Logger
	verbose bool
}

// New returns a Reporter. In verbose mode the HTTP status and failure reason
// are appended to each line as fields.
func New(log *zap.Logger, verbose bool) *Reporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reporter{log: log, verbose: verbose}
}

func (r *Reporter) Report(res domain.ProbeResult) {
	msg := fmt.Sprintf("%s: %d", res.Outcome, res.ElapsedMicros())

	var fields []zap.Field
	if r.verbose {
		fields = append(fields, zap.Int("status", res.StatusCode))
		if res.Reason != "" {
			fields = append(fields, zap.String("reason", res.Reason))
		}
	}

	if res.OK() {
		r.log.Info(msg, fields...)
		return
	}
	r.log.Error(msg, fields...)
}
