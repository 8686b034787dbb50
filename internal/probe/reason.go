package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"syscall"
)

// Failure reasons attached to a ProbeResult.
const (
	ReasonTimeout    = "timeout"
	ReasonDNS        = "dns"
	ReasonRefused    = "refused"
	ReasonTLS        = "tls"
	ReasonHTTPStatus = "http_status"
	ReasonHTTPError  = "http_error"
	ReasonBadRequest = "bad_request"
)

// Classify maps a transport error to one of the Reason* constants.
// Order matters: a DNS lookup that times out is reported as a timeout.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ReasonTimeout
	}

	var de *net.DNSError
	if errors.As(err, &de) {
		return ReasonDNS
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return ReasonRefused
	}

	var (
		certErr     *tls.CertificateVerificationError
		headerErr   tls.RecordHeaderError
		authErr     x509.UnknownAuthorityError
		hostnameErr x509.HostnameError
		invalidErr  x509.CertificateInvalidError
	)
	if errors.As(err, &certErr) || errors.As(err, &headerErr) ||
		errors.As(err, &authErr) || errors.As(err, &hostnameErr) || errors.As(err, &invalidErr) {
		return ReasonTLS
	}

	return ReasonHTTPError
}
