package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"

	"github.com/rohmanhakim/site-word-scanner/internal/metadata"
	"github.com/rohmanhakim/site-word-scanner/pkg/failure"
)

// ErrorKind is the closed set of transport failure labels reported in a
// page result when no HTTP response was received.
type ErrorKind string

const (
	KindTimeout           ErrorKind = "TIMEOUT"
	KindDNSError          ErrorKind = "DNS_ERROR"
	KindConnectionRefused ErrorKind = "CONNECTION_REFUSED"
	KindUnknown           ErrorKind = "UNKNOWN_ERROR"
)

type FetchError struct {
	Message   string
	Retryable bool
	Cause     ErrorKind
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetcher error: %s: %s", e.Cause, e.Message)
}

// A failed page never stops the scan.
func (e *FetchError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

func (e *FetchError) Kind() ErrorKind {
	return e.Cause
}

// IsRetryable returns whether this error is retryable
func (e *FetchError) IsRetryable() bool {
	return e.Retryable
}

// ClassifyError maps a transport error to its ErrorKind.
// Order matters: a DNS lookup that hit the deadline is a TIMEOUT.
func ClassifyError(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindDNSError
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return KindConnectionRefused
	}
	return KindUnknown
}

func newFetchError(err error) *FetchError {
	return &FetchError{
		Message:   err.Error(),
		Retryable: false,
		Cause:     ClassifyError(err),
	}
}

// mapFetchErrorToMetadataCause maps fetcher-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapFetchErrorToMetadataCause(err *FetchError) metadata.ErrorCause {
	switch err.Cause {
	case KindTimeout, KindDNSError, KindConnectionRefused:
		return metadata.CauseNetworkFailure
	default:
		return metadata.CauseUnknown
	}
}
