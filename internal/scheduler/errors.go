package scheduler

import (
	"fmt"

	"github.com/rohmanhakim/site-word-scanner/internal/metadata"
	"github.com/rohmanhakim/site-word-scanner/pkg/failure"
)

type SeedErrorCause string

const (
	ErrCauseInvalidSeed  SeedErrorCause = "invalid seed url"
	ErrCauseEmptyKeyword SeedErrorCause = "empty keyword"
)

type SeedError struct {
	Message   string
	Retryable bool
	Cause     SeedErrorCause
}

func (e *SeedError) Error() string {
	return fmt.Sprintf("seed error: %s: %s", e.Cause, e.Message)
}

func (e *SeedError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapSeedErrorToMetadataCause maps scheduler-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapSeedErrorToMetadataCause(err *SeedError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseInvalidSeed:
		return metadata.CauseContentInvalid
	case ErrCauseEmptyKeyword:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
