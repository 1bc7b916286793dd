package extractor

import (
	"fmt"

	"github.com/rohmanhakim/site-word-scanner/internal/metadata"
	"github.com/rohmanhakim/site-word-scanner/pkg/failure"
)

type ExtractionErrorCause string

const (
	ErrCauseNotHTML        ExtractionErrorCause = "not html"
	ErrCauseCharsetUnknown ExtractionErrorCause = "undecodable charset"
)

// ExtractionError is only ever recorded; extraction degrades to an empty
// result instead of failing the page.
type ExtractionError struct {
	Message   string
	Retryable bool
	Cause     ExtractionErrorCause
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error: %s: %s", e.Cause, e.Message)
}

func (e *ExtractionError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

// mapExtractionErrorToMetadataCause maps extractor-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapExtractionErrorToMetadataCause(err *ExtractionError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNotHTML, ErrCauseCharsetUnknown:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
