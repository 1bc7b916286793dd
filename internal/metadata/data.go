package metadata

/*
crawlStats
  - Represents a terminal, derived summary of a completed domain scan
  - Contains only aggregate counts and durations
  - Is computed by the scheduler after the frontier is exhausted
  - Is recorded exactly once per scan
  - Must not influence scheduling or termination
*/
type crawlStats struct {
	seedURL          string
	totalPages       int
	totalErrors      int
	totalOccurrences int
	durationMs       int64
}

/*
ErrorCause is a closed, canonical classification used exclusively for
observability (logging and reporting).

Rules:
  - ErrorCause MUST NOT influence control flow.
  - Pipeline packages MAY map their local errors to ErrorCause,
    but MUST NOT invent new meanings.
  - If a failure does not clearly match a defined cause, CauseUnknown MUST be used.

# CauseUnknown

Unexpected internal errors, unclassified third-party failures.

# CauseNetworkFailure

Timeouts, DNS resolution failures, refused or reset connections.

# CauseContentInvalid

Content was fetched but could not be processed meaningfully: an unparsable
seed URL, an undecodable body.

# CauseStorageFailure

Failure while persisting a scan report: disk full, permission errors.

# CauseInvariantViolation

A scan-level invariant was violated (e.g. an empty keyword reached the engine).
*/
type ErrorCause int

const (
	CauseUnknown ErrorCause = iota
	CauseNetworkFailure
	CauseContentInvalid
	CauseStorageFailure
	CauseInvariantViolation
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	case CauseInvariantViolation:
		return "invariant_violation"
	default:
		return "unknown"
	}
}

type ArtifactKind string

const (
	ArtifactReport ArtifactKind = "report"
)

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrURL             AttributeKey = "url"
	AttrSeed            AttributeKey = "seed"
	AttrDomain          AttributeKey = "domain"
	AttrErrorKind       AttributeKey = "error_kind"
	AttrWritePath       AttributeKey = "write_path"
	AttrDigest          AttributeKey = "digest"
	AttrContentType     AttributeKey = "content_type"
	AttrContentEncoding AttributeKey = "content_encoding"
)
