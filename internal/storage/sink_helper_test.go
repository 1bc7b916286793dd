package storage_test

import (
	"time"

	"github.com/rohmanhakim/site-word-scanner/internal/metadata"
	"github.com/rohmanhakim/site-word-scanner/internal/result"
)

// metadataSinkMock is a mock for metadata.MetadataSink
type metadataSinkMock struct {
	metadata.NoopSink
	recordErrorCalled    bool
	recordErrorCause     metadata.ErrorCause
	recordErrorAttrs     []metadata.Attribute
	recordArtifactCalled bool
	recordArtifactKind   metadata.ArtifactKind
	recordArtifactPath   string
}

func (m *metadataSinkMock) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.recordErrorCalled = true
	m.recordErrorCause = cause
	m.recordErrorAttrs = attrs
}

func (m *metadataSinkMock) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
	m.recordArtifactCalled = true
	m.recordArtifactKind = kind
	m.recordArtifactPath = path
}

var fixedGeneratedAt = time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC)

func createTestScan() result.ScanResult {
	return result.ScanResult{
		GeneratedAt:      fixedGeneratedAt,
		Domain:           "example.com",
		Success:          true,
		TotalVisitedURLs: 3,
		VisitedURLsData: []result.PageResult{
			result.NewPageResult(
				"https://example.com/",
				result.StatusCode(200),
				[]string{`the "green" turtle`},
				[]string{"leo@turtle.com"},
				[]string{"https://www.turtle.com/"},
			),
			result.NewFailedPageResult("https://example.com/missing", result.StatusCode(404)),
			result.NewFailedPageResult("https://example.com/slow", result.StatusKind("TIMEOUT")),
		},
	}
}
