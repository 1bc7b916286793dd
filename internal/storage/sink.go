package storage

import (
	"bytes"
	"errors"
	"path/filepath"
	"time"

	"github.com/rohmanhakim/site-word-scanner/internal/config"
	"github.com/rohmanhakim/site-word-scanner/internal/metadata"
	"github.com/rohmanhakim/site-word-scanner/internal/result"
	"github.com/rohmanhakim/site-word-scanner/pkg/failure"
	"github.com/rohmanhakim/site-word-scanner/pkg/fileutil"
	"github.com/rohmanhakim/site-word-scanner/pkg/hashutil"
)

/*
Responsibilities
- Render scan results as JSON, CSV or Markdown
- Persist one report per domain scan
- Ensure deterministic filenames

Output Characteristics
- Output directory is created on demand
- Writes are atomic: a report is either complete or absent
- Same domain on the same day overwrites the previous report
*/

type Sink interface {
	Write(
		outputDir string,
		scan result.ScanResult,
		format config.OutputFormat,
	) (WriteResult, failure.ClassifiedError)
}

type LocalSink struct {
	metadataSink metadata.MetadataSink
	hashAlgo     hashutil.HashAlgo
}

func NewLocalSink(
	metadataSink metadata.MetadataSink,
) LocalSink {
	return LocalSink{
		metadataSink: metadataSink,
		hashAlgo:     hashutil.DefaultHashAlgo,
	}
}

func (s *LocalSink) Write(
	outputDir string,
	scan result.ScanResult,
	format config.OutputFormat,
) (WriteResult, failure.ClassifiedError) {
	writeResult, err := write(outputDir, scan, format, s.hashAlgo)
	if err != nil {
		s.metadataSink.RecordError(
			time.Now(),
			"storage",
			"LocalSink.Write",
			mapStorageErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrDomain, scan.Domain),
				metadata.NewAttr(metadata.AttrWritePath, err.Path),
			},
		)
		return WriteResult{}, err
	}
	s.metadataSink.RecordArtifact(
		metadata.ArtifactReport,
		writeResult.Path(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrDomain, scan.Domain),
			metadata.NewAttr(metadata.AttrDigest, hashutil.ShortDigest(writeResult.ContentHash(), 12)),
		},
	)
	return writeResult, nil
}

func write(
	outputDir string,
	scan result.ScanResult,
	format config.OutputFormat,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, *StorageError) {
	var buf bytes.Buffer
	if err := RendererFor(format).Render(&buf, scan); err != nil {
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseRenderFailure,
		}
	}
	content := buf.Bytes()

	contentHash, err := hashutil.HashBytes(content, hashAlgo)
	if err != nil {
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseHashComputationFailed,
		}
	}

	if err := fileutil.EnsureDir(outputDir); err != nil {
		return WriteResult{}, fromFileError(err, outputDir)
	}

	fullPath := filepath.Join(outputDir, OutputFilename(scan.Domain, format, scan.GeneratedAt))
	if err := fileutil.WriteFileAtomic(fullPath, content); err != nil {
		return WriteResult{}, fromFileError(err, fullPath)
	}

	return NewWriteResult(scan.Domain, fullPath, contentHash), nil
}

func fromFileError(err failure.ClassifiedError, path string) *StorageError {
	storageErr := &StorageError{
		Message:   err.Error(),
		Retryable: err.Severity() == failure.SeverityRecoverable,
		Cause:     ErrCauseWriteFailure,
		Path:      path,
	}
	var fileErr *fileutil.FileError
	if errors.As(err, &fileErr) {
		switch fileErr.Cause {
		case fileutil.ErrCauseDiskFull:
			storageErr.Cause = ErrCauseDiskFull
		case fileutil.ErrCausePathError:
			storageErr.Cause = ErrCausePathError
		}
	}
	return storageErr
}
