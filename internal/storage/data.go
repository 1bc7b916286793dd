package storage

// Persistence

type WriteResult struct {
	domain      string
	path        string
	contentHash string
}

func NewWriteResult(
	domain string,
	path string,
	contentHash string,
) WriteResult {
	return WriteResult{
		domain:      domain,
		path:        path,
		contentHash: contentHash,
	}
}

func (w *WriteResult) Domain() string {
	return w.domain
}

func (w *WriteResult) Path() string {
	return w.path
}

// ContentHash is the hex digest of the bytes written.
func (w *WriteResult) ContentHash() string {
	return w.contentHash
}
