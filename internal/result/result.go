package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

/*
Scan results are the in-memory output of one domain scan.
They are built by the scheduler, then handed untouched to the storage
renderers. A PageResult is appended only after its fetch and extraction
step has fully completed.
*/

// OccurrenceType tags where a keyword occurrence was found.
type OccurrenceType string

const (
	OccurrenceText OccurrenceType = "TEXT"
	OccurrenceMail OccurrenceType = "MAIL"
	OccurrenceLink OccurrenceType = "LINK"
)

// Status is either an HTTP status code or a symbolic transport error kind
// such as "TIMEOUT". Exactly one of the two is set.
type Status struct {
	code int
	kind string
}

func StatusCode(code int) Status {
	return Status{code: code}
}

func StatusKind(kind string) Status {
	return Status{kind: kind}
}

func (s Status) Code() (int, bool) {
	return s.code, s.kind == ""
}

func (s Status) Kind() (string, bool) {
	return s.kind, s.kind != ""
}

func (s Status) IsSuccess() bool {
	return s.kind == "" && s.code >= 200 && s.code < 300
}

func (s Status) String() string {
	if s.kind != "" {
		return s.kind
	}
	return fmt.Sprintf("%d", s.code)
}

// MarshalJSON emits a number for HTTP codes and a string for error kinds.
func (s Status) MarshalJSON() ([]byte, error) {
	if s.kind != "" {
		return json.Marshal(s.kind)
	}
	return json.Marshal(s.code)
}

func (s *Status) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var kind string
		if err := json.Unmarshal(data, &kind); err != nil {
			return err
		}
		*s = StatusKind(kind)
		return nil
	}
	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("status must be a number or a string: %w", err)
	}
	*s = StatusCode(code)
	return nil
}

type PageResult struct {
	URL    string   `json:"url"`
	Status Status   `json:"status"`
	Count  int      `json:"count"`
	Text   []string `json:"text"`
	Mail   []string `json:"mail"`
	Link   []string `json:"link"`
}

// NewPageResult builds a page record; Count is derived from the lists.
func NewPageResult(url string, status Status, text, mail, link []string) PageResult {
	return PageResult{
		URL:    url,
		Status: status,
		Count:  len(text) + len(mail) + len(link),
		Text:   nonNil(text),
		Mail:   nonNil(mail),
		Link:   nonNil(link),
	}
}

// NewFailedPageResult records a page that produced no content to scan.
func NewFailedPageResult(url string, status Status) PageResult {
	return NewPageResult(url, status, nil, nil, nil)
}

// Occurrence is one flattened (type, value) pair of a page.
type Occurrence struct {
	Type  OccurrenceType
	Value string
}

// Occurrences flattens the page's lists: TEXT first, then MAIL, then LINK.
func (p PageResult) Occurrences() []Occurrence {
	occurrences := make([]Occurrence, 0, p.Count)
	for _, v := range p.Text {
		occurrences = append(occurrences, Occurrence{Type: OccurrenceText, Value: v})
	}
	for _, v := range p.Mail {
		occurrences = append(occurrences, Occurrence{Type: OccurrenceMail, Value: v})
	}
	for _, v := range p.Link {
		occurrences = append(occurrences, Occurrence{Type: OccurrenceLink, Value: v})
	}
	return occurrences
}

type ScanResult struct {
	GeneratedAt      time.Time    `json:"generatedAt"`
	Domain           string       `json:"domain"`
	Success          bool         `json:"success"`
	Error            string       `json:"error,omitempty"`
	TotalVisitedURLs int          `json:"totalVisitedUrls"`
	VisitedURLsData  []PageResult `json:"visitedUrlsData"`
}

const ErrInvalidSeed = "The URL is not valid"

// NewInvalidSeedResult is the result of a scan whose seed could not be
// canonicalized. Domain carries the raw input.
func NewInvalidSeedResult(rawSeed string, generatedAt time.Time) ScanResult {
	return ScanResult{
		GeneratedAt:      generatedAt,
		Domain:           rawSeed,
		Success:          false,
		Error:            ErrInvalidSeed,
		TotalVisitedURLs: 0,
		VisitedURLsData:  []PageResult{},
	}
}

// TotalOccurrences sums Count over all pages.
func (s ScanResult) TotalOccurrences() int {
	total := 0
	for _, page := range s.VisitedURLsData {
		total += page.Count
	}
	return total
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
