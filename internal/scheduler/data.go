package scheduler

import (
	"github.com/rohmanhakim/site-word-scanner/internal/frontier"
	"github.com/rohmanhakim/site-word-scanner/internal/result"
)

// scanState is the private, per-scan crawl state. Nothing in it is shared
// between scans, so parallel scans need no locking.
type scanState struct {
	seedURL     string
	domain      string
	frontier    frontier.Frontier
	pages       []result.PageResult
	totalErrors int
}

func newScanState(seedURL string, domain string) *scanState {
	return &scanState{
		seedURL:  seedURL,
		domain:   domain,
		frontier: frontier.NewFrontier(),
		pages:    []result.PageResult{},
	}
}

func (s *scanState) totalOccurrences() int {
	total := 0
	for _, page := range s.pages {
		total += page.Count
	}
	return total
}
