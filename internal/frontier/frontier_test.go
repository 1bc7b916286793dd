package frontier_test

import (
	"net/url"
	"testing"

	"github.com/rohmanhakim/site-word-scanner/internal/frontier"
	"github.com/stretchr/testify/assert"
)

// Helper to must-parse URLs in tests
func mustURL(t *testing.T, raw string) url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("invalid url %q: %v", raw, err)
	}
	return *u
}

func submit(t *testing.T, f *frontier.Frontier, raw string) bool {
	t.Helper()
	return f.Submit(frontier.NewCrawlAdmissionCandidate(mustURL(t, raw)))
}

func TestFrontier_EnforceBFS(t *testing.T) {
	f := frontier.NewFrontier()

	/*
		Graph:
		    A
		   / \
		  B   C
		  |
		  D
	*/
	submit(t, &f, "https://example.com/a")

	token, ok := f.Dequeue()
	if !ok {
		t.Fatalf("expected A to be dequeued")
	}
	assert.Equal(t, "/a", token.URL().Path)

	submit(t, &f, "https://example.com/b")
	submit(t, &f, "https://example.com/c")

	token, _ = f.Dequeue()
	assert.Equal(t, "/b", token.URL().Path)
	submit(t, &f, "https://example.com/d")

	var order []string
	for {
		token, ok := f.Dequeue()
		if !ok {
			break
		}
		order = append(order, token.URL().Path)
	}

	assert.Equal(t, []string{"/c", "/d"}, order)
}

func TestFrontier_DeduplicatesQueuedAndVisited(t *testing.T) {
	f := frontier.NewFrontier()

	assert.True(t, submit(t, &f, "https://example.com/"))
	assert.False(t, submit(t, &f, "https://example.com/"), "already queued")
	assert.Equal(t, 1, f.QueuedCount())

	_, ok := f.Dequeue()
	assert.True(t, ok)
	assert.False(t, submit(t, &f, "https://example.com/"), "already visited")

	assert.Equal(t, 1, f.VisitedCount())
	assert.Equal(t, 0, f.QueuedCount())
}

func TestFrontier_ContainsQueuedAndVisited(t *testing.T) {
	f := frontier.NewFrontier()
	submit(t, &f, "https://example.com/a")
	submit(t, &f, "https://example.com/b")

	assert.True(t, f.Contains("https://example.com/a"))
	assert.Equal(t, 2, f.QueuedCount())

	f.Dequeue()

	assert.Equal(t, 1, f.QueuedCount())
	assert.Equal(t, 1, f.VisitedCount())
	assert.True(t, f.Contains("https://example.com/a"))
	assert.True(t, f.Contains("https://example.com/b"))
	assert.False(t, f.Contains("https://example.com/c"))
}

func TestFrontier_DequeueEmpty(t *testing.T) {
	f := frontier.NewFrontier()

	token, ok := f.Dequeue()

	assert.False(t, ok)
	assert.Equal(t, frontier.CrawlToken{}, token)
	assert.Zero(t, f.VisitedCount())
}

func TestFrontier_TerminatesOnCycles(t *testing.T) {
	f := frontier.NewFrontier()
	links := map[string][]string{
		"https://example.com/a": {"https://example.com/b"},
		"https://example.com/b": {"https://example.com/a", "https://example.com/b"},
	}

	submit(t, &f, "https://example.com/a")
	dequeued := 0
	for {
		token, ok := f.Dequeue()
		if !ok {
			break
		}
		dequeued++
		if dequeued > 10 {
			t.Fatal("frontier did not terminate")
		}
		u := token.URL()
		for _, next := range links[u.String()] {
			submit(t, &f, next)
		}
	}

	assert.Equal(t, 2, dequeued)
}

func TestCrawlAdmissionCandidate_Accessors(t *testing.T) {
	candidate := frontier.NewCrawlAdmissionCandidate(mustURL(t, "https://example.com/x"))

	target := candidate.TargetURL()
	assert.Equal(t, "https://example.com/x", target.String())
}
