package frontier

/*
Frontier Responsibilities
- Maintain BFS ordering
- Deduplicate URLs across queued and visited
- Guarantee termination: a key is dequeued at most once per scan
- Knows nothing about:
	- fetching
	- extraction
	- domains
	- output

It is a data structure + policy module, not a pipeline executor.
A Frontier belongs to exactly one domain scan and is not safe for
concurrent use.
*/

type Frontier struct {
	queue   *FIFOQueue[CrawlToken]
	queued  Set[string]
	visited Set[string]
}

func NewFrontier() Frontier {
	return Frontier{
		queue:   NewFIFOQueue[CrawlToken](),
		queued:  NewSet[string](),
		visited: NewSet[string](),
	}
}

// Submit enqueues the candidate unless its URL is already queued or
// visited. It reports whether the candidate was enqueued.
func (f *Frontier) Submit(candidate CrawlAdmissionCandidate) bool {
	key := candidate.targetURL.String()
	if f.Contains(key) {
		return false
	}
	f.queued.Add(key)
	f.queue.Enqueue(NewCrawlToken(candidate.targetURL))
	return true
}

// Dequeue pops the oldest queued URL and marks it visited before it is
// fetched, so a page linking to itself cannot re-enter the queue.
func (f *Frontier) Dequeue() (CrawlToken, bool) {
	token, ok := f.queue.Dequeue()
	if !ok {
		return CrawlToken{}, false
	}
	key := token.url.String()
	f.queued.Remove(key)
	f.visited.Add(key)
	return token, true
}

// Contains reports whether key is queued or already visited.
func (f *Frontier) Contains(key string) bool {
	return f.queued.Contains(key) || f.visited.Contains(key)
}

func (f *Frontier) VisitedCount() int {
	return f.visited.Size()
}

func (f *Frontier) QueuedCount() int {
	return f.queue.Size()
}
