package extractor

// ExtractionResult holds the keyword occurrences found on one page, in
// document order, plus every raw href for link discovery.
type ExtractionResult struct {
	Text  []string
	Mail  []string
	Link  []string
	Hrefs []string
}

// Count is the total number of occurrences across the three categories.
func (r ExtractionResult) Count() int {
	return len(r.Text) + len(r.Mail) + len(r.Link)
}

func emptyResult() ExtractionResult {
	return ExtractionResult{
		Text:  []string{},
		Mail:  []string{},
		Link:  []string{},
		Hrefs: []string{},
	}
}
