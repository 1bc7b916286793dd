package extractor

import (
	"bytes"
	"fmt"
	"mime"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/site-word-scanner/internal/metadata"
	"github.com/rohmanhakim/site-word-scanner/pkg/textutil"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

/*
Responsibilities
- Decode and parse HTML into a DOM tree
- Find keyword occurrences in three categories:
	- TEXT: visible body text, with surrounding context
	- MAIL: mailto: targets containing the keyword
	- LINK: absolute link URLs whose hostname contains "<keyword>."
- Collect every raw href for link discovery

Extraction never fails. Malformed markup, a missing body or non-HTML
content yields empty lists. Matching is case-insensitive.
*/

const (
	contextBefore = 30
	contextAfter  = 36
)

// invisibleElements never contribute to rendered text.
const invisibleElements = "script, style, noscript, template"

type OccurrenceExtractor struct {
	metadataSink metadata.MetadataSink
}

func NewOccurrenceExtractor(
	metadataSink metadata.MetadataSink,
) OccurrenceExtractor {
	return OccurrenceExtractor{
		metadataSink: metadataSink,
	}
}

func (o *OccurrenceExtractor) Extract(
	pageUrl url.URL,
	body []byte,
	contentType string,
	keyword string,
) ExtractionResult {
	if !isHTMLContent(contentType) {
		return emptyResult()
	}

	doc, err := o.parse(pageUrl, body, contentType)
	if err != nil {
		o.recordError(pageUrl, err)
		return emptyResult()
	}

	result := emptyResult()
	result.Hrefs = collectHrefs(doc)
	keyword = textutil.Lower(keyword)
	if keyword == "" {
		return result
	}

	result.Mail = findMailOccurrences(doc, keyword)
	result.Link = findLinkOccurrences(doc, pageUrl, keyword)

	// Text goes last: stripping invisible elements mutates the tree.
	content := doc.Find("body")
	content.Find(invisibleElements).Remove()
	result.Text = FindTextOccurrences(content.Text(), keyword)

	return result
}

func (o *OccurrenceExtractor) parse(pageUrl url.URL, body []byte, contentType string) (*goquery.Document, *ExtractionError) {
	if label := declaredCharset(contentType); label != "" {
		if enc, _ := charset.Lookup(label); enc == nil {
			// Detection below falls back to <meta> and then windows-1252.
			o.recordError(pageUrl, &ExtractionError{
				Message:   fmt.Sprintf("unknown charset %q", label),
				Retryable: false,
				Cause:     ErrCauseCharsetUnknown,
			}, metadata.NewAttr(metadata.AttrContentType, contentType))
		}
	}
	enc, _, _ := charset.DetermineEncoding(body, contentType)
	decoded := enc.NewDecoder().Reader(bytes.NewReader(body))

	root, err := html.Parse(decoded)
	if err != nil {
		return nil, &ExtractionError{
			Message:   fmt.Sprintf("failed to parse HTML: %v", err),
			Retryable: false,
			Cause:     ErrCauseNotHTML,
		}
	}
	return goquery.NewDocumentFromNode(root), nil
}

// declaredCharset returns the charset parameter of contentType, if any.
func declaredCharset(contentType string) string {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(params["charset"])
}

func (o *OccurrenceExtractor) recordError(pageUrl url.URL, err *ExtractionError, attrs ...metadata.Attribute) {
	o.metadataSink.RecordError(
		time.Now(),
		"extractor",
		"OccurrenceExtractor.Extract",
		mapExtractionErrorToMetadataCause(err),
		err.Error(),
		append([]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, pageUrl.String()),
		}, attrs...),
	)
}

// FindTextOccurrences scans text for every non-overlapping occurrence of
// keyword, case-insensitively, and returns a whitespace-collapsed snippet of
// up to 30 characters before each match and up to 36 characters from its start.
func FindTextOccurrences(text string, keyword string) []string {
	occurrences := []string{}
	if keyword == "" {
		return occurrences
	}

	haystack := []rune(textutil.Lower(text))
	needle := []rune(textutil.Lower(keyword))

	for i := 0; i+len(needle) <= len(haystack); {
		idx := indexRunes(haystack[i:], needle)
		if idx < 0 {
			break
		}
		match := i + idx
		start := max(0, match-contextBefore)
		end := min(len(haystack), max(match+contextAfter, match+len(needle)))
		snippet := textutil.CollapseWhitespace(string(haystack[start:end]))
		occurrences = append(occurrences, snippet)
		i = match + len(needle)
	}
	return occurrences
}

func findMailOccurrences(doc *goquery.Document, keyword string) []string {
	occurrences := []string{}
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if len(href) < len("mailto:") || !strings.EqualFold(href[:len("mailto:")], "mailto:") {
			return
		}
		target := href[len("mailto:"):]
		if strings.Contains(textutil.Lower(target), keyword) {
			occurrences = append(occurrences, target)
		}
	})
	return occurrences
}

func findLinkOccurrences(doc *goquery.Document, pageUrl url.URL, keyword string) []string {
	occurrences := []string{}
	label := keyword + "."
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		absolute := pageUrl.ResolveReference(ref)
		if !strings.Contains(strings.ToLower(absolute.Hostname()), label) {
			return
		}
		// Same serialization as canonical URLs: a bare host gets the root path.
		if absolute.Path == "" && absolute.Opaque == "" {
			absolute.Path = "/"
		}
		occurrences = append(occurrences, absolute.String())
	})
	return occurrences
}

func collectHrefs(doc *goquery.Document) []string {
	hrefs := []string{}
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}

// isHTMLContent accepts a missing Content-Type and sniffs nothing further.
func isHTMLContent(contentType string) bool {
	if strings.TrimSpace(contentType) == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

func indexRunes(haystack []rune, needle []rune) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		matched := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				matched = false
				break
			}
		}
		if matched {
			return i
		}
	}
	return -1
}
