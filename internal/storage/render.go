package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/rohmanhakim/site-word-scanner/internal/config"
	"github.com/rohmanhakim/site-word-scanner/internal/result"
)

// Renderer serializes one scan result.
type Renderer interface {
	Render(w io.Writer, scan result.ScanResult) error
}

// RendererFor returns the renderer of format. Unknown formats fall back to JSON.
func RendererFor(format config.OutputFormat) Renderer {
	switch format {
	case config.FormatCSV:
		return CSVRenderer{}
	case config.FormatMarkdown:
		return MarkdownRenderer{}
	default:
		return JSONRenderer{}
	}
}

// JSONRenderer dumps the scan result indented by two spaces.
type JSONRenderer struct{}

func (JSONRenderer) Render(w io.Writer, scan result.ScanResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(scan)
}

// CSVRenderer writes one ';'-separated row per occurrence under the header
// "URL;Type;Content". The content column is always quoted. Pages without
// occurrences are skipped.
type CSVRenderer struct{}

const csvHeader = "URL;Type;Content"

func (CSVRenderer) Render(w io.Writer, scan result.ScanResult) error {
	lines := []string{csvHeader}
	for _, page := range scan.VisitedURLsData {
		if page.Count == 0 {
			continue
		}
		for _, occurrence := range page.Occurrences() {
			lines = append(lines, strings.Join([]string{
				page.URL,
				string(occurrence.Type),
				quoteCSV(occurrence.Value),
			}, ";"))
		}
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

func quoteCSV(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// MarkdownRenderer writes a human-readable report.
type MarkdownRenderer struct{}

func (MarkdownRenderer) Render(w io.Writer, scan result.ScanResult) error {
	md := markdown.NewMarkdown(w)

	md.H1(fmt.Sprintf("Keyword scan of %s", scan.Domain))
	md.PlainText("")

	pagesWithOccurrences := 0
	for _, page := range scan.VisitedURLsData {
		if page.Count > 0 {
			pagesWithOccurrences++
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Domain", scan.Domain},
			{"Generated At", scan.GeneratedAt.UTC().Format(time.RFC3339)},
			{"Visited URLs", strconv.Itoa(scan.TotalVisitedURLs)},
			{"Pages With Occurrences", strconv.Itoa(pagesWithOccurrences)},
			{"Total Occurrences", strconv.Itoa(scan.TotalOccurrences())},
		},
	})
	md.PlainText("")

	md.H2("Visited Pages")
	md.PlainText("")
	if len(scan.VisitedURLsData) == 0 {
		md.PlainText("No pages were visited.")
		md.PlainText("")
	} else {
		rows := make([][]string, len(scan.VisitedURLsData))
		for i, page := range scan.VisitedURLsData {
			rows[i] = []string{escapeCell(page.URL), page.Status.String(), strconv.Itoa(page.Count)}
		}
		md.Table(markdown.TableSet{
			Header: []string{"URL", "Status", "Count"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if pagesWithOccurrences > 0 {
		md.H2("Occurrences")
		md.PlainText("")
		for _, page := range scan.VisitedURLsData {
			if page.Count == 0 {
				continue
			}
			md.H3(page.URL)
			md.PlainText("")
			occurrences := page.Occurrences()
			rows := make([][]string, len(occurrences))
			for i, occurrence := range occurrences {
				rows[i] = []string{string(occurrence.Type), escapeCell(occurrence.Value)}
			}
			md.Table(markdown.TableSet{
				Header: []string{"Type", "Content"},
				Rows:   rows,
			})
			md.PlainText("")
		}
	}

	return md.Build()
}

// escapeCell keeps pipes from splitting a table cell.
func escapeCell(value string) string {
	return strings.ReplaceAll(value, "|", `\|`)
}

// OutputFilename is "{domain}_{YYYY-MM-DD}.{ext}", dated in UTC.
func OutputFilename(domain string, format config.OutputFormat, generatedAt time.Time) string {
	return fmt.Sprintf("%s_%s.%s", domain, generatedAt.UTC().Format("2006-01-02"), format.Extension())
}
