package result_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rohmanhakim/site-word-scanner/internal/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_MarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		status result.Status
		want   string
	}{
		{name: "http code is a number", status: result.StatusCode(200), want: `200`},
		{name: "not found", status: result.StatusCode(404), want: `404`},
		{name: "error kind is a string", status: result.StatusKind("TIMEOUT"), want: `"TIMEOUT"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.status)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestStatus_UnmarshalJSON(t *testing.T) {
	var code result.Status
	require.NoError(t, json.Unmarshal([]byte(`301`), &code))
	got, ok := code.Code()
	assert.True(t, ok)
	assert.Equal(t, 301, got)

	var kind result.Status
	require.NoError(t, json.Unmarshal([]byte(`"DNS_ERROR"`), &kind))
	gotKind, ok := kind.Kind()
	assert.True(t, ok)
	assert.Equal(t, "DNS_ERROR", gotKind)

	var bad result.Status
	assert.Error(t, json.Unmarshal([]byte(`true`), &bad))
}

func TestStatus_IsSuccess(t *testing.T) {
	assert.True(t, result.StatusCode(200).IsSuccess())
	assert.True(t, result.StatusCode(204).IsSuccess())
	assert.False(t, result.StatusCode(301).IsSuccess())
	assert.False(t, result.StatusCode(500).IsSuccess())
	assert.False(t, result.StatusKind("UNKNOWN_ERROR").IsSuccess())
	assert.Equal(t, "CONNECTION_REFUSED", result.StatusKind("CONNECTION_REFUSED").String())
	assert.Equal(t, "404", result.StatusCode(404).String())
}

func TestNewPageResult_DerivesCount(t *testing.T) {
	page := result.NewPageResult(
		"https://example.com/",
		result.StatusCode(200),
		[]string{"a turtle"},
		[]string{"leo@turtle.com"},
		nil,
	)

	assert.Equal(t, 2, page.Count)
	assert.NotNil(t, page.Link)
	assert.Equal(t, []result.Occurrence{
		{Type: result.OccurrenceText, Value: "a turtle"},
		{Type: result.OccurrenceMail, Value: "leo@turtle.com"},
	}, page.Occurrences())
}

func TestPageResult_JSONShape(t *testing.T) {
	page := result.NewFailedPageResult("https://example.com/slow", result.StatusKind("TIMEOUT"))

	got, err := json.Marshal(page)

	require.NoError(t, err)
	assert.JSONEq(t,
		`{"url":"https://example.com/slow","status":"TIMEOUT","count":0,"text":[],"mail":[],"link":[]}`,
		string(got),
	)
}

func TestScanResult_JSONShape(t *testing.T) {
	generatedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("successful scan omits error", func(t *testing.T) {
		scan := result.ScanResult{
			GeneratedAt:      generatedAt,
			Domain:           "example.com",
			Success:          true,
			TotalVisitedURLs: 1,
			VisitedURLsData: []result.PageResult{
				result.NewPageResult("https://example.com/", result.StatusCode(200), []string{"turtle"}, nil, nil),
			},
		}

		got, err := json.Marshal(scan)

		require.NoError(t, err)
		assert.JSONEq(t, `{
			"generatedAt": "2024-05-01T10:00:00Z",
			"domain": "example.com",
			"success": true,
			"totalVisitedUrls": 1,
			"visitedUrlsData": [
				{"url":"https://example.com/","status":200,"count":1,"text":["turtle"],"mail":[],"link":[]}
			]
		}`, string(got))
		assert.Equal(t, 1, scan.TotalOccurrences())
	})

	t.Run("invalid seed", func(t *testing.T) {
		scan := result.NewInvalidSeedResult("not a url", generatedAt)

		got, err := json.Marshal(scan)

		require.NoError(t, err)
		assert.JSONEq(t, `{
			"generatedAt": "2024-05-01T10:00:00Z",
			"domain": "not a url",
			"success": false,
			"error": "The URL is not valid",
			"totalVisitedUrls": 0,
			"visitedUrlsData": []
		}`, string(got))
	})
}
