package websearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnippet(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{
			name:   "all fields",
			result: Result{Title: "Tokyo", Body: "Capital of Japan", URL: "https://example.com/tokyo"},
			want:   "Tokyo - Capital of Japan (https://example.com/tokyo)",
		},
		{
			name:   "missing url",
			result: Result{Title: "Tokyo", Body: "Capital of Japan"},
			want:   "Tokyo - Capital of Japan",
		},
		{
			name:   "missing body",
			result: Result{Title: "Tokyo", URL: "https://example.com/tokyo"},
			want:   "Tokyo (https://example.com/tokyo)",
		},
		{
			name:   "title only",
			result: Result{Title: "Tokyo"},
			want:   "Tokyo",
		},
		{
			name:   "url only",
			result: Result{URL: "https://example.com/tokyo"},
			want:   "https://example.com/tokyo",
		},
		{
			name:   "empty",
			result: Result{},
			want:   "",
		},
		{
			name:   "inner newlines collapsed",
			result: Result{Title: "Tokyo\nJapan", Body: "Capital\n\nof Japan"},
			want:   "Tokyo Japan - Capital of Japan",
		},
		{
			name:   "whitespace only fields omitted",
			result: Result{Title: "  ", Body: "Capital of Japan", URL: " \n "},
			want:   "Capital of Japan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Snippet())
		})
	}
}

func TestParseToolOutput(t *testing.T) {
	raw := "Title: Tokyo\n" +
		"Description: Tokyo is the capital of Japan.\n" +
		"URL: https://example.com/tokyo\n" +
		"\n" +
		"Title: Kyoto\n" +
		"Description: Former imperial capital.\n" +
		"URL: https://example.com/kyoto\n" +
		"\n"

	results := parseToolOutput(raw, 10)
	assert.Len(t, results, 2)
	assert.Equal(t, "Tokyo", results[0].Title)
	assert.Equal(t, "Tokyo is the capital of Japan.", results[0].Body)
	assert.Equal(t, "https://example.com/tokyo", results[0].URL)
	assert.Equal(t, "Kyoto", results[1].Title)
}

func TestParseToolOutput_Truncates(t *testing.T) {
	raw := "Title: A\n\nTitle: B\n\nTitle: C\n\n"

	results := parseToolOutput(raw, 2)
	assert.Len(t, results, 2)
	assert.Equal(t, "A", results[0].Title)
	assert.Equal(t, "B", results[1].Title)
}

func TestParseToolOutput_Garbage(t *testing.T) {
	results := parseToolOutput("nothing useful here", 5)
	assert.Empty(t, results)

	results = parseToolOutput("", 5)
	assert.Empty(t, results)
}

func TestParseToolOutput_MissingTrailingBlank(t *testing.T) {
	raw := "Title: Tokyo\nURL: https://example.com/tokyo"

	results := parseToolOutput(raw, 5)
	assert.Len(t, results, 1)
	assert.Equal(t, "Tokyo", results[0].Title)
	assert.Equal(t, "https://example.com/tokyo", results[0].URL)
}
