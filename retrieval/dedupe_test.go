package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupePreserveOrder(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "no duplicates",
			input: []string{"a", "b", "c"},
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "first occurrence wins",
			input: []string{"a", "b", "a", "c", "b"},
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "whitespace variants collapse",
			input: []string{"fact one", "  fact one  ", "fact two"},
			want:  []string{"fact one", "fact two"},
		},
		{
			name:  "case variants are distinct",
			input: []string{"Fact", "fact"},
			want:  []string{"Fact", "fact"},
		},
		{
			name:  "empty input",
			input: []string{},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedupePreserveOrder(tt.input))
		})
	}
}
