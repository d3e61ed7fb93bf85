package overrides

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAliases(t *testing.T) {
	tests := []struct {
		name       string
		directives []string
		want       map[string][]string
		wantDiags  int
	}{
		{
			name:       "single",
			directives: []string{"llama3:latest=llama|gpt-4o"},
			want:       map[string][]string{"llama3:latest": {"llama", "gpt-4o"}},
		},
		{
			name:       "trim and drop empty",
			directives: []string{"  qwen = a | | b  "},
			want:       map[string][]string{"qwen": {"a", "b"}},
			wantDiags:  1,
		},
		{
			name:       "later directives append",
			directives: []string{"m=a|b", "other=x", "m=b|c"},
			want:       map[string][]string{"m": {"a", "b", "b", "c"}, "other": {"x"}},
		},
		{
			name:       "missing separator skipped",
			directives: []string{"no-equals-here", "m=a"},
			want:       map[string][]string{"m": {"a"}},
			wantDiags:  1,
		},
		{
			name:       "empty model skipped",
			directives: []string{"=a|b"},
			want:       map[string][]string{},
			wantDiags:  1,
		},
		{
			name:       "split on first equals only",
			directives: []string{"m=a=b"},
			want:       map[string][]string{"m": {"a=b"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags := ParseAliases(tt.directives)
			assert.Equal(t, tt.want, got)
			assert.Len(t, diags, tt.wantDiags)
		})
	}
}

func TestParseFilters(t *testing.T) {
	tests := []struct {
		name       string
		directives []string
		want       map[string][]Filter
		wantDiags  int
	}{
		{
			name:       "colon and equals",
			directives: []string{"m=temp:0.5|gpu=1"},
			want:       map[string][]Filter{"m": {{Key: "temp", Value: "0.5"}, {Key: "gpu", Value: "1"}}},
		},
		{
			name:       "first separator wins",
			directives: []string{"m=set_params:a=b"},
			want:       map[string][]Filter{"m": {{Key: "set_params", Value: "a=b"}}},
		},
		{
			name:       "malformed segment skipped",
			directives: []string{"m = broken | temp : 0.2 |"},
			want:       map[string][]Filter{"m": {{Key: "temp", Value: "0.2"}}},
			wantDiags:  1,
		},
		{
			name:       "empty key skipped",
			directives: []string{"m=:v"},
			want:       map[string][]Filter{},
			wantDiags:  1,
		},
		{
			name:       "missing model separator",
			directives: []string{"temp:0.5"},
			want:       map[string][]Filter{},
			wantDiags:  1,
		},
		{
			name:       "later directives append",
			directives: []string{"m=a:1", "m=a:2"},
			want:       map[string][]Filter{"m": {{Key: "a", Value: "1"}, {Key: "a", Value: "2"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags := ParseFilters(tt.directives)
			assert.Equal(t, tt.want, got)
			assert.Len(t, diags, tt.wantDiags)
		})
	}
}

func TestParseMacros(t *testing.T) {
	got, diags := ParseMacros([]string{"PORT_BASE=5800", " llama = /bin/llama-server --flag=x", "broken", "=nope"})
	assert.Equal(t, []Macro{
		{Name: "PORT_BASE", Value: "5800"},
		{Name: "llama", Value: "/bin/llama-server --flag=x"},
	}, got)
	assert.Len(t, diags, 2)
}
