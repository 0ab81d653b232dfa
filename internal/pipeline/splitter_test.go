package pipeline

import (
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "numbered list",
			input: "1. foo\n2. bar",
			want:  []string{"foo", "bar"},
		},
		{
			name:  "single line",
			input: "just one line",
			want:  []string{"just one line"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: "   \n\t\n",
			want:  nil,
		},
		{
			name:  "parenthesis and dash markers",
			input: "1) first thing\n2- second thing",
			want:  []string{"first thing", "second thing"},
		},
		{
			name:  "digits followed by space",
			input: "3 what about this",
			want:  []string{"what about this"},
		},
		{
			name:  "unnumbered lines kept verbatim",
			input: "what is RAG?\nhow does chunking work?",
			want:  []string{"what is RAG?", "how does chunking work?"},
		},
		{
			name:  "mixed numbering and plain lines",
			input: "intro question\n1. numbered one\n\n2. numbered two",
			want:  []string{"intro question", "numbered one", "numbered two"},
		},
		{
			name:  "marker with no remainder dropped",
			input: "1.\nreal question",
			want:  []string{"real question"},
		},
		{
			name:  "digits inside the line are not markers",
			input: "what happened in 1979?",
			want:  []string{"what happened in 1979?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}
