package taskstring

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantArgs []string
	}{
		{
			name:     "name only",
			input:    "Foo",
			wantName: "Foo",
			wantArgs: []string{},
		},
		{
			name:     "empty brackets",
			input:    "Foo[]",
			wantName: "Foo",
			wantArgs: []string{},
		},
		{
			name:     "two args",
			input:    "Foo[a,b]",
			wantName: "Foo",
			wantArgs: []string{"a", "b"},
		},
		{
			name:     "escaped comma",
			input:    `Foo[a\,b,c]`,
			wantName: "Foo",
			wantArgs: []string{"a,b", "c"},
		},
		{
			name:     "unbalanced bracket",
			input:    "Foo[",
			wantName: "Foo[",
			wantArgs: []string{},
		},
		{
			name:     "trailing comma",
			input:    "Foo[a,]",
			wantName: "Foo",
			wantArgs: []string{"a", ""},
		},
		{
			name:     "whitespace around separators",
			input:    "Foo[a , b,   c  ]",
			wantName: "Foo",
			wantArgs: []string{"a", "b", "c"},
		},
		{
			name:     "leading whitespace of first arg kept",
			input:    "Foo[ a]",
			wantName: "Foo",
			wantArgs: []string{" a"},
		},
		{
			name:     "escaped trailing space kept",
			input:    `Foo[a\ ,b]`,
			wantName: "Foo",
			wantArgs: []string{"a ", "b"},
		},
		{
			name:     "escaped backslash",
			input:    `Foo[a\\b]`,
			wantName: "Foo",
			wantArgs: []string{`a\b`},
		},
		{
			name:     "lone trailing backslash kept",
			input:    `Foo[a\]`,
			wantName: "Foo",
			wantArgs: []string{`a\`},
		},
		{
			name:     "trailing backslash after escaped comma",
			input:    `Foo[a\,b\]`,
			wantName: "Foo",
			wantArgs: []string{`a,b\`},
		},
		{
			name:     "trailing backslash in second arg",
			input:    `Foo[x, y\]`,
			wantName: "Foo",
			wantArgs: []string{"x", `y\`},
		},
		{
			name:     "only a comma",
			input:    "Foo[,]",
			wantName: "Foo",
			wantArgs: []string{"", ""},
		},
		{
			name:     "nested closing bracket belongs to args",
			input:    "Foo[a]b]",
			wantName: "Foo",
			wantArgs: []string{"a]b"},
		},
		{
			name:     "text after brackets",
			input:    "Foo[a]x",
			wantName: "Foo[a]x",
			wantArgs: []string{},
		},
		{
			name:     "no name before brackets",
			input:    "[a,b]",
			wantName: "[a,b]",
			wantArgs: []string{},
		},
		{
			name:     "namespaced class",
			input:    "Admin::ReportWorker[2024-01-01,daily]",
			wantName: "Admin::ReportWorker",
			wantArgs: []string{"2024-01-01", "daily"},
		},
		{
			name:     "empty string",
			input:    "",
			wantName: "",
			wantArgs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotName, gotArgs := Parse(tt.input)
			if gotName != tt.wantName {
				t.Errorf("Parse(%q) name = %q, want %q", tt.input, gotName, tt.wantName)
			}
			if !reflect.DeepEqual(gotArgs, tt.wantArgs) {
				t.Errorf("Parse(%q) args = %q, want %q", tt.input, gotArgs, tt.wantArgs)
			}
		})
	}
}

func TestParse_ArgsNeverNil(t *testing.T) {
	for _, in := range []string{"Foo", "Foo[]", "Foo["} {
		if _, args := Parse(in); args == nil {
			t.Errorf("Parse(%q) args = nil, want empty slice", in)
		}
	}
}

func TestParse_Idempotent(t *testing.T) {
	input := `Mailer[to@example.com, subject\, with comma,]`

	name1, args1 := Parse(input)
	name2, args2 := Parse(input)

	if name1 != name2 {
		t.Errorf("names differ: %q vs %q", name1, name2)
	}
	if !reflect.DeepEqual(args1, args2) {
		t.Errorf("args differ: %q vs %q", args1, args2)
	}
	want := []string{"to@example.com", "subject, with comma", ""}
	if !reflect.DeepEqual(args1, want) {
		t.Errorf("args = %q, want %q", args1, want)
	}
}
