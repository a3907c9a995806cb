package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTokenField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single quotes", "['data', 'analyst', 'python']", []string{"data", "analyst", "python"}},
		{"double quotes", `["data", "analyst"]`, []string{"data", "analyst"}},
		{"embedded other quote", `["it's", 'say "hi"']`, []string{"it's", `say "hi"`}},
		{"escaped quote", `['it\'s']`, []string{"it's"}},
		{"escaped backslash", `['a\\b']`, []string{`a\b`}},
		{"trailing comma", "['a', 'b',]", []string{"a", "b"}},
		{"empty list", "[]", []string{}},
		{"empty list with spaces", "[ ]", []string{}},
		{"surrounding whitespace", "  ['a']\n", []string{"a"}},
		{"no spaces", "['a','b']", []string{"a", "b"}},
		{"unicode", "['données', 'análisis']", []string{"données", "análisis"}},
		{"empty string element", "['', 'x']", []string{"", "x"}},
		{"blank cell", "   ", nil},
		{"duplicates kept", "['python', 'python']", []string{"python", "python"}},
		{"unicode escape", `['caf\u00e9']`, []string{"café"}},
		{"hex escape", `['\x41I']`, []string{"AI"}},
		{"long unicode escape", `['\U0001F600']`, []string{"\U0001F600"}},
		{"control escape", `['a\tb']`, []string{"a\tb"}},
		{"unknown escape keeps backslash", `['c\+\+']`, []string{`c\+\+`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTokenField(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTokenField_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing brackets", "'a', 'b'"},
		{"unterminated list", "['a', 'b'"},
		{"unterminated string", "['a, 'b']"},
		{"bare word", "[data, analyst]"},
		{"number element", "[1, 2]"},
		{"missing comma", "['a' 'b']"},
		{"trailing garbage", "['a'] extra"},
		{"dangling escape", `['a\`},
		{"bad unicode escape", `['\u00zz']`},
		{"truncated hex escape", `['\x4']`},
		{"out of range escape", `['\U00110000']`},
		{"double comma", "['a',, 'b']"},
		{"adjacent literals", `['it''s', "ok"]`},
		{"plain text", "data analyst python"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTokenField(tt.input)
			assert.Error(t, err)
			assert.Nil(t, got)
		})
	}
}
