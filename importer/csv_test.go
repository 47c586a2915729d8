package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLineRoundTrip(t *testing.T) {
	cases := [][]string{
		{"Acme Co", "a@acme.com", "555-1111"},
		{"", "x", ""},
		{"single"},
		{" padded ", "value with spaces"},
	}

	for _, fields := range cases {
		assert.Equal(t, fields, ParseLine(strings.Join(fields, ",")))
	}
}

func TestParseLineQuotedComma(t *testing.T) {
	assert.Equal(t, []string{"Acme, Inc.", "a@x.com"}, ParseLine(`"Acme, Inc.",a@x.com`))
}

func TestParseLineEscapedQuotes(t *testing.T) {
	assert.Equal(t, []string{`The "Best" Shop`, "b"}, ParseLine(`"The ""Best"" Shop",b`))
}

func TestParseLinePartialQuotesKept(t *testing.T) {
	// Quotes that do not wrap the whole field stay in the value.
	assert.Equal(t, []string{`ab"c,d"`, "e"}, ParseLine(`ab"c,d",e`))
}

func TestSplitLines(t *testing.T) {
	text := "h1,h2\r\n\r\na,b\n   \nc,d\n"
	assert.Equal(t, []string{"h1,h2", "a,b", "c,d"}, SplitLines(text))
	assert.Empty(t, SplitLines(""))
}
