// ABOUTME: Line-oriented CSV tokenizer for contact imports
// ABOUTME: Splits text into non-empty lines and lines into quote-aware fields
package importer

import "strings"

// SplitLines splits raw text on \r\n or \n and drops lines that are empty
// or contain only whitespace.
func SplitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// ParseLine splits a single CSV line into fields. A double quote toggles
// quoted mode; commas separate fields only outside quotes. Quotes that wrap
// an entire field are removed and doubled quotes inside them collapse to one.
// Embedded newlines are not supported: input must already be split by line.
func ParseLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == ',' && !inQuotes:
			fields = append(fields, unquote(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, unquote(current.String()))

	return fields
}

func unquote(field string) string {
	if len(field) >= 2 && strings.HasPrefix(field, `"`) && strings.HasSuffix(field, `"`) {
		return strings.ReplaceAll(field[1:len(field)-1], `""`, `"`)
	}
	return field
}
