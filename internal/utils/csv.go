package utils

import "strings"

// SplitCSVLine tokenizes one CSV row, honoring embedded commas inside
// double-quoted fields. Quote characters themselves are stripped. Order
// exports from the POS occasionally double-quote the item list, so the
// stdlib csv reader's strict quoting rules reject rows we need to accept.
func SplitCSVLine(line string) []string {
	var result []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			result = append(result, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	result = append(result, strings.TrimSpace(current.String()))
	return result
}
