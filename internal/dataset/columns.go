package dataset

import "strings"

// DefaultPlaceholderPrefix marks index columns left behind by spreadsheet exports
const DefaultPlaceholderPrefix = "Unnamed"

// DropPlaceholderColumns returns columns without those whose header starts
// with prefix. Applying it to its own output drops nothing.
func DropPlaceholderColumns(columns []string, prefix string) []string {
	kept, _ := keptColumns(columns, prefix)
	return kept
}

// keptColumns returns the surviving headers and their positions in the source row
func keptColumns(header []string, prefix string) ([]string, []int) {
	names := make([]string, 0, len(header))
	idx := make([]int, 0, len(header))
	for i, h := range header {
		if isPlaceholder(h, prefix) {
			continue
		}
		names = append(names, h)
		idx = append(idx, i)
	}
	return names, idx
}

func isPlaceholder(header, prefix string) bool {
	if prefix == "" {
		return false
	}
	return strings.HasPrefix(header, prefix)
}
