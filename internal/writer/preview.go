package writer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dgallion1/pdfindex/internal/toc"
)

// FormatPreview renders an indented console preview of the outline. At most
// maxEntries lines are shown, followed by a per-level summary.
func FormatPreview(entries []toc.OutlineEntry, maxEntries int) string {
	if len(entries) == 0 {
		return "(empty outline)\n"
	}
	if maxEntries <= 0 || maxEntries > len(entries) {
		maxEntries = len(entries)
	}

	var sb strings.Builder
	for _, e := range entries[:maxEntries] {
		indent := strings.Repeat("  ", e.Level-1)
		fmt.Fprintf(&sb, "%s%s  (p.%d)\n", indent, e.Title, e.Page)
	}
	if maxEntries < len(entries) {
		fmt.Fprintf(&sb, "... %d more entries\n", len(entries)-maxEntries)
	}

	dist := make(map[int]int)
	for _, e := range entries {
		dist[e.Level]++
	}
	levels := make([]int, 0, len(dist))
	for l := range dist {
		levels = append(levels, l)
	}
	sort.Ints(levels)

	fmt.Fprintf(&sb, "\n%d entries", len(entries))
	for _, l := range levels {
		fmt.Fprintf(&sb, ", level %d: %d", l, dist[l])
	}
	sb.WriteString("\n")
	return sb.String()
}
