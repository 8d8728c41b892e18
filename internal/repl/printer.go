package repl

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FormatList renders rows as a bracketed list of quoted strings.
// The list stays on one line when it fits in width, otherwise every
// element goes on its own line. Elements use Go double-quoted escaping,
// so a row reads "2020-01-01, ..." rather than '2020-01-01, ...'.
func FormatList(rows []string, width int) string {
	if len(rows) == 0 {
		return "[]"
	}

	quoted := make([]string, len(rows))
	for i, r := range rows {
		quoted[i] = strconv.Quote(r)
	}

	single := "[" + strings.Join(quoted, ", ") + "]"
	if len(single) <= width {
		return single
	}
	return "[" + strings.Join(quoted, ",\n ") + "]"
}

// PrintResult writes the formatted list followed by a newline
func PrintResult(w io.Writer, rows []string, width int) {
	fmt.Fprintln(w, FormatList(rows, width))
}
