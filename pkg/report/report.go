package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// JSON writes v as indented JSON, the machine-readable report format.
func JSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// Section writes a titled divider for the human-readable report.
func Section(w io.Writer, title string) {
	fmt.Fprintf(w, "─── %s %s\n", title, strings.Repeat("─", max(3, 60-len(title))))
}

// KV writes one aligned label/value report line.
func KV(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "  %-28s %v\n", label+":", value)
}
