package structured

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the rendering of structured results.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const indentWidth = 2

// Render writes r to w. Structured values are written as 2-space indented
// text in the given format with non-ASCII characters kept verbatim. Results
// without a structured form are written as their raw text.
func Render(w io.Writer, r Result, format Format) error {
	if !r.Structured() {
		_, err := fmt.Fprintln(w, r.Text)
		return err
	}

	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", strings.Repeat(" ", indentWidth))
		enc.SetEscapeHTML(false)
		if err := enc.Encode(r.Value); err != nil {
			return fmt.Errorf("failed to render JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(indentWidth)
		if err := enc.Encode(r.Value); err != nil {
			return fmt.Errorf("failed to render YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
