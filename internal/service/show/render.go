package show

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"github.com/mateuszmigas/update-beacon/internal/domain/manifest"
)

// signaturePreviewLength bounds the signature column so the table stays
// readable, signatures run to hundreds of characters.
const signaturePreviewLength = 24

// render writes the manifest to the writer, as a table on terminals and as
// the raw JSON document everywhere else.
func render(w io.Writer, m *manifest.Manifest) error {
	if !isTerminal(w) {
		data, err := m.Encode()
		if err != nil {
			return err
		}

		if _, err = fmt.Fprintln(w, string(data)); err != nil {
			return fmt.Errorf("render manifest: %w", err)
		}

		return nil
	}

	fmt.Fprintf(w, "version:  %s\n", m.Version)
	fmt.Fprintf(w, "pub_date: %s\n", m.PubDate)

	if m.Notes != "" {
		fmt.Fprintf(w, "notes:    %s\n", m.Notes)
	}

	fmt.Fprintln(w, renderPlatformTable(m))

	return nil
}

// renderPlatformTable renders the platform map with keys in stable order.
func renderPlatformTable(m *manifest.Manifest) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Platform", "URL", "Signature"})

	keys := make([]string, 0, len(m.Platforms))
	for key := range m.Platforms {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		entry := m.Platforms[key]
		tw.AppendRow(table.Row{key, entry.URL, previewSignature(entry.Signature)})
	}

	return tw.Render()
}

// previewSignature truncates a signature for display.
func previewSignature(signature string) string {
	if len(signature) <= signaturePreviewLength {
		return signature
	}

	return signature[:signaturePreviewLength] + "..."
}

// isTerminal reports whether the writer is an interactive terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fd := file.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
