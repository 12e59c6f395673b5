// Package outwriter has output and writer logic.
package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/retainly/churnscope/internal/contract"
	"golang.org/x/term"
)

// writeWithFile handles the common pattern of opening a file, writing to
// it, and cleaning up. It accepts a writer function that takes an
// io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "%s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// createFormatters creates the formatter closures shared by the table
// and CSV writers.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
	return fmtFloat, intFmt
}

// getMaxTableIDWidth calculates the maximum width for customer IDs in
// table output. An explicit cfg.Width takes precedence over the
// detected terminal size.
func getMaxTableIDWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		var err error
		termWidth, _, err = term.GetSize(int(os.Stdout.Fd()))
		if err != nil || termWidth <= 0 {
			// Conservative default for narrow terminals and CI
			termWidth = 80
		}
	}

	// Reserve space for the fixed numeric columns with borders/padding
	baseWidth := 95

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}
