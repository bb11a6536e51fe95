package downstream

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/samber/do"
)

// Printer stands in for the Siebel REST API: requests are printed, never sent.
type Printer struct {
	out io.Writer
}

func New(_ *do.Injector) (*Printer, error) {
	return NewPrinter(os.Stdout), nil
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) Emit(title string, payload any) error {
	data, err := Format(payload)
	if err != nil {
		return err
	}

	if _, err = fmt.Fprintf(p.out, "%s\n%s\n", title, data); err != nil {
		return fmt.Errorf("failed to print request: %w", err)
	}

	slog.Debug("Simulated REST request", "title", title)

	return nil
}

// Format renders payload as two-space indented JSON.
func Format(payload any) (string, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	return string(data), nil
}
