package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/tdh8316/handlecheck/internal/check"
)

// Formats accepted by Render.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)

var ErrUnknownFormat = errors.New("unknown output format")

// ValidFormat reports whether f names a supported format.
func ValidFormat(f string) bool {
	switch f {
	case FormatText, FormatTable, FormatJSON:
		return true
	}
	return false
}

type Printer struct {
	w       io.Writer
	noColor bool
}

func NewPrinter(w io.Writer, noColor bool) *Printer {
	return &Printer{w: w, noColor: noColor}
}

// Render writes the report in the given format.
func (p *Printer) Render(format string, rep check.Report) error {
	switch format {
	case FormatText, "":
		return p.Text(rep)
	case FormatTable:
		return p.Table(rep)
	case FormatJSON:
		return p.JSON(rep)
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

type section struct {
	mark, title string
	paint       func(format string, a ...any) string
	results     []check.Result
}

// Text prints the available and taken sections, one "<Platform>: <URL>" line
// per result. The unknown section only appears when it has entries.
func (p *Printer) Text(rep check.Report) error {
	sections := []section{
		{"✅", "Available:", color.HiGreenString, rep.Available},
		{"❌", "Taken:", color.HiRedString, rep.Taken},
	}
	if len(rep.Unknown) > 0 {
		sections = append(sections, section{"❔", "Unknown:", color.HiYellowString, rep.Unknown})
	}

	for _, s := range sections {
		title := s.title
		if !p.noColor {
			title = s.paint("%s", title)
		}
		if _, err := fmt.Fprintf(p.w, "\n%s %s\n", s.mark, title); err != nil {
			return err
		}

		for _, r := range s.results {
			name := r.Platform
			if !p.noColor {
				name = color.HiWhiteString("%s", name)
			}
			line := name + ": " + r.URL
			if r.Status == check.Unknown && r.Reason != "" {
				line += " (" + r.Reason + ")"
			}
			if _, err := fmt.Fprintln(p.w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
