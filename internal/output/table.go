package output

import (
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/tdh8316/handlecheck/internal/check"
)

// Table prints every result as one row, in bucket order.
func (p *Printer) Table(rep check.Report) error {
	table := tablewriter.NewTable(p.w)
	table.Header("Platform", "Status", "Code", "URL")

	for _, bucket := range [][]check.Result{rep.Available, rep.Taken, rep.Unknown} {
		for _, r := range bucket {
			code := "-"
			if r.StatusCode != 0 {
				code = strconv.Itoa(r.StatusCode)
			}
			if err := table.Append(r.Platform, p.status(r.Status), code, r.URL); err != nil {
				return err
			}
		}
	}
	return table.Render()
}

func (p *Printer) status(s check.Status) string {
	if p.noColor {
		return s.String()
	}
	switch s {
	case check.Available:
		return color.HiGreenString("%s", s)
	case check.Taken:
		return color.HiRedString("%s", s)
	default:
		return color.HiYellowString("%s", s)
	}
}
