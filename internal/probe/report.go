package probe

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/okian/sisu/internal/domain/model"
	"github.com/okian/sisu/internal/domain/present"
)

const maxListedViolations = 20

// WriteSummary renders the run statistics and the first violations.
func WriteSummary(out io.Writer, s *Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"run id", s.RunID},
		{"seed", s.Seed},
		{"requests", s.Requests},
		{"succeeded", s.Succeeded},
		{"failed", s.Failed},
		{"empty results", s.Empty},
		{"violations", len(s.Violations)},
		{"duration", s.Duration.Round(time.Millisecond).String()},
	})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()

	if len(s.Violations) == 0 {
		return
	}
	v := table.NewWriter()
	v.SetOutputMirror(out)
	v.SetStyle(table.StyleLight)
	v.AppendHeader(table.Row{"Rule", "Selection", "Detail"})
	for i, viol := range s.Violations {
		if i == maxListedViolations {
			v.AppendFooter(table.Row{"", "", fmt.Sprintf("%d more", len(s.Violations)-i)})
			break
		}
		v.AppendRow(table.Row{viol.Rule, describe(viol.Selection), viol.Detail})
	}
	v.SetColumnConfigs([]table.ColumnConfig{{Number: 3, WidthMax: 60}})
	v.Render()
}

// WriteUpdate renders the count label and one table per chart.
func WriteUpdate(out io.Writer, resp Response) {
	_, _ = fmt.Fprintln(out, resp.CountLabel)
	for _, c := range resp.Charts {
		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetStyle(table.StyleLight)
		t.SetTitle(c.Title)
		t.AppendHeader(table.Row{c.XTitle, c.YTitle})
		for _, p := range c.Points {
			t.AppendRow(table.Row{p.Label, present.HoverValue(p.Hover)})
		}
		if c.Empty() {
			t.AppendRow(table.Row{"-", "-"})
		}
		t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
		t.Render()
	}
}

func describe(sel model.Selection) string {
	parts := make([]string, 0, len(model.Facets()))
	for _, f := range model.Facets() {
		parts = append(parts, string(f)+"="+strings.Join(sel.Get(f), "|"))
	}
	return strings.Join(parts, " ")
}
