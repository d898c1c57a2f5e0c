package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/ggplot"
)

// Styles
var (
	accentFg = lipgloss.Color("#7C3AED")
	okFg     = lipgloss.Color("#16A34A")
	dimFg    = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
)

// printer formats numbers with digit grouping.
var printer = message.NewPrinter(language.English)

// styles are bound to one writer so that color is only emitted to a
// terminal.
type styles struct {
	title, ok, dim, cell lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Foreground(accentFg).Bold(true),
		ok:    r.NewStyle().Foreground(okFg),
		dim:   r.NewStyle().Foreground(dimFg),
		cell:  r.NewStyle().PaddingRight(2),
	}
}

// printRendered reports a written image.
func printRendered(w io.Writer, req *ggplot.Request, output string, width, height int) {
	st := newStyles(w)
	series := len(req.Series())
	fmt.Fprintln(w, st.ok.Render("rendered"),
		printer.Sprintf("%d points in %d series", req.Points(), series),
		st.title.Render(output),
		st.dim.Render(fmt.Sprintf("(%dx%d)", width, height)))
}

// backendRow is one line of the backends table.
type backendRow struct {
	name      string
	priority  int
	available bool
}

// printBackends prints the backends in priority order.
func printBackends(w io.Writer, rows []backendRow) {
	st := newStyles(w)

	nameW := len("BACKEND")
	for _, r := range rows {
		nameW = max(nameW, len(r.name))
	}
	name := st.cell.Width(nameW + 2)
	prio := st.cell.Width(len("PRIORITY") + 2)

	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top,
		st.title.Inherit(name).Render("BACKEND"),
		st.title.Inherit(prio).Render("PRIORITY"),
		st.title.Render("STATUS")))

	for _, r := range rows {
		status := st.dim.Render("unavailable")
		if r.available {
			status = st.ok.Render("available")
		}
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top,
			name.Render(r.name),
			prio.Render(printer.Sprint(r.priority)),
			status))
	}
}
