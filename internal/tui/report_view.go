package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/scrapeview/internal/pagination"
	"github.com/rshade/scrapeview/internal/records"
)

// Table column widths.
const (
	colWidthNo     = 6
	colWidthDate   = 20
	colWidthStatus = 13
	colWidthName   = 40
	colWidthAction = 8

	nameTruncateLen = colWidthName - 3
	dateDisplay     = "2006-01-02 15:04:05"
	actionLabel     = "Action"
)

// column is one table header. Key is empty for columns without a sort control.
type column struct {
	Label string
	Width int
	Key   pagination.SortKey
}

//nolint:gochecknoglobals // Fixed column layout.
var columns = []column{
	{Label: "No", Width: colWidthNo},
	{Label: "Date and Time", Width: colWidthDate, Key: pagination.SortByDateTime},
	{Label: "Scrape Status", Width: colWidthStatus, Key: pagination.SortByStatus},
	{Label: "File Name", Width: colWidthName, Key: pagination.SortByFileName},
	{Label: actionLabel, Width: colWidthAction},
}

// Shared styles.
//
//nolint:gochecknoglobals // Styles are immutable after initialization.
var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
	headerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
)

// View renders the current view.
func (m *ReportTableModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	parts := []string{
		titleStyle.Render(m.category.Title),
		headerStyle.Render(RenderHeader(m.table.Sort())),
		m.renderBody(),
		RenderFooter(m.table),
	}
	if m.state == ViewStateFilter {
		parts = append(parts, "Date filter: "+m.textInput.View())
	}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts,
		"[1/2/3] Sort  [←→] Page  [+/-] Rows  [↑↓] Select  [Enter] View PDF  [/] Date  [q] Quit")

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *ReportTableModel) renderBody() string {
	window := m.table.Visible()
	// A page past the data reports more padding than one page can hold.
	blank := min(window.EmptyRows, max(0, m.table.RowsPerPage()-len(window.Rows)))
	lines := make([]string, 0, len(window.Rows)+blank)
	for i, rec := range window.Rows {
		line := RenderRow(m.table.RowNumber(i), rec)
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	for range blank {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// RenderHeader renders the column headers, marking the active sort column
// with ▲ (ascending) or ▼ (descending).
func RenderHeader(spec pagination.SortSpec) string {
	cells := make([]string, len(columns))
	for i, c := range columns {
		cells[i] = pad(headerLabel(c, spec), c.Width)
	}
	return strings.Join(cells, "  ")
}

// RenderHeaderCells renders the data column headers tab-separated, for
// tabwriter output. The Action column is omitted.
func RenderHeaderCells(spec pagination.SortSpec) string {
	cells := make([]string, 0, len(columns))
	for _, c := range columns {
		if c.Label == actionLabel {
			continue
		}
		cells = append(cells, headerLabel(c, spec))
	}
	return strings.Join(cells, "\t")
}

func headerLabel(c column, spec pagination.SortSpec) string {
	if c.Key == "" || c.Key != spec.OrderBy {
		return c.Label
	}
	if spec.Order == pagination.OrderDesc {
		return c.Label + " ▼"
	}
	return c.Label + " ▲"
}

// RenderRow renders one record with its display number.
func RenderRow(number int, rec records.Record) string {
	name := rec.FileName
	if len(name) > colWidthName {
		name = name[:nameTruncateLen] + "..."
	}
	cells := []string{
		fmt.Sprintf("%*d", colWidthNo, number),
		pad(FormatDateTime(rec.DateTime), colWidthDate),
		pad(FormatStatus(rec.Status), colWidthStatus),
		pad(name, colWidthName),
		pad("View PDF", colWidthAction),
	}
	return strings.Join(cells, "  ")
}

// RenderFooter renders the page-size and displayed-rows summary.
func RenderFooter(table *pagination.Table) string {
	return fmt.Sprintf("Rows per page: %d    %s", table.RowsPerPage(), table.Meta().Label())
}

// FormatDateTime renders a timestamp in local time, or "-" when missing.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateDisplay)
}

// FormatStatus renders the scrape status as Yes/No.
func FormatStatus(ok bool) string {
	if ok {
		return "Yes"
	}
	return "No"
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
