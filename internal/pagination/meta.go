package pagination

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats counts with thousands separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Meta contains display metadata about the current page.
type Meta struct {
	// From is the 1-based index of the first row on the page, 0 when empty.
	From        int  `json:"from"         yaml:"from"`
	To          int  `json:"to"           yaml:"to"`
	Total       int  `json:"total"        yaml:"total"`
	Page        int  `json:"page"         yaml:"page"`
	RowsPerPage int  `json:"rows_per_page" yaml:"rows_per_page"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewMeta computes page metadata for total rows under page.
// From is greater than To when page lies beyond the data.
func NewMeta(page PageSpec, total int) Meta {
	m := Meta{
		Total:       total,
		Page:        page.Page,
		RowsPerPage: page.RowsPerPage,
		HasPrevious: page.Page > 0,
	}
	if page.RowsPerPage <= 0 {
		return m
	}

	m.TotalPages = (total + page.RowsPerPage - 1) / page.RowsPerPage
	m.HasNext = page.Page < m.TotalPages-1
	if total > 0 {
		m.From = page.Offset()
		if m.From < math.MaxInt {
			m.From++
		}
	}
	m.To = min(total, page.End())
	return m
}

// Label renders the displayed-rows label, e.g. "11–12 of 1,234".
func (m Meta) Label() string {
	return printer.Sprintf("%d–%d of %d", m.From, m.To, m.Total)
}
