package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/scrapeview/internal/logging"
	"github.com/rshade/scrapeview/internal/pagination"
	"github.com/rshade/scrapeview/internal/records"
	"github.com/rshade/scrapeview/internal/viewer"
)

// navigatedMsg reports the outcome of opening a record.
type navigatedMsg struct {
	target viewer.Target
	err    error
}

// ReportTableModel is the Bubble Tea model for the interactive report table.
type ReportTableModel struct {
	ctx      context.Context
	table    *pagination.Table
	category records.Category

	navigator    viewer.Navigator
	downloadHost string

	state     ViewState
	textInput textinput.Model
	selected  int
	status    string

	width  int
	height int
}

// NewReportTableModel creates a model over a mounted table. navigator
// receives targets of opened records; downloadHost may be empty.
func NewReportTableModel(
	ctx context.Context,
	table *pagination.Table,
	category records.Category,
	navigator viewer.Navigator,
	downloadHost string,
) *ReportTableModel {
	return &ReportTableModel{
		ctx:          ctx,
		table:        table,
		category:     category,
		navigator:    navigator,
		downloadHost: downloadHost,
		state:        ViewStateList,
		textInput:    newFilterInput(),
		width:        defaultWidth,
		height:       defaultHeight,
	}
}

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth
	return ti
}

// Init initializes the model.
func (m *ReportTableModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *ReportTableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case navigatedMsg:
		if msg.err != nil {
			m.status = "Open failed: " + msg.err.Error()
		} else {
			m.status = "Opened " + msg.target.Route
		}
		return m, nil
	}

	switch m.state {
	case ViewStateFilter:
		return m.handleFilterInput(msg)
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateQuitting:
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m *ReportTableModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keySortDate:
		m.requestSort(pagination.SortByDateTime)
	case keySortState:
		m.requestSort(pagination.SortByStatus)
	case keySortName:
		m.requestSort(pagination.SortByFileName)
	case keyRight, keyL:
		if m.table.Meta().HasNext {
			m.changePage(m.table.Page() + 1)
		}
	case keyLeft, keyH:
		if m.table.Page() > 0 {
			m.changePage(m.table.Page() - 1)
		}
	case keyPlus:
		m.stepRowsPerPage(1)
	case keyMinus:
		m.stepRowsPerPage(-1)
	case keyUp, keyK:
		if m.selected > 0 {
			m.selected--
		}
	case keyDown, keyJ:
		if m.selected < len(m.table.Visible().Rows)-1 {
			m.selected++
		}
	case keyEnter:
		return m, m.openSelected()
	case keySlash:
		m.state = ViewStateFilter
		m.textInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *ReportTableModel) handleFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			m.state = ViewStateList
			m.textInput.Blur()
			return m, nil
		case keyEnter:
			m.applyFilter()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// applyFilter parses the filter input and hands the date to the table.
// An empty input clears the filter.
func (m *ReportTableModel) applyFilter() {
	date, err := records.ParseFilterDate(m.textInput.Value())
	if err != nil {
		m.status = fmt.Sprintf("Invalid date %q: use YYYY-MM-DD", m.textInput.Value())
		return
	}
	m.state = ViewStateList
	m.textInput.Blur()
	m.table.SetFilterDate(m.ctx, date)
	m.clampSelection()
	if date.IsZero() {
		m.status = "Date filter cleared"
	} else {
		m.status = "Filtered to " + date.Format("2006-01-02")
	}
}

func (m *ReportTableModel) requestSort(key pagination.SortKey) {
	if err := m.table.RequestSort(m.ctx, key); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}

func (m *ReportTableModel) changePage(page int) {
	if err := m.table.ChangePage(m.ctx, page); err != nil {
		m.status = err.Error()
		return
	}
	m.selected = 0
	m.status = ""
}

// stepRowsPerPage moves to the neighbouring option in RowsPerPageOptions.
func (m *ReportTableModel) stepRowsPerPage(delta int) {
	options := pagination.RowsPerPageOptions
	idx := slices.Index(options, m.table.RowsPerPage()) + delta
	if idx < 0 || idx >= len(options) {
		return
	}
	if err := m.table.ChangeRowsPerPage(m.ctx, options[idx]); err != nil {
		m.status = err.Error()
		return
	}
	m.selected = 0
	m.status = ""
}

func (m *ReportTableModel) clampSelection() {
	n := len(m.table.Visible().Rows)
	if m.selected >= n {
		m.selected = max(0, n-1)
	}
}

// openSelected builds the target of the selected record and returns a
// command that hands it to the navigator.
func (m *ReportTableModel) openSelected() tea.Cmd {
	rec, ok := m.SelectedRecord()
	if !ok {
		return nil
	}
	target := viewer.BuildTarget(m.downloadHost, m.category, rec)
	ctx := m.ctx
	nav := m.navigator
	return func() tea.Msg {
		if nav == nil {
			return navigatedMsg{target: target, err: errors.New("no viewer configured")}
		}
		err := nav.Navigate(ctx, target)
		if err != nil {
			logger := logging.FromContext(ctx)
			logger.Warn().
				Str("component", "tui").
				Str("route", target.Route).
				Err(err).
				Msg("navigation failed")
		}
		return navigatedMsg{target: target, err: err}
	}
}

// SelectedRecord returns the highlighted record of the visible window.
func (m *ReportTableModel) SelectedRecord() (records.Record, bool) {
	rows := m.table.Visible().Rows
	if m.selected < 0 || m.selected >= len(rows) {
		return records.Record{}, false
	}
	return rows[m.selected], true
}

// Table returns the underlying table state.
func (m *ReportTableModel) Table() *pagination.Table {
	return m.table
}
