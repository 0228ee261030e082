package tui

// ViewState is the top-level state of an interactive view.
type ViewState int

const (
	// ViewStateList shows the table.
	ViewStateList ViewState = iota
	// ViewStateFilter shows the date filter input below the table.
	ViewStateFilter
	// ViewStateQuitting is entered on quit; View renders nothing.
	ViewStateQuitting
)

// Key bindings.
const (
	keyQuit      = "q"
	keyCtrlC     = "ctrl+c"
	keyEnter     = "enter"
	keyEsc       = "esc"
	keySlash     = "/"
	keyUp        = "up"
	keyDown      = "down"
	keyK         = "k"
	keyJ         = "j"
	keyLeft      = "left"
	keyRight     = "right"
	keyH         = "h"
	keyL         = "l"
	keyPlus      = "+"
	keyMinus     = "-"
	keySortDate  = "1"
	keySortState = "2"
	keySortName  = "3"
)

const (
	defaultWidth         = 120
	defaultHeight        = 30
	filterInputCharLimit = 10
	filterInputWidth     = 12
)
