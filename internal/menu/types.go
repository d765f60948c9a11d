// Package menu implements the button-driven navigation of the regulator:
// display modes, menu categories, item selection, value editing and the
// password set/verify screens.
//
// The navigation state is a View, a closed set of variant types. Each variant
// carries only the fields meaningful in that state, so combinations such as
// "editing with no sub-menu open" cannot be represented.
package menu

import "github.com/sweeney/temp-regulator/internal/settings"

// DisplayMode is the coarse screen the device is showing.
type DisplayMode uint8

const (
	ModeBoot DisplayMode = iota
	ModeRunning
	ModeMenu
	ModeSetPassword
	ModeEnterPassword
)

func (m DisplayMode) String() string {
	switch m {
	case ModeBoot:
		return "Boot"
	case ModeRunning:
		return "Running"
	case ModeMenu:
		return "Menu"
	case ModeSetPassword:
		return "SetPassword"
	case ModeEnterPassword:
		return "EnterPassword"
	default:
		return "Unknown"
	}
}

// Category is a top-level menu entry.
type Category uint8

const (
	CategoryVariables Category = iota
	CategoryModes
	CategoryAlarms
)

// CategoryCount is the number of menu categories.
const CategoryCount = 3

func (c Category) String() string {
	switch c {
	case CategoryVariables:
		return "Variables"
	case CategoryModes:
		return "Modes"
	case CategoryAlarms:
		return "Alarms"
	default:
		return "Unknown"
	}
}

// ItemCount returns how many entries the category's sub-menu holds.
func (c Category) ItemCount() uint8 {
	switch c {
	case CategoryVariables:
		return settings.VariableCount
	case CategoryModes:
		return 3
	case CategoryAlarms:
		return settings.AlarmCount
	default:
		return 1
	}
}

// Button is one of the three level-sampled keys.
type Button uint8

const (
	ButtonNext Button = iota
	ButtonSelect
	ButtonBack
)

func (b Button) String() string {
	switch b {
	case ButtonNext:
		return "next"
	case ButtonSelect:
		return "select"
	case ButtonBack:
		return "back"
	default:
		return "unknown"
	}
}

// OKSlot is the password cursor position after the last digit.
// Select on it commits (set) or verifies (enter) the code.
const OKSlot = settings.PasswordLength

const slotCount = OKSlot + 1

// View is the navigation state. The concrete type is one of Boot, Running,
// Categories, Items, SetPassword or EnterPassword.
type View interface {
	Mode() DisplayMode
	isView()
}

// Boot is the splash screen shown at power-on.
type Boot struct{}

// Running shows the live temperature and control mode.
type Running struct{}

// Categories browses the top-level menu with no sub-menu open.
type Categories struct {
	Category Category
}

// Items has a category's sub-menu open. Editing means the selected
// item's value is being adjusted rather than browsed.
type Items struct {
	Category Category
	Index    uint8
	Editing  bool
}

// SetPassword edits the stored code in place.
type SetPassword struct {
	Slot    uint8
	Editing bool
}

// EnterPassword collects a code to verify against the stored one.
// Failed shows the incorrect-password screen until the mode button dismisses it.
type EnterPassword struct {
	Entry   settings.Password
	Slot    uint8
	Editing bool
	Failed  bool
}

func (Boot) Mode() DisplayMode          { return ModeBoot }
func (Running) Mode() DisplayMode       { return ModeRunning }
func (Categories) Mode() DisplayMode    { return ModeMenu }
func (Items) Mode() DisplayMode         { return ModeMenu }
func (SetPassword) Mode() DisplayMode   { return ModeSetPassword }
func (EnterPassword) Mode() DisplayMode { return ModeEnterPassword }

func (Boot) isView()          {}
func (Running) isView()       {}
func (Categories) isView()    {}
func (Items) isView()         {}
func (SetPassword) isView()   {}
func (EnterPassword) isView() {}

// Result describes what a mode-button press did.
type Result uint8

const (
	Unchanged Result = iota
	Changed
	Refused // menu entry blocked by the actuator lock
)
