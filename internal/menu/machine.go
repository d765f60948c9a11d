package menu

import (
	"github.com/sweeney/temp-regulator/internal/logic"
	"github.com/sweeney/temp-regulator/internal/settings"
)

// Machine owns the navigation state and applies button presses to the store.
// It is not safe for concurrent use; the main loop owns it.
type Machine struct {
	store *settings.Store
	view  View

	passwordSet   bool // the stored code has been committed since its last edit
	passwordInUse bool // the committed code differs from the default
	access        bool // the menu may be entered without a code
	reevaluate    bool
}

// New creates a machine in the Boot view editing store.
func New(store *settings.Store) *Machine {
	return &Machine{store: store, view: Boot{}}
}

// View returns the current navigation state.
func (m *Machine) View() View { return m.view }

// Mode returns the current display mode.
func (m *Machine) Mode() DisplayMode { return m.view.Mode() }

// Access reports whether the menu can be entered without a code.
func (m *Machine) Access() bool { return m.access }

// PasswordSet reports whether a code has been committed.
func (m *Machine) PasswordSet() bool { return m.passwordSet }

// PasswordInUse reports whether the committed code protects the menu.
func (m *Machine) PasswordInUse() bool { return m.passwordInUse }

// TakeReevaluate reports and clears the request, raised on leaving the menu,
// to run the control engine on the next reading regardless of movement.
func (m *Machine) TakeReevaluate() bool {
	r := m.reevaluate
	m.reevaluate = false
	return r
}

// PressMode applies the edge-triggered mode button. locked is the engine's
// current actuator lock.
func (m *Machine) PressMode(locked bool) Result {
	switch m.view.(type) {
	case Boot:
		m.view = SetPassword{}
	case Running:
		if m.store.LockEnabled() && locked {
			return Refused
		}
		if m.access {
			m.view = Categories{Category: CategoryVariables}
		} else {
			m.view = EnterPassword{Entry: settings.DefaultPassword}
		}
	case Categories, Items:
		m.access = !m.passwordInUse
		m.view = Running{}
		m.reevaluate = true
	case SetPassword:
		if !m.passwordSet {
			return Unchanged
		}
		m.view = Running{}
	case EnterPassword:
		m.view = Running{}
	default:
		return Unchanged
	}
	return Changed
}

// Press applies one poll-sampled button and reports whether anything changed.
func (m *Machine) Press(b Button) bool {
	switch v := m.view.(type) {
	case Categories:
		return m.pressCategories(v, b)
	case Items:
		return m.pressItems(v, b)
	case SetPassword:
		return m.pressSetPassword(v, b)
	case EnterPassword:
		return m.pressEnterPassword(v, b)
	}
	return false
}

func (m *Machine) pressCategories(v Categories, b Button) bool {
	switch b {
	case ButtonNext:
		m.view = Categories{Category: (v.Category + 1) % CategoryCount}
	case ButtonSelect:
		items := Items{Category: v.Category}
		if v.Category == CategoryModes {
			items.Index = uint8(m.store.Mode)
		}
		m.view = items
	default:
		return false
	}
	return true
}

func (m *Machine) pressItems(v Items, b Button) bool {
	if v.Editing {
		switch b {
		case ButtonNext:
			m.adjust(v, true)
		case ButtonSelect:
			m.adjust(v, false)
		case ButtonBack:
			v.Editing = false
			m.view = v
		}
		return true
	}

	switch b {
	case ButtonNext:
		v.Index = (v.Index + 1) % v.Category.ItemCount()
		if v.Category == CategoryModes {
			m.store.Mode = logic.Mode(v.Index)
		}
	case ButtonSelect:
		if v.Category == CategoryModes {
			return false
		}
		v.Editing = true
	case ButtonBack:
		m.view = Categories{Category: v.Category}
		return true
	}
	m.view = v
	return true
}

func (m *Machine) adjust(v Items, up bool) {
	switch v.Category {
	case CategoryVariables:
		if up {
			m.store.IncrementVariable(int(v.Index))
		} else {
			m.store.DecrementVariable(int(v.Index))
		}
	case CategoryAlarms:
		if up {
			m.store.IncrementAlarm(int(v.Index))
		} else {
			m.store.DecrementAlarm(int(v.Index))
		}
	}
}

func (m *Machine) pressSetPassword(v SetPassword, b Button) bool {
	if v.Editing {
		switch b {
		case ButtonNext:
			m.store.Password.IncrementDigit(int(v.Slot))
			m.passwordSet = false
		case ButtonSelect:
			m.store.Password.DecrementDigit(int(v.Slot))
			m.passwordSet = false
		case ButtonBack:
			v.Editing = false
			m.view = v
		}
		return true
	}

	switch b {
	case ButtonNext:
		v.Slot = (v.Slot + 1) % slotCount
	case ButtonSelect:
		if v.Slot == OKSlot {
			m.commitPassword()
			return true
		}
		v.Editing = true
	default:
		return false
	}
	m.view = v
	return true
}

func (m *Machine) commitPassword() {
	m.passwordSet = true
	m.passwordInUse = m.store.Password != settings.DefaultPassword
	m.access = !m.passwordInUse
}

func (m *Machine) pressEnterPassword(v EnterPassword, b Button) bool {
	if v.Failed {
		return false
	}

	if v.Editing {
		switch b {
		case ButtonNext:
			v.Entry.IncrementDigit(int(v.Slot))
		case ButtonSelect:
			v.Entry.DecrementDigit(int(v.Slot))
		case ButtonBack:
			v.Editing = false
		}
		m.view = v
		return true
	}

	switch b {
	case ButtonNext:
		v.Slot = (v.Slot + 1) % slotCount
	case ButtonSelect:
		if v.Slot == OKSlot {
			m.verify(v.Entry)
			return true
		}
		v.Editing = true
	default:
		return false
	}
	m.view = v
	return true
}

func (m *Machine) verify(entry settings.Password) {
	if entry == m.store.Password {
		m.access = true
		m.view = Categories{Category: CategoryVariables}
		return
	}
	m.access = false
	m.view = EnterPassword{Entry: settings.DefaultPassword, Failed: true}
}
