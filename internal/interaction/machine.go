// Package interaction tracks hover and sticky selection over chart elements.
package interaction

// Kind is the coarse state of a chart's interaction machine.
type Kind int

const (
	Idle Kind = iota
	Hovering
	Selected
)

func (k Kind) String() string {
	switch k {
	case Hovering:
		return "hovering"
	case Selected:
		return "selected"
	default:
		return "idle"
	}
}

// Hover identifies the element under the pointer.
type Hover struct {
	Index int
	Label string
}

// State is a snapshot of a machine. Hover is transient and Selection is
// sticky, so a chart can be hovering while a selection is kept.
type State struct {
	Hover     *Hover
	Selection string
}

// Kind returns the coarse state.
func (s State) Kind() Kind {
	switch {
	case s.Hover != nil:
		return Hovering
	case s.Selection != "":
		return Selected
	default:
		return Idle
	}
}

// Equal reports whether two snapshots describe the same state.
func (s State) Equal(o State) bool {
	if s.Selection != o.Selection {
		return false
	}
	if s.Hover == nil || o.Hover == nil {
		return s.Hover == nil && o.Hover == nil
	}
	return *s.Hover == *o.Hover
}

// Machine is the interaction state of one chart instance.
//
// Hover handling depends on the ownership chosen at construction. With
// Internal ownership the machine keeps its own hover; with External
// ownership pointer events are forwarded to the shared crosshair and the
// machine never enters Hovering on its own.
type Machine struct {
	owner Ownership

	hover     *Hover
	prior     *Hover
	selection string
}

// NewMachine returns an idle machine. A nil ownership means Internal.
func NewMachine(owner Ownership) *Machine {
	if owner == nil {
		owner = Internal{}
	}
	return &Machine{owner: owner}
}

// Ownership returns how the machine's hover is owned.
func (m *Machine) Ownership() Ownership {
	return m.owner
}

// Enter records that the pointer entered element index.
func (m *Machine) Enter(index int, label string) {
	if ext, ok := m.owner.(External); ok {
		ext.Crosshair.Set(index)
		return
	}
	m.prior = m.hover
	m.hover = &Hover{Index: index, Label: label}
}

// Leave records that the pointer left the element it last entered,
// restoring the state the machine had before that Enter.
func (m *Machine) Leave() {
	if ext, ok := m.owner.(External); ok {
		ext.Crosshair.Clear()
		return
	}
	m.hover = m.prior
	m.prior = nil
}

// Move tracks a pointer that moved onto element index, or off every element
// when ok is false. It emits the Leave/Enter pair a pointer crossing from
// one element to another would produce.
func (m *Machine) Move(index int, label string, ok bool) {
	cur, hovering := m.HoverIndex()
	if ok && hovering && cur == index {
		return
	}
	if hovering {
		m.Leave()
	}
	if ok {
		m.Enter(index, label)
	}
}

// Click toggles the sticky selection: clicking the selected label clears it,
// clicking any other label selects it.
func (m *Machine) Click(label string) {
	if m.selection == label {
		m.selection = ""
		return
	}
	m.selection = label
}

// Select sets the sticky selection without toggling. An empty label clears.
func (m *Machine) Select(label string) {
	m.selection = label
}

// State returns a snapshot of the machine. With external ownership the
// hover part mirrors the shared crosshair.
func (m *Machine) State() State {
	s := State{Selection: m.selection}
	if i, ok := m.HoverIndex(); ok {
		h := Hover{Index: i}
		if m.hover != nil {
			h.Label = m.hover.Label
		}
		s.Hover = &h
	}
	return s
}

// HoverIndex returns the highlighted element index.
func (m *Machine) HoverIndex() (int, bool) {
	if ext, ok := m.owner.(External); ok {
		return ext.Crosshair.Index()
	}
	if m.hover == nil {
		return 0, false
	}
	return m.hover.Index, true
}

// HoverLabel returns the label of the hovered element, if any.
func (m *Machine) HoverLabel() string {
	if _, ok := m.owner.(External); ok || m.hover == nil {
		return ""
	}
	return m.hover.Label
}

// Selection returns the sticky selection, or "" when none.
func (m *Machine) Selection() string {
	return m.selection
}
