package timetable

// CardPosition says where a session's detail card renders relative to its box.
type CardPosition int

const (
	CardRight CardPosition = iota
	CardLeft
	CardCenter // directly below, horizontally centered; grid views only
)

// String returns the position name for templates and JSON.
func (p CardPosition) String() string {
	switch p {
	case CardLeft:
		return "left"
	case CardCenter:
		return "center"
	default:
		return "right"
	}
}

// Minimum horizontal space a card needs beside its box, in pixels.
const (
	GridCardSpace  = 250.0 // day/week views
	MonthCardSpace = 300.0 // month view
)

// SideSpace is the free horizontal viewport space on each side of a session
// box, measured at pointer-enter time.
type SideSpace struct {
	Left  float64
	Right float64
}

// CardPositionFor picks the detail card position from available space.
// Recomputed on every pointer-enter: viewport and scroll state may have
// changed since the last hover.
//
// Grid views: center when the day has a single column or neither side fits
// a card; else left when the right side is too narrow; else right.
// Month view: left when the right side is too narrow, else right. The month
// view stacks sessions full-width, so center is never needed there.
// PRE: columnCount >= 1 for grid views
// POST: returns one of CardLeft, CardRight, CardCenter; CardCenter only for
// grid views
func CardPositionFor(view View, space SideSpace, columnCount int) CardPosition {
	if view == ViewMonth {
		if space.Right < MonthCardSpace {
			return CardLeft
		}
		return CardRight
	}
	if columnCount == 1 || (space.Left < GridCardSpace && space.Right < GridCardSpace) {
		return CardCenter
	}
	if space.Right < GridCardSpace {
		return CardLeft
	}
	return CardRight
}

// Interaction is the singleton hover/selection state for one calendar view.
// At most one session is hovered and at most one is selected at a time; the
// two are independent, so a hovered card and a click-pinned card can be
// visible simultaneously. The owning view is the only writer.
type Interaction struct {
	HoveredID     string // "" when nothing is hovered
	SelectedID    string // "" when nothing is pinned
	HoverPosition CardPosition
}

// PointerEnter records a hover over the given session and computes where its
// card should render.
// PRE: id is non-empty and unique within the rendered batch
// POST: HoveredID == id; HoverPosition reflects the current viewport space
func (in *Interaction) PointerEnter(id string, view View, space SideSpace, columnCount int) {
	in.HoveredID = id
	in.HoverPosition = CardPositionFor(view, space, columnCount)
}

// PointerLeave clears the hover, unless the session is the selected one:
// selection pins the card open regardless of hover state.
// PRE: none
// POST: HoveredID is "" iff id was hovered and not selected
func (in *Interaction) PointerLeave(id string) {
	if in.HoveredID != id {
		return
	}
	if in.SelectedID == id {
		return
	}
	in.HoveredID = ""
}

// Click toggles selection of the given session. Selecting does not clear the
// hover state.
// PRE: none
// POST: SelectedID == id, or "" if id was already selected
func (in *Interaction) Click(id string) {
	if in.SelectedID == id {
		in.SelectedID = ""
		return
	}
	in.SelectedID = id
}

// Close dismisses the session's card entirely, clearing both hover and
// selection. A close affordance that left a click-pinned card open would be
// a dead button, so close always fully dismisses.
// PRE: none
// POST: neither HoveredID nor SelectedID equals id
func (in *Interaction) Close(id string) {
	if in.HoveredID == id {
		in.HoveredID = ""
	}
	if in.SelectedID == id {
		in.SelectedID = ""
	}
}

// Reset clears all interaction state. Called whenever the displayed date,
// the view mode, or the underlying session list changes, so a stale card
// never points at a session no longer rendered.
func (in *Interaction) Reset() {
	in.HoveredID = ""
	in.SelectedID = ""
	in.HoverPosition = CardRight
}

// CardVisible reports whether the given session's detail card should render.
// PRE: none
// POST: true iff the session is hovered or selected
func (in *Interaction) CardVisible(id string) bool {
	return id != "" && (in.HoveredID == id || in.SelectedID == id)
}
