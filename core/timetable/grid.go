package timetable

import (
	"iter"
	"slices"
	"sort"
)

// Axes are the ordered days and time slots a Grid is laid out on.
// catalog.Catalog satisfies it.
type Axes interface {
	Days() []string
	Slots() []string // sorted by start time
}

// Cell is a (day, slot) coordinate.
type Cell struct {
	Day  string `json:"day"`
	Slot string `json:"slot"`
}

// Grid maps each cell to at most one Lecture, for a single Owner.
//
// The axes only drive iteration: removing a day or slot from them leaves the
// lectures in place, still reachable by ID, and visible again once the label is restored.
// A Grid is not safe for concurrent use.
type Grid struct {
	owner Owner
	axes  Axes
	cells map[Cell]Lecture
	index map[string]Cell // lecture ID -> cell
}

func NewGrid(owner Owner, axes Axes) *Grid {
	return &Grid{
		owner: owner,
		axes:  axes,
		cells: make(map[Cell]Lecture),
		index: make(map[string]Cell),
	}
}

func (g *Grid) Owner() Owner { return g.owner }

func (g *Grid) SetAxes(axes Axes) { g.axes = axes }

func (g *Grid) days() []string {
	if g.axes == nil {
		return nil
	}
	return g.axes.Days()
}

func (g *Grid) slots() []string {
	if g.axes == nil {
		return nil
	}
	return g.axes.Slots()
}

// Len returns the number of lectures held, orphans included.
func (g *Grid) Len() int {
	return len(g.index)
}

// Upsert stores l in its cell. The cell must be empty or already hold l.ID (an edit).
// Editing a lecture into another cell vacates its previous one.
// Returns a *SlotConflictError, leaving the grid unchanged, if another lecture holds the cell,
// and ErrMissingID if l has no ID.
func (g *Grid) Upsert(l Lecture) error {
	if l.ID == "" {
		return ErrMissingID
	}
	cell := l.Cell()
	if occupant, ok := g.cells[cell]; ok && occupant.ID != l.ID {
		return &SlotConflictError{Day: cell.Day, Slot: cell.Slot, OccupantID: occupant.ID, LectureID: l.ID}
	}
	if prev, ok := g.index[l.ID]; ok && prev != cell {
		delete(g.cells, prev)
	}
	g.cells[cell] = l
	g.index[l.ID] = cell
	return nil
}

// Remove deletes the lecture with the given ID and reports whether it was there.
func (g *Grid) Remove(id string) bool {
	cell, ok := g.index[id]
	if !ok {
		return false
	}
	delete(g.cells, cell)
	delete(g.index, id)
	return true
}

// CellAt returns the lecture at (day, slot), whether or not the labels are on the axes.
func (g *Grid) CellAt(day, slot string) (Lecture, bool) {
	l, ok := g.cells[Cell{Day: day, Slot: slot}]
	return l, ok
}

func (g *Grid) EntryByID(id string) (Lecture, bool) {
	cell, ok := g.index[id]
	if !ok {
		return Lecture{}, false
	}
	return g.cells[cell], true
}

// EntriesForDay yields the lectures of day in time axis order.
// Nothing is yielded when day is not on the axes; lectures in slots missing from the axes are skipped.
// Every iteration reads the grid afresh.
func (g *Grid) EntriesForDay(day string) iter.Seq[Lecture] {
	return func(yield func(Lecture) bool) {
		if !slices.Contains(g.days(), day) {
			return
		}
		for _, slot := range g.slots() {
			if l, ok := g.cells[Cell{Day: day, Slot: slot}]; ok {
				if !yield(l) {
					return
				}
			}
		}
	}
}

// Orphans returns the lectures unreachable through the axes, ordered by ID.
func (g *Grid) Orphans() []Lecture {
	days, slots := g.days(), g.slots()
	orphans := make([]Lecture, 0)
	for cell, l := range g.cells {
		if !slices.Contains(days, cell.Day) || !slices.Contains(slots, cell.Slot) {
			orphans = append(orphans, l)
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i].ID < orphans[j].ID })
	return orphans
}

type (
	// Row is one time slot of the rendered grid, with a cell per day (nil when empty).
	Row struct {
		Slot  string     `json:"slot"`
		Cells []*Lecture `json:"cells"`
	}

	View struct {
		Owner Owner    `json:"owner"`
		Days  []string `json:"days"`
		Slots []string `json:"slots"`
		Rows  []Row    `json:"rows"`
	}
)

// Rows lays the grid out slot by slot, one column per day.
func (g *Grid) Rows() []Row {
	days := g.days()
	slots := g.slots()
	rows := make([]Row, 0, len(slots))
	for _, slot := range slots {
		row := Row{Slot: slot, Cells: make([]*Lecture, len(days))}
		for i, day := range days {
			if l, ok := g.cells[Cell{Day: day, Slot: slot}]; ok {
				row.Cells[i] = &l
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func (g *Grid) View() View {
	days, slots := g.days(), g.slots()
	if days == nil {
		days = []string{}
	}
	if slots == nil {
		slots = []string{}
	}
	return View{Owner: g.owner, Days: days, Slots: slots, Rows: g.Rows()}
}
