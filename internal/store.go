package internal

import "golang.org/x/exp/maps"

// Cell is a single spreadsheet cell: its content plus the two edge sets
// that make up the dependency graph.
type Cell struct {
	ID           Coordinate
	Content      Content
	DependsOn    *orderedSet
	DependedOnBy *orderedSet
}

func newCell(id Coordinate, content Content) *Cell {
	return &Cell{
		ID:           id,
		Content:      content,
		DependsOn:    newOrderedSet(),
		DependedOnBy: newOrderedSet(),
	}
}

// Store is the spreadsheet's keyed container of cells. Iteration order is
// insertion order; Go map iteration order is unspecified, so an explicit
// order slice tracks insertion alongside the map.
type Store struct {
	cells map[Coordinate]*Cell
	order []Coordinate
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{cells: make(map[Coordinate]*Cell)}
}

// Get returns the cell at coord, or nil if absent.
func (s *Store) Get(coord Coordinate) *Cell {
	return s.cells[coord]
}

// Contains reports whether a cell exists at coord.
func (s *Store) Contains(coord Coordinate) bool {
	_, ok := s.cells[coord]
	return ok
}

// Insert adds a new cell at coord with the given content if one does not
// already exist; it is idempotent over coordinate. Returns the resident
// cell either way.
func (s *Store) Insert(coord Coordinate, content Content) *Cell {
	if c, ok := s.cells[coord]; ok {
		return c
	}
	c := newCell(coord, content)
	s.cells[coord] = c
	s.order = append(s.order, coord)
	return c
}

// Materialize ensures a placeholder cell (Numeric(Empty)) exists at coord.
// Existing cells (of any content) are left untouched.
func (s *Store) Materialize(coord Coordinate) *Cell {
	return s.Insert(coord, NumericContent(EmptyValue()))
}

// Overwrite replaces the content of the cell at coord, preserving its
// DependedOnBy edges. If no cell exists yet, one is created.
func (s *Store) Overwrite(coord Coordinate, content Content) *Cell {
	if c, ok := s.cells[coord]; ok {
		c.Content = content
		return c
	}
	return s.Insert(coord, content)
}

// Iter returns every cell in insertion order.
func (s *Store) Iter() []*Cell {
	out := make([]*Cell, 0, len(s.order))
	for _, coord := range s.order {
		out = append(out, s.cells[coord])
	}
	return out
}

// Reset swaps in an empty map, implementing the "new spreadsheet" command.
func (s *Store) Reset() {
	s.cells = make(map[Coordinate]*Cell)
	s.order = nil
}

// orderedSet is a set of Coordinates with stable, insertion-ordered
// iteration, used for depends_on / depended_on_by so cascade order stays
// reproducible across runs.
type orderedSet struct {
	members map[Coordinate]struct{}
	order   []Coordinate
}

func newOrderedSet() *orderedSet {
	return &orderedSet{members: make(map[Coordinate]struct{})}
}

func (s *orderedSet) Add(c Coordinate) {
	if _, ok := s.members[c]; ok {
		return
	}
	s.members[c] = struct{}{}
	s.order = append(s.order, c)
}

func (s *orderedSet) Remove(c Coordinate) {
	if _, ok := s.members[c]; !ok {
		return
	}
	delete(s.members, c)
	for i, o := range s.order {
		if o == c {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *orderedSet) Has(c Coordinate) bool {
	_, ok := s.members[c]
	return ok
}

func (s *orderedSet) Len() int { return len(s.order) }

// Clear empties the set in place.
func (s *orderedSet) Clear() {
	maps.Clear(s.members)
	s.order = nil
}

// Items returns the set's members in insertion order. The caller must not
// mutate the returned slice.
func (s *orderedSet) Items() []Coordinate {
	return s.order
}
