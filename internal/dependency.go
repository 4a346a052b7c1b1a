package internal

// ExtractDependencies returns the set of coordinates referenced by a
// formula's components: every CellRef, every cell in every Range's
// rectangular expansion, and everything reached through nested Func
// arguments. Order follows first occurrence so cascades stay reproducible.
func ExtractDependencies(components []Component) ([]Coordinate, error) {
	var deps []Coordinate
	seen := make(map[Coordinate]struct{})
	add := func(c Coordinate) {
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		deps = append(deps, c)
	}

	var walk func(c Component) error
	walk = func(c Component) error {
		switch c.Kind {
		case CompCellRef:
			add(c.Cell)
		case CompRange:
			coords, err := ExpandRange(c.RangeLo, c.RangeHi)
			if err != nil {
				return err
			}
			for _, coord := range coords {
				add(coord)
			}
		case CompFunc:
			for _, arg := range c.Args {
				if err := walk(arg); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, c := range components {
		if err := walk(c); err != nil {
			return nil, err
		}
	}
	return deps, nil
}

// Detach removes cell from the depended_on_by set of everything it used to
// depend on, then clears its depends_on set.
func Detach(cell *Cell, store *Store) {
	for _, dep := range cell.DependsOn.Items() {
		if depCell := store.Get(dep); depCell != nil {
			depCell.DependedOnBy.Remove(cell.ID)
		}
	}
	cell.DependsOn.Clear()
}

// Attach adds deps to cell's depends_on set (members already present are
// kept; Detach is what clears it), materialising a placeholder for
// any dependency not already present in store, and inserts cell into each
// dependency's depended_on_by set.
func Attach(cell *Cell, deps []Coordinate, store *Store) {
	for _, dep := range deps {
		store.Materialize(dep)
		cell.DependsOn.Add(dep)
		store.Get(dep).DependedOnBy.Add(cell.ID)
	}
}

// HasCycle performs a DFS over depended_on_by starting at origin; a cycle
// exists iff origin is re-encountered. Run after new edges have been
// tentatively attached; on a true result the caller must roll back
// via Detach/Attach of the prior edge snapshot.
func HasCycle(origin Coordinate, store *Store) bool {
	visited := make(map[Coordinate]struct{})

	var dfs func(cur Coordinate) bool
	dfs = func(cur Coordinate) bool {
		cell := store.Get(cur)
		if cell == nil {
			return false
		}
		for _, dependent := range cell.DependedOnBy.Items() {
			if dependent == origin {
				return true
			}
			if _, ok := visited[dependent]; ok {
				continue
			}
			visited[dependent] = struct{}{}
			if dfs(dependent) {
				return true
			}
		}
		return false
	}

	return dfs(origin)
}
