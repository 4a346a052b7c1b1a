package internal

import "fmt"

// InstallFormula tokenizes, parses, builds (materialising placeholders as
// a side effect), refreshes the dependency graph, checks for cycles, and
// evaluates. On any failure the dependency edges are rolled back to their
// pre-call snapshot and the cell's content is resolved by failFormula: a
// cell that was already a Formula becomes a Formula with Cached = Empty,
// any other cell keeps its previous content.
func InstallFormula(store *Store, cell *Cell, source string) error {
	prevContent := cell.Content
	wasFormula := prevContent.Kind == ContentFormula

	tokens, err := Tokenize(source)
	if err != nil {
		return failFormula(cell, source, prevContent, wasFormula, err)
	}
	if err := ParseTokens(tokens); err != nil {
		return failFormula(cell, source, prevContent, wasFormula, err)
	}
	components, err := BuildComponents(tokens, store)
	if err != nil {
		return failFormula(cell, source, prevContent, wasFormula, err)
	}

	prevDeps := append([]Coordinate(nil), cell.DependsOn.Items()...)
	Detach(cell, store)

	deps, err := ExtractDependencies(components)
	if err != nil {
		Attach(cell, prevDeps, store)
		return failFormula(cell, source, prevContent, wasFormula, err)
	}
	Attach(cell, deps, store)

	if HasCycle(cell.ID, store) {
		Detach(cell, store)
		Attach(cell, prevDeps, store)
		return failFormula(cell, source, prevContent, wasFormula, fmt.Errorf("%w: %s", ErrCircularDependency, cell.ID))
	}

	value, err := EvaluatePostfix(ToPostfix(components), store)
	if err != nil {
		Detach(cell, store)
		Attach(cell, prevDeps, store)
		return failFormula(cell, source, prevContent, wasFormula, err)
	}

	cell.Content = Content{Kind: ContentFormula, Source: source, Components: components, Cached: value}
	return nil
}

// failFormula resolves the content state transition on a failed formula
// edit. A cell that was already a valid Formula enters the Formula(error)
// state, keeping the newly attempted source with Cached reset to Empty.
// A cell that was not yet a formula (Numeric, Textual, or a freshly
// materialised placeholder) is left exactly as it was, since a failed
// first-time formula install on an untouched placeholder must leave that
// cell unchanged.
func failFormula(cell *Cell, source string, prevContent Content, wasFormula bool, err error) error {
	if wasFormula {
		cell.Content = FormulaContent(source)
	} else {
		cell.Content = prevContent
	}
	return err
}

// Cascade re-evaluates every cell transitively dependent on origin, in
// breadth-first order over depended_on_by with ties broken by insertion
// order, topologically sorted so each dependent is recomputed only after
// everything it depends on within the affected set. Textual and
// placeholder cells do not participate.
func Cascade(store *Store, origin Coordinate) error {
	visited := map[Coordinate]struct{}{origin: {}}
	queue := []Coordinate{origin}
	var affected []Coordinate

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		cell := store.Get(cur)
		if cell == nil {
			continue
		}
		for _, dependent := range cell.DependedOnBy.Items() {
			if _, ok := visited[dependent]; ok {
				continue
			}
			visited[dependent] = struct{}{}
			affected = append(affected, dependent)
			queue = append(queue, dependent)
		}
	}

	affectedSet := make(map[Coordinate]struct{}, len(affected))
	for _, c := range affected {
		affectedSet[c] = struct{}{}
	}

	var order []Coordinate
	temp := make(map[Coordinate]struct{})
	perm := make(map[Coordinate]struct{})

	var visit func(c Coordinate) error
	visit = func(c Coordinate) error {
		if _, ok := perm[c]; ok {
			return nil
		}
		if _, ok := temp[c]; ok {
			return fmt.Errorf("%w: %s", ErrCircularDependency, c)
		}
		temp[c] = struct{}{}
		if cell := store.Get(c); cell != nil {
			for _, dep := range cell.DependsOn.Items() {
				if dep == origin {
					continue
				}
				if _, ok := affectedSet[dep]; !ok {
					continue
				}
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		delete(temp, c)
		perm[c] = struct{}{}
		order = append(order, c)
		return nil
	}

	for _, c := range affected {
		if err := visit(c); err != nil {
			return err
		}
	}

	for _, coord := range order {
		cell := store.Get(coord)
		if cell == nil || cell.Content.Kind != ContentFormula {
			continue
		}
		value, err := EvaluatePostfix(ToPostfix(cell.Content.Components), store)
		if err != nil {
			cell.Content.Cached = EmptyValue()
			continue
		}
		cell.Content.Cached = value
	}
	return nil
}
