package internal

import "fmt"

// Spreadsheet is the edit controller plus external-facing API. It owns
// the store and is the single point at which edits are accepted,
// classified, dispatched to the driver, and cascaded.
type Spreadsheet struct {
	store *Store
}

// NewSpreadsheet returns an empty spreadsheet.
func NewSpreadsheet() *Spreadsheet {
	return &Spreadsheet{store: NewStore()}
}

// Reset implements the "new spreadsheet" command: the entire store is
// swapped out atomically.
func (s *Spreadsheet) Reset() {
	s.store.Reset()
}

// Store exposes the underlying store to out-of-core collaborators (the
// loader/saver and CLI) that need to enumerate cells; they may read it
// between edits but must not mutate it.
func (s *Spreadsheet) Store() *Store {
	return s.store
}

// EditCell applies an edit of (coord, raw).
func (s *Spreadsheet) EditCell(coordStr, raw string) error {
	coord, err := ParseCoordinate(coordStr)
	if err != nil {
		return err
	}
	content := ClassifyContent(raw)

	cell := s.store.Get(coord)
	if cell == nil {
		cell = s.store.Insert(coord, content)
		if content.Kind == ContentFormula {
			if err := InstallFormula(s.store, cell, content.Source); err != nil {
				return err
			}
		}
		return nil
	}

	if cell.DependedOnBy.Len() > 0 {
		switch content.Kind {
		case ContentTextual:
			return fmt.Errorf("%w: text forbidden on referenced cell %s", ErrContent, coord)
		case ContentNumeric:
			cell.Content = content
			return Cascade(s.store, coord)
		case ContentFormula:
			if err := InstallFormula(s.store, cell, content.Source); err != nil {
				return err
			}
			return Cascade(s.store, coord)
		}
		return nil
	}

	if content.Kind == ContentFormula {
		return InstallFormula(s.store, cell, content.Source)
	}
	cell.Content = content
	return nil
}

// GetCellValueAsNumber fails ErrNoNumber if the cell is
// textual or empty.
func (s *Spreadsheet) GetCellValueAsNumber(coordStr string) (float64, error) {
	coord, err := ParseCoordinate(coordStr)
	if err != nil {
		return 0, err
	}
	cell := s.store.Get(coord)
	if cell == nil {
		return 0, fmt.Errorf("%w: cell %s has no value", ErrNoNumber, coord)
	}
	v := cell.Content.AsValue()
	if !v.IsNumber() {
		return 0, fmt.Errorf("%w: cell %s is not numeric", ErrNoNumber, coord)
	}
	return v.Number(), nil
}

// GetCellValueAsString returns textual content verbatim, numeric or
// formula-evaluated content as a decimal string, empty or missing cells as
// "".
func (s *Spreadsheet) GetCellValueAsString(coordStr string) (string, error) {
	coord, err := ParseCoordinate(coordStr)
	if err != nil {
		return "", err
	}
	cell := s.store.Get(coord)
	if cell == nil {
		return "", nil
	}
	return cell.Content.AsValue().AsString(), nil
}

// GetCellFormulaSource returns "=" + source if the cell is a formula;
// fails ErrBadCoordinate otherwise. The leading '=' is kept in the
// returned string.
func (s *Spreadsheet) GetCellFormulaSource(coordStr string) (string, error) {
	coord, err := ParseCoordinate(coordStr)
	if err != nil {
		return "", err
	}
	cell := s.store.Get(coord)
	if cell == nil || cell.Content.Kind != ContentFormula {
		return "", fmt.Errorf("%w: cell %s is not a formula", ErrBadCoordinate, coord)
	}
	return "=" + cell.Content.Source, nil
}
