package internal

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate identifies a single spreadsheet cell by its column label and
// row number. Column is always canonical uppercase (A, B, ..., Z, AA, ...);
// Row is 1-based. The zero value is not a valid Coordinate.
type Coordinate struct {
	Column string
	Row    int
}

// String renders the coordinate in its canonical textual form, e.g. "B12".
func (c Coordinate) String() string {
	return c.Column + strconv.Itoa(c.Row)
}

// ParseCoordinate parses str as a Coordinate, splitting at the first decimal
// digit. The letter prefix is uppercased; the digit suffix is parsed as a
// positive integer. Any violation returns ErrBadCoordinate.
func ParseCoordinate(str string) (Coordinate, error) {
	if str == "" {
		return Coordinate{}, fmt.Errorf("%w: empty coordinate", ErrBadCoordinate)
	}

	split := -1
	for i, r := range str {
		if r >= '0' && r <= '9' {
			split = i
			break
		}
	}
	if split <= 0 || split == len(str) {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrBadCoordinate, str)
	}

	letters, digits := str[:split], str[split:]
	for _, r := range letters {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')) {
			return Coordinate{}, fmt.Errorf("%w: %q", ErrBadCoordinate, str)
		}
	}
	row, err := strconv.Atoi(digits)
	if err != nil || row <= 0 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrBadCoordinate, str)
	}

	return Coordinate{Column: strings.ToUpper(letters), Row: row}, nil
}

// ColumnToIndex folds a base-26 column label (A=1..Z=26, no zero digit) into
// a 0-based column index.
func ColumnToIndex(label string) (int, error) {
	if label == "" {
		return 0, fmt.Errorf("%w: empty column label", ErrBadCoordinate)
	}
	idx := 0
	for _, r := range strings.ToUpper(label) {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("%w: invalid column label %q", ErrBadCoordinate, label)
		}
		digit := int(r-'A') + 1
		idx = idx*26 + digit
	}
	return idx - 1, nil
}

// IndexToColumn is the inverse of ColumnToIndex: it produces the base-26
// column label for a 0-based column index.
func IndexToColumn(i int) string {
	if i < 0 {
		return ""
	}
	var letters []byte
	for i >= 0 {
		letters = append(letters, byte('A'+i%26))
		i = i/26 - 1
	}
	for l, r := 0, len(letters)-1; l < r; l, r = l+1, r-1 {
		letters[l], letters[r] = letters[r], letters[l]
	}
	return string(letters)
}
