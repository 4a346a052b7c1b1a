// Package s2v loads and saves spreadsheets in the line-oriented S2V text
// format: one line per row starting at row 1, fields separated by ";"
// corresponding to columns starting at column A. Empty fields are empty
// cells. Formula fields begin with "=" and use "," internally in place of
// ";" as the function-argument separator; Load converts "," back to ";"
// before handing the source to the formula engine, and Save performs the
// inverse. This layer never evaluates a formula itself, only shuttles text
// through internal.Spreadsheet.
package s2v

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kalexmills/s2v/internal"
)

// Load reads an S2V document from r and populates a fresh Spreadsheet.
// Blank lines still advance the row counter, matching the loader's
// original behaviour of counting every line read, not just non-blank
// ones. A field containing "," that is not a formula is rejected with
// ErrFormat, since "," is reserved for formula arguments.
func Load(r io.Reader, logger zerolog.Logger) (*internal.Spreadsheet, error) {
	sheet := internal.NewSpreadsheet()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	row := 1
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			row++
			continue
		}
		fields := strings.Split(line, ";")
		for column, field := range fields {
			if field == "" {
				continue
			}
			source := field
			if strings.HasPrefix(field, "=") {
				if strings.Contains(field, ",") {
					source = "=" + strings.ReplaceAll(field[1:], ",", ";")
				}
			} else if strings.Contains(field, ",") {
				return nil, fmt.Errorf("%w: row %d column %s: unexpected ','", internal.ErrFormat, row, internal.IndexToColumn(column))
			}

			coord := internal.IndexToColumn(column) + strconv.Itoa(row)
			if err := sheet.EditCell(coord, source); err != nil {
				logger.Warn().Err(err).Str("cell", coord).Msg("s2v: skipping cell that failed to load")
				continue
			}
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", internal.ErrIO, err)
	}
	return sheet, nil
}

// Save writes sheet to w in S2V form, sorted by row then column. Formula
// sources have their ";" argument separators swapped for "," so the
// resulting line remains unambiguous to Load.
func Save(w io.Writer, sheet *internal.Spreadsheet) error {
	bw := bufio.NewWriter(w)

	maxRow, maxCol := 0, -1
	cellsByRowCol := make(map[int]map[int]*internal.Cell)
	for _, cell := range sheet.Store().Iter() {
		col, err := internal.ColumnToIndex(cell.ID.Column)
		if err != nil {
			return fmt.Errorf("%w: %v", internal.ErrFormat, err)
		}
		if cell.ID.Row > maxRow {
			maxRow = cell.ID.Row
		}
		if col > maxCol {
			maxCol = col
		}
		if cellsByRowCol[cell.ID.Row] == nil {
			cellsByRowCol[cell.ID.Row] = make(map[int]*internal.Cell)
		}
		cellsByRowCol[cell.ID.Row][col] = cell
	}

	for row := 1; row <= maxRow; row++ {
		rowCells := cellsByRowCol[row]
		var fields []string
		for col := 0; col <= maxCol; col++ {
			cell, ok := rowCells[col]
			if !ok {
				fields = append(fields, "")
				continue
			}
			fields = append(fields, fieldFor(cell))
		}
		for len(fields) > 0 && fields[len(fields)-1] == "" {
			fields = fields[:len(fields)-1]
		}
		if _, err := bw.WriteString(strings.Join(fields, ";")); err != nil {
			return fmt.Errorf("%w: %v", internal.ErrIO, err)
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return fmt.Errorf("%w: %v", internal.ErrIO, err)
		}
	}
	return bw.Flush()
}

func fieldFor(cell *internal.Cell) string {
	switch cell.Content.Kind {
	case internal.ContentFormula:
		return "=" + strings.ReplaceAll(cell.Content.Source, ";", ",")
	default:
		return cell.Content.AsValue().AsString()
	}
}

