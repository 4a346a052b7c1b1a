package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertNumber(t *testing.T, s *Spreadsheet, coord string, want float64) {
	t.Helper()
	got, err := s.GetCellValueAsNumber(coord)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// TestScenarios exercises six end-to-end editing scenarios.
func TestScenarios(t *testing.T) {
	t.Run("1: arithmetic with precedence", func(t *testing.T) {
		s := NewSpreadsheet()
		require.NoError(t, s.EditCell("B1", "5"))
		require.NoError(t, s.EditCell("B2", "3"))
		require.NoError(t, s.EditCell("A1", "=B1+B2*2"))
		assertNumber(t, s, "A1", 11.0)
	})

	t.Run("2: cascade through a reference chain", func(t *testing.T) {
		s := NewSpreadsheet()
		require.NoError(t, s.EditCell("B1", "5"))
		require.NoError(t, s.EditCell("B2", "=B1+1"))
		require.NoError(t, s.EditCell("B3", "=B2+1"))
		require.NoError(t, s.EditCell("B1", "10"))
		assertNumber(t, s, "B3", 12.0)
	})

	t.Run("3: circular dependency is rejected and rolled back", func(t *testing.T) {
		s := NewSpreadsheet()
		require.NoError(t, s.EditCell("A1", "=B1"))
		err := s.EditCell("B1", "=A1")
		assert.ErrorIs(t, err, ErrCircularDependency)

		a1 := s.store.Get(Coordinate{Column: "A", Row: 1})
		assert.True(t, a1.Content.Cached.IsEmpty())

		// B1 unchanged: still the placeholder it was before the failed edit.
		v, err := s.GetCellValueAsString("B1")
		require.NoError(t, err)
		assert.Equal(t, "", v)
	})

	t.Run("4: SUMA over a range", func(t *testing.T) {
		s := NewSpreadsheet()
		require.NoError(t, s.EditCell("A1", "=SUMA(B1:B3)"))
		require.NoError(t, s.EditCell("B1", "1"))
		require.NoError(t, s.EditCell("B2", "2"))
		require.NoError(t, s.EditCell("B3", "3"))
		assertNumber(t, s, "A1", 6.0)
	})

	t.Run("5: text forbidden on a referenced cell", func(t *testing.T) {
		s := NewSpreadsheet()
		require.NoError(t, s.EditCell("A1", "5"))
		require.NoError(t, s.EditCell("B1", "=A1"))
		err := s.EditCell("A1", "hello")
		assert.ErrorIs(t, err, ErrContent)
		assertNumber(t, s, "A1", 5.0)
		assertNumber(t, s, "B1", 5.0)
	})

	t.Run("6: nested function call", func(t *testing.T) {
		s := NewSpreadsheet()
		require.NoError(t, s.EditCell("A1", "=MAX(1;2;PROMEDIO(4;6))"))
		assertNumber(t, s, "A1", 5.0)
	})
}

func TestEditCellBadCoordinate(t *testing.T) {
	s := NewSpreadsheet()
	err := s.EditCell("!!", "1")
	assert.ErrorIs(t, err, ErrBadCoordinate)
}

func TestGetCellValueAsNumberOnTextualFails(t *testing.T) {
	s := NewSpreadsheet()
	require.NoError(t, s.EditCell("A1", "hello"))
	_, err := s.GetCellValueAsNumber("A1")
	assert.ErrorIs(t, err, ErrNoNumber)
}

func TestGetCellValueAsStringFormatsFormulaResult(t *testing.T) {
	s := NewSpreadsheet()
	require.NoError(t, s.EditCell("A1", "=1+1"))
	v, err := s.GetCellValueAsString("A1")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

func TestGetCellFormulaSource(t *testing.T) {
	s := NewSpreadsheet()
	require.NoError(t, s.EditCell("A1", "=B1+1"))
	src, err := s.GetCellFormulaSource("A1")
	require.NoError(t, err)
	assert.Equal(t, "=B1+1", src)

	require.NoError(t, s.EditCell("B2", "5"))
	_, err = s.GetCellFormulaSource("B2")
	assert.ErrorIs(t, err, ErrBadCoordinate)
}

func TestEditCellNoOpOnSameContent(t *testing.T) {
	s := NewSpreadsheet()
	require.NoError(t, s.EditCell("A1", "5"))
	require.NoError(t, s.EditCell("A1", "5"))
	assertNumber(t, s, "A1", 5.0)
}

func TestFibonacciCascade(t *testing.T) {
	s := NewSpreadsheet()
	require.NoError(t, s.EditCell("A1", "0"))
	require.NoError(t, s.EditCell("A2", "1"))
	for i := 3; i < 15; i++ {
		cell := Coordinate{Column: "A", Row: i}.String()
		prev1 := Coordinate{Column: "A", Row: i - 2}.String()
		prev2 := Coordinate{Column: "A", Row: i - 1}.String()
		require.NoError(t, s.EditCell(cell, "="+prev1+"+"+prev2))
	}
	assertNumber(t, s, "A14", 233.0)
}

func TestReset(t *testing.T) {
	s := NewSpreadsheet()
	require.NoError(t, s.EditCell("A1", "5"))
	s.Reset()
	v, err := s.GetCellValueAsString("A1")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}
