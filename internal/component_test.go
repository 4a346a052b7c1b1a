package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, store *Store, src string) []Component {
	t.Helper()
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	require.NoError(t, ParseTokens(tokens))
	comps, err := BuildComponents(tokens, store)
	require.NoError(t, err)
	return comps
}

func TestBuildComponentsMaterialisesPlaceholders(t *testing.T) {
	store := NewStore()
	comps := build(t, store, "A1+B2")
	require.Len(t, comps, 3)
	assert.Equal(t, CompCellRef, comps[0].Kind)
	assert.Equal(t, Coordinate{Column: "A", Row: 1}, comps[0].Cell)

	assert.True(t, store.Contains(Coordinate{Column: "A", Row: 1}))
	assert.True(t, store.Contains(Coordinate{Column: "B", Row: 2}))
	cell := store.Get(Coordinate{Column: "A", Row: 1})
	assert.Equal(t, ContentNumeric, cell.Content.Kind)
	assert.True(t, cell.Content.Value.IsEmpty())
}

func TestBuildComponentsRange(t *testing.T) {
	store := NewStore()
	comps := build(t, store, "SUMA(A1:B3)")
	require.Len(t, comps, 1)
	require.Equal(t, CompFunc, comps[0].Kind)
	require.Len(t, comps[0].Args, 1)
	rng := comps[0].Args[0]
	assert.Equal(t, CompRange, rng.Kind)
	assert.Equal(t, Coordinate{Column: "A", Row: 1}, rng.RangeLo)
	assert.Equal(t, Coordinate{Column: "B", Row: 3}, rng.RangeHi)
}

func TestBuildComponentsMalformedRange(t *testing.T) {
	store := NewStore()
	tokens, err := Tokenize("SUMA(B3:A1)")
	require.NoError(t, err)
	require.NoError(t, ParseTokens(tokens))
	_, err = BuildComponents(tokens, store)
	assert.ErrorIs(t, err, ErrContent)
}

func TestBuildComponentsRejectsOperatorInArgument(t *testing.T) {
	store := NewStore()
	tokens, err := Tokenize("SUMA(1+2;3)")
	require.NoError(t, err)
	require.NoError(t, ParseTokens(tokens)) // accepted by the parser...
	_, err = BuildComponents(tokens, store)
	assert.ErrorIs(t, err, ErrContent) // ...rejected by the builder.
}

func TestExpandRangeMultiLetterColumns(t *testing.T) {
	coords, err := ExpandRange(
		Coordinate{Column: "Z", Row: 1},
		Coordinate{Column: "AB", Row: 3},
	)
	require.NoError(t, err)
	require.Len(t, coords, 9)
	assert.Equal(t, Coordinate{Column: "Z", Row: 1}, coords[0])
	assert.Equal(t, Coordinate{Column: "AA", Row: 1}, coords[1])
	assert.Equal(t, Coordinate{Column: "AB", Row: 1}, coords[2])
	assert.Equal(t, Coordinate{Column: "Z", Row: 3}, coords[6])
	assert.Equal(t, Coordinate{Column: "AB", Row: 3}, coords[8])
}

func TestBuildFunctionCallNested(t *testing.T) {
	store := NewStore()
	comps := build(t, store, "MAX(1;2;PROMEDIO(4;6))")
	require.Len(t, comps, 1)
	fn := comps[0]
	assert.Equal(t, FuncMAX, fn.FuncKind)
	require.Len(t, fn.Args, 3)
	assert.Equal(t, CompFunc, fn.Args[2].Kind)
	assert.Equal(t, FuncPROMEDIO, fn.Args[2].FuncKind)
}

func TestTokenizeRejectsUnknownFunctionName(t *testing.T) {
	// a bare letter run with no trailing digits and no match in the fixed
	// function set is rejected by the tokenizer itself, before the
	// builder's own unknown-function check ever runs.
	_, err := Tokenize("FOO(1)")
	assert.ErrorIs(t, err, ErrContent)
}
