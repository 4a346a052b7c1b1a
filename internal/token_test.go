package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeBasic(t *testing.T) {
	tokens, err := Tokenize("A1+B2*2")
	require.NoError(t, err)
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []TokenKind{
		TokenCellOrRange, TokenOperator, TokenCellOrRange, TokenOperator, TokenNumber,
	}, kinds)
}

func TestTokenizeRangeAndFunction(t *testing.T) {
	tokens, err := Tokenize("suma(A1:B3;2)")
	require.NoError(t, err)
	require.Len(t, tokens, 6)
	assert.Equal(t, TokenFunction, tokens[0].Kind)
	assert.Equal(t, "SUMA", tokens[0].Text)
	assert.Equal(t, TokenOpenParen, tokens[1].Kind)
	assert.Equal(t, TokenCellOrRange, tokens[2].Kind)
	assert.Equal(t, "A1:B3", tokens[2].Text)
	assert.Equal(t, TokenSemicolon, tokens[3].Kind)
	assert.Equal(t, TokenNumber, tokens[4].Kind)
	assert.Equal(t, TokenCloseParen, tokens[5].Kind)
}

func TestTokenizeSkipsWhitespace(t *testing.T) {
	tokens, err := Tokenize(" 1  +   2 ")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
}

func TestTokenizeUnexpectedCharacter(t *testing.T) {
	_, err := Tokenize("1 & 2")
	assert.ErrorIs(t, err, ErrContent)
}

func TestTokenizeDecimalNumber(t *testing.T) {
	tokens, err := Tokenize("3.14")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "3.14", tokens[0].Text)
}
