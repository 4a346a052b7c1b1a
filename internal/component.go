package internal

import "fmt"

// ComponentKind enumerates the post-build formula AST token variants.
type ComponentKind int

const (
	CompNumber ComponentKind = iota
	CompOperator
	CompOpenParen
	CompCloseParen
	CompCellRef
	CompRange
	CompFunc
)

// FuncKind enumerates the fixed set of aggregate functions.
type FuncKind int

const (
	FuncSUMA FuncKind = iota
	FuncMAX
	FuncMIN
	FuncPROMEDIO
)

func funcKindFromName(name string) (FuncKind, error) {
	switch name {
	case "SUMA":
		return FuncSUMA, nil
	case "MAX":
		return FuncMAX, nil
	case "MIN":
		return FuncMIN, nil
	case "PROMEDIO":
		return FuncPROMEDIO, nil
	default:
		return 0, fmt.Errorf("%w: unknown function %q", ErrContent, name)
	}
}

// Component is a single post-build formula AST token. Only one of the
// payload fields is meaningful, selected by Kind; Args is populated only
// for CompFunc, and is itself a list of atomic argument components (Number,
// CellRef, Range, or nested Func, never Operator/Paren).
type Component struct {
	Kind     ComponentKind
	Number   float64
	Operator byte
	Cell     Coordinate
	RangeLo  Coordinate
	RangeHi  Coordinate
	FuncKind FuncKind
	Args     []Component
}

// BuildComponents walks a validated token stream (already accepted by
// ParseTokens) and produces the flat infix Component sequence the shunting
// yard evaluator consumes. Cell references materialise placeholder cells in
// store as a side effect.
func BuildComponents(tokens []Token, store *Store) ([]Component, error) {
	comps, rest, err := buildExpression(tokens, store)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: unexpected token %q at %d", ErrContent, rest[0].Text, rest[0].Pos)
	}
	return comps, nil
}

func buildExpression(tokens []Token, store *Store) ([]Component, []Token, error) {
	comps, rest, err := buildTerm(tokens, store)
	if err != nil {
		return nil, nil, err
	}
	for len(rest) > 0 && rest[0].Kind == TokenOperator && (rest[0].Text == "+" || rest[0].Text == "-") {
		comps = append(comps, Component{Kind: CompOperator, Operator: rest[0].Text[0]})
		var next []Component
		next, rest, err = buildTerm(rest[1:], store)
		if err != nil {
			return nil, nil, err
		}
		comps = append(comps, next...)
	}
	return comps, rest, nil
}

func buildTerm(tokens []Token, store *Store) ([]Component, []Token, error) {
	comps, rest, err := buildFactor(tokens, store)
	if err != nil {
		return nil, nil, err
	}
	for len(rest) > 0 && rest[0].Kind == TokenOperator && (rest[0].Text == "*" || rest[0].Text == "/") {
		comps = append(comps, Component{Kind: CompOperator, Operator: rest[0].Text[0]})
		var next []Component
		next, rest, err = buildFactor(rest[1:], store)
		if err != nil {
			return nil, nil, err
		}
		comps = append(comps, next...)
	}
	return comps, rest, nil
}

func buildFactor(tokens []Token, store *Store) ([]Component, []Token, error) {
	if len(tokens) == 0 {
		return nil, nil, fmt.Errorf("%w: expected a term; found nothing", ErrContent)
	}
	tok := tokens[0]
	switch tok.Kind {
	case TokenNumber:
		return []Component{{Kind: CompNumber, Number: parseNumberToken(tok.Text)}}, tokens[1:], nil
	case TokenOpenParen:
		inner, rest, err := buildExpression(tokens[1:], store)
		if err != nil {
			return nil, nil, err
		}
		if len(rest) == 0 || rest[0].Kind != TokenCloseParen {
			return nil, nil, fmt.Errorf("%w: missing closing parenthesis", ErrContent)
		}
		comps := make([]Component, 0, len(inner)+2)
		comps = append(comps, Component{Kind: CompOpenParen})
		comps = append(comps, inner...)
		comps = append(comps, Component{Kind: CompCloseParen})
		return comps, rest[1:], nil
	case TokenFunction:
		fn, rest, err := buildFunctionCall(tokens, store)
		if err != nil {
			return nil, nil, err
		}
		return []Component{fn}, rest, nil
	case TokenCellOrRange:
		comp, err := buildCellOrRange(tok, store)
		if err != nil {
			return nil, nil, err
		}
		return []Component{comp}, tokens[1:], nil
	default:
		return nil, nil, fmt.Errorf("%w: unexpected token %q at %d", ErrContent, tok.Text, tok.Pos)
	}
}

func buildFunctionCall(tokens []Token, store *Store) (Component, []Token, error) {
	kind, err := funcKindFromName(tokens[0].Text)
	if err != nil {
		return Component{}, nil, err
	}
	if len(tokens) < 2 || tokens[1].Kind != TokenOpenParen {
		return Component{}, nil, fmt.Errorf("%w: expected '(' after function name", ErrContent)
	}
	rest := tokens[2:]
	var args []Component
	arg, rest2, err := buildArgument(rest, store)
	if err != nil {
		return Component{}, nil, err
	}
	args = append(args, arg)
	rest = rest2
	for len(rest) > 0 && rest[0].Kind == TokenSemicolon {
		arg, rest2, err = buildArgument(rest[1:], store)
		if err != nil {
			return Component{}, nil, err
		}
		args = append(args, arg)
		rest = rest2
	}
	if len(rest) == 0 || rest[0].Kind != TokenCloseParen {
		return Component{}, nil, fmt.Errorf("%w: missing closing parenthesis in function call", ErrContent)
	}
	return Component{Kind: CompFunc, FuncKind: kind, Args: args}, rest[1:], nil
}

// buildArgument builds a single atomic argument: a Number, CellRef, Range,
// or nested Func. Anything else at the head of an argument (an operator,
// a parenthesis) is rejected here; an operator after the argument, as in
// SUMA(1+2;3), is rejected by buildFunctionCall, which then finds neither
// ';' nor ')'. So although ParseTokens' grammar admits a full expression
// in argument position, SUMA(1+2;3) parses but fails to build.
func buildArgument(tokens []Token, store *Store) (Component, []Token, error) {
	if len(tokens) == 0 {
		return Component{}, nil, fmt.Errorf("%w: expected an argument; found nothing", ErrContent)
	}
	tok := tokens[0]
	switch tok.Kind {
	case TokenNumber:
		return Component{Kind: CompNumber, Number: parseNumberToken(tok.Text)}, tokens[1:], nil
	case TokenCellOrRange:
		comp, err := buildCellOrRange(tok, store)
		if err != nil {
			return Component{}, nil, err
		}
		return comp, tokens[1:], nil
	case TokenFunction:
		return buildFunctionCall(tokens, store)
	default:
		return Component{}, nil, fmt.Errorf("%w: operator not allowed in function argument (token %q at %d)", ErrContent, tok.Text, tok.Pos)
	}
}

func buildCellOrRange(tok Token, store *Store) (Component, error) {
	colon := -1
	for i, r := range tok.Text {
		if r == ':' {
			colon = i
			break
		}
	}
	if colon < 0 {
		coord, err := ParseCoordinate(tok.Text)
		if err != nil {
			return Component{}, err
		}
		store.Materialize(coord)
		return Component{Kind: CompCellRef, Cell: coord}, nil
	}

	lo, err := ParseCoordinate(tok.Text[:colon])
	if err != nil {
		return Component{}, err
	}
	hi, err := ParseCoordinate(tok.Text[colon+1:])
	if err != nil {
		return Component{}, err
	}
	loCol, err := ColumnToIndex(lo.Column)
	if err != nil {
		return Component{}, err
	}
	hiCol, err := ColumnToIndex(hi.Column)
	if err != nil {
		return Component{}, err
	}
	if loCol > hiCol || lo.Row > hi.Row {
		return Component{}, fmt.Errorf("%w: malformed range %q", ErrContent, tok.Text)
	}
	return Component{Kind: CompRange, RangeLo: lo, RangeHi: hi}, nil
}

// ExpandRange returns every coordinate in the rectangle [lo, hi] in
// row-major order.
func ExpandRange(lo, hi Coordinate) ([]Coordinate, error) {
	loCol, err := ColumnToIndex(lo.Column)
	if err != nil {
		return nil, err
	}
	hiCol, err := ColumnToIndex(hi.Column)
	if err != nil {
		return nil, err
	}
	var out []Coordinate
	for row := lo.Row; row <= hi.Row; row++ {
		for col := loCol; col <= hiCol; col++ {
			out = append(out, Coordinate{Column: IndexToColumn(col), Row: row})
		}
	}
	return out, nil
}
