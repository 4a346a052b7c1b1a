package internal

import "fmt"

// precedence gives the binding power of each arithmetic operator; higher
// binds tighter: "+ - = 1, * / = 2".
func precedence(op byte) int {
	switch op {
	case '+', '-':
		return 1
	case '*', '/':
		return 2
	default:
		return 0
	}
}

// ToPostfix converts an infix Component sequence to postfix using the
// classical shunting-yard algorithm, treating Range and Func as single
// operands for ordering purposes.
func ToPostfix(infix []Component) []Component {
	var output []Component
	var stack []Component

	isOperand := func(c Component) bool {
		switch c.Kind {
		case CompNumber, CompCellRef, CompRange, CompFunc:
			return true
		default:
			return false
		}
	}

	for _, c := range infix {
		switch {
		case isOperand(c):
			output = append(output, c)
		case c.Kind == CompOpenParen:
			stack = append(stack, c)
		case c.Kind == CompCloseParen:
			for len(stack) > 0 && stack[len(stack)-1].Kind != CompOpenParen {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1] // discard the matching '('
			}
		case c.Kind == CompOperator:
			for len(stack) > 0 && stack[len(stack)-1].Kind != CompOpenParen &&
				precedence(stack[len(stack)-1].Operator) >= precedence(c.Operator) {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, c)
		}
	}
	for len(stack) > 0 {
		output = append(output, stack[len(stack)-1])
		stack = stack[:len(stack)-1]
	}
	return output
}

// EvaluatePostfix scans the postfix Component sequence left to right over a
// value stack, resolving operands against store and applying operators.
func EvaluatePostfix(postfix []Component, store *Store) (Value, error) {
	var stack []Value
	for _, c := range postfix {
		if c.Kind == CompOperator {
			if len(stack) < 2 {
				return Value{}, fmt.Errorf("%w: malformed expression", ErrContent)
			}
			b := stack[len(stack)-1]
			a := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			v, err := applyOperator(c.Operator, a, b)
			if err != nil {
				return Value{}, err
			}
			stack = append(stack, v)
			continue
		}
		v, err := resolveOperand(c, store)
		if err != nil {
			return Value{}, err
		}
		stack = append(stack, v)
	}
	if len(stack) != 1 {
		return Value{}, fmt.Errorf("%w: malformed expression", ErrContent)
	}
	return stack[0], nil
}

// resolveOperand resolves a single Component to a scalar Value. An Empty
// operand propagates through arithmetic rather than failing; only a
// Textual operand is a hard type error.
func resolveOperand(c Component, store *Store) (Value, error) {
	switch c.Kind {
	case CompNumber:
		return NumberValue(c.Number), nil
	case CompCellRef:
		return resolveCellValue(c.Cell, store)
	case CompRange:
		return Value{}, fmt.Errorf("%w: a range may only be used inside a function", ErrContent)
	case CompFunc:
		return evaluateFunc(c, store)
	default:
		return Value{}, fmt.Errorf("%w: unexpected component in expression", ErrContent)
	}
}

// resolveCellValue reads the current displayable value of the cell at
// coord. A missing cell behaves like an Empty placeholder.
func resolveCellValue(coord Coordinate, store *Store) (Value, error) {
	cell := store.Get(coord)
	if cell == nil {
		return EmptyValue(), nil
	}
	switch cell.Content.Kind {
	case ContentNumeric:
		return cell.Content.Value, nil
	case ContentFormula:
		return cell.Content.Cached, nil
	case ContentTextual:
		return Value{}, fmt.Errorf("%w: cell %s is textual, not numeric", ErrContent, coord)
	default:
		return EmptyValue(), nil
	}
}

func applyOperator(op byte, a, b Value) (Value, error) {
	if a.IsText() || b.IsText() {
		return Value{}, fmt.Errorf("%w: cannot use textual operand in arithmetic", ErrContent)
	}
	if a.IsEmpty() || b.IsEmpty() {
		return EmptyValue(), nil
	}
	x, y := a.Number(), b.Number()
	switch op {
	case '+':
		return NumberValue(x + y), nil
	case '-':
		return NumberValue(x - y), nil
	case '*':
		return NumberValue(x * y), nil
	case '/':
		if y == 0 {
			return Value{}, fmt.Errorf("%w: division by zero", ErrContent)
		}
		return NumberValue(x / y), nil
	default:
		return Value{}, fmt.Errorf("%w: unknown operator %q", ErrContent, op)
	}
}

// flattenArgument expands a single Argument component (Number, CellRef,
// Range, or nested Func) into the list of numbers it contributes, skipping
// empty cells.
func flattenArgument(c Component, store *Store) ([]float64, error) {
	switch c.Kind {
	case CompNumber:
		return []float64{c.Number}, nil
	case CompCellRef:
		v, err := resolveCellValue(c.Cell, store)
		if err != nil {
			return nil, err
		}
		if v.IsEmpty() {
			return nil, nil
		}
		if v.IsText() {
			return nil, fmt.Errorf("%w: cell %s is textual, not numeric", ErrContent, c.Cell)
		}
		return []float64{v.Number()}, nil
	case CompRange:
		coords, err := ExpandRange(c.RangeLo, c.RangeHi)
		if err != nil {
			return nil, err
		}
		var out []float64
		for _, coord := range coords {
			v, err := resolveCellValue(coord, store)
			if err != nil {
				return nil, err
			}
			if v.IsEmpty() {
				continue
			}
			if v.IsText() {
				return nil, fmt.Errorf("%w: cell %s is textual, not numeric", ErrContent, coord)
			}
			out = append(out, v.Number())
		}
		return out, nil
	case CompFunc:
		v, err := evaluateFunc(c, store)
		if err != nil {
			return nil, err
		}
		if v.IsEmpty() {
			return nil, nil
		}
		return []float64{v.Number()}, nil
	default:
		return nil, fmt.Errorf("%w: unexpected argument component", ErrContent)
	}
}

// evaluateFunc flattens every argument of a Func component and applies its
// aggregate. An empty flattened list evaluates to Empty.
func evaluateFunc(c Component, store *Store) (Value, error) {
	var nums []float64
	for _, arg := range c.Args {
		vs, err := flattenArgument(arg, store)
		if err != nil {
			return Value{}, err
		}
		nums = append(nums, vs...)
	}
	if len(nums) == 0 {
		return EmptyValue(), nil
	}
	switch c.FuncKind {
	case FuncSUMA:
		sum := 0.0
		for _, n := range nums {
			sum += n
		}
		return NumberValue(sum), nil
	case FuncMAX:
		max := nums[0]
		for _, n := range nums[1:] {
			if n > max {
				max = n
			}
		}
		return NumberValue(max), nil
	case FuncMIN:
		min := nums[0]
		for _, n := range nums[1:] {
			if n < min {
				min = n
			}
		}
		return NumberValue(min), nil
	case FuncPROMEDIO:
		sum := 0.0
		for _, n := range nums {
			sum += n
		}
		return NumberValue(sum / float64(len(nums))), nil
	default:
		return Value{}, fmt.Errorf("%w: unknown function kind", ErrContent)
	}
}
