package interp

import "strconv"

// Context selects how a single-entry variable collapses to a scalar.
type Context uint8

const (
	// Arithmetic collapses a single-entry variable to Number or String by
	// the numeric-detection rule, for use in computation.
	Arithmetic Context = iota
	// Print collapses a single-entry variable to its raw String, for
	// display and iteration.
	Print
)

type ValueKind uint8

const (
	NumberVal ValueKind = iota
	StringVal
	ArrayVal
)

// Value is one evaluation result: a double, a string, or a reference to an
// associative array (a variable's live array or a temporary).
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
	Arr  *Array
}

func Number(v float64) Value  { return Value{Kind: NumberVal, Num: v} }
func String(s string) Value   { return Value{Kind: StringVal, Str: s} }
func ArrayRef(a *Array) Value { return Value{Kind: ArrayVal, Arr: a} }

// Return is the result of a function call. Has distinguishes "no return
// statement reached" from "returned a value".
type Return struct {
	Has bool
	Val Value
}

// FormatNumber renders a double in general notation with six significant
// digits, trailing zeros trimmed. Number keys and printed values share it.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// LooksNumeric reports whether a stored string is treated as a number: it
// must start with a digit, or with '-' followed by a digit.
func LooksNumeric(s string) bool {
	if len(s) == 0 {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return true
	}
	return s[0] == '-' && len(s) > 1 && s[1] >= '0' && s[1] <= '9'
}

// ParseNumericPrefix converts the longest leading float prefix of s, the way
// C atof does: optional sign, digits, fraction, exponent. No prefix means 0.
func ParseNumericPrefix(s string) float64 {
	end := 0
	n := len(s)
	i := 0
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < n && s[i] >= '0' && s[i] <= '9' {
		i++
		end = i
	}
	if i < n && s[i] == '.' {
		i++
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
			end = i
		}
	}
	if end > 0 && i < n && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < n && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < n && s[j] >= '0' && s[j] <= '9' {
			for j < n && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			end = j
		}
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

// detect classifies a stored string as Number or String by the
// numeric-detection rule.
func detect(s string) Value {
	if LooksNumeric(s) {
		return Number(ParseNumericPrefix(s))
	}
	return String(s)
}
