package interp

import (
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"keyva/internal/ast"
)

func TestPropertyNumberRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("integers survive format and re-detect", prop.ForAll(
		func(n int32) bool {
			v := float64(n)
			got := detect(FormatNumber(v))
			if got.Kind != NumberVal {
				return false
			}
			if n > -1000000 && n < 1000000 {
				// Within six significant digits the round trip is exact.
				return got.Num == v
			}
			return true
		},
		gen.Int32(),
	))

	properties.TestingRun(t)
}

func TestPropertyDetectAgreesWithLooksNumeric(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("detect classifies exactly the LooksNumeric strings", prop.ForAll(
		func(s string) bool {
			v := detect(s)
			if LooksNumeric(s) {
				return v.Kind == NumberVal
			}
			return v.Kind == StringVal && v.Str == s
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestPropertyArrayOrderAndUniqueness(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("first write fixes position, last write fixes value", prop.ForAll(
		func(keys []int8) bool {
			a := NewArray()
			last := map[string]string{}
			var order []string
			for i, k := range keys {
				key := strconv.Itoa(int(k))
				val := strconv.Itoa(i)
				if _, seen := last[key]; !seen {
					order = append(order, key)
				}
				last[key] = val
				a.Set(key, val)
			}
			if a.Len() != len(order) {
				return false
			}
			for i, key := range order {
				p := a.At(i)
				if p.Key != key || p.Value != last[key] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int8()),
	))

	properties.TestingRun(t)
}

func TestPropertyScalarCollapse(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("a one-entry variable prints its stored text verbatim", prop.ForAll(
		func(key, value string) bool {
			in := New(Options{Out: discard{}})
			in.setValue("x", key, value)
			id := in.arenas.NewExpr(ast.Expr{Kind: ast.ExprIdent, Text: "x"})
			v, ok := in.eval(id, Print)
			return ok && v.Kind == StringVal && v.Str == value
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
