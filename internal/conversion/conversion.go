package conversion

import (
	"fmt"
	"math"
	"sort"

	"github.com/robert-malhotra/go-mdf4/internal/block"
	"github.com/robert-malhotra/go-mdf4/internal/errs"
)

// Kind is the ASAM cc_type of a conversion.
type Kind uint8

const (
	Identity Kind = iota
	Linear
	Rational
	Algebraic
	TableInterp
	Table
	RangeTable
	ValueToText
	RangeToText
	TextToValue
	TextToText
	BitfieldText
)

var kindNames = [...]string{
	"identity", "linear", "rational", "algebraic", "table with interpolation",
	"table", "range table", "value to text", "range to text", "text to value",
	"text to text", "bitfield text",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("conversion(%d)", uint8(k))
}

// Supported reports whether Eval can compute values for this kind.
func (k Kind) Supported() bool {
	switch k {
	case Identity, Linear, Rational, TableInterp, Table, RangeTable:
		return true
	}
	return false
}

// Conversion is an immutable conversion rule. A nil *Conversion is the
// identity.
type Conversion struct {
	Kind   Kind
	Params []float64

	Name    string
	Unit    string
	Comment string

	// floatInput selects half-open ranges for RangeTable lookups.
	floatInput bool
}

// New validates params for kind and returns the conversion.
func New(kind Kind, params []float64) (*Conversion, error) {
	if err := checkParams(kind, params); err != nil {
		return nil, err
	}
	return &Conversion{Kind: kind, Params: params}, nil
}

// NewLinear returns phys = a*raw + b.
func NewLinear(a, b float64) *Conversion {
	return &Conversion{Kind: Linear, Params: []float64{b, a}}
}

// FromBlock builds a conversion from a parsed CC block. Text fields are
// filled in by the caller.
func FromBlock(cc *block.CC) (*Conversion, error) {
	c, err := New(Kind(cc.Type), cc.Values)
	if err != nil {
		return nil, fmt.Errorf("conversion at %#x: %w", cc.Offset, err)
	}
	return c, nil
}

func checkParams(kind Kind, p []float64) error {
	bad := func(want string) error {
		return fmt.Errorf("%w: %s conversion needs %s parameters, has %d", errs.ErrFormat, kind, want, len(p))
	}
	switch kind {
	case Linear:
		if len(p) < 2 {
			return bad("2")
		}
	case Rational:
		if len(p) < 6 {
			return bad("6")
		}
	case TableInterp, Table:
		if len(p) < 2 || len(p)%2 != 0 {
			return bad("a positive even number of")
		}
	case RangeTable:
		if len(p) < 4 || len(p)%3 != 1 {
			return bad("3n+1")
		}
	}
	return nil
}

// WithFloatInput returns a copy whose range lookups use min <= raw < max,
// the rule for floating point channels. Integer channels use min <= raw <= max.
func (c *Conversion) WithFloatInput() *Conversion {
	if c == nil || c.Kind != RangeTable {
		return c
	}
	cp := *c
	cp.floatInput = true
	return &cp
}

// IsIdentity reports whether the conversion leaves values unchanged.
func (c *Conversion) IsIdentity() bool {
	return c == nil || c.Kind == Identity
}

// Eval converts a single raw value.
func (c *Conversion) Eval(raw float64) (float64, error) {
	if c == nil {
		return raw, nil
	}
	p := c.Params
	switch c.Kind {
	case Identity:
		return raw, nil
	case Linear:
		return p[0] + p[1]*raw, nil
	case Rational:
		den := p[3]*raw*raw + p[4]*raw + p[5]
		if den == 0 {
			return math.NaN(), fmt.Errorf("%w: rational conversion at raw value %g", errs.ErrDivisionByZero, raw)
		}
		return (p[0]*raw*raw + p[1]*raw + p[2]) / den, nil
	case TableInterp, Table, RangeTable:
		if math.IsNaN(raw) {
			return raw, nil
		}
		return c.table(raw), nil
	}
	return raw, fmt.Errorf("%w: %s conversion", errs.ErrUnsupported, c.Kind)
}

func (c *Conversion) table(raw float64) float64 {
	switch c.Kind {
	case TableInterp:
		return c.interpolate(raw)
	case Table:
		return c.nearest(raw)
	}
	return c.lookupRange(raw)
}

// Apply converts raw, yielding NaN where the conversion is undefined and raw
// where it is unsupported.
func (c *Conversion) Apply(raw float64) float64 {
	v, _ := c.Eval(raw)
	return v
}

// ApplyAll converts values in place. An unsupported conversion leaves values
// untouched and returns an error wrapping ErrUnsupported; per-value
// arithmetic failures become NaN and are not reported.
func ApplyAll(c *Conversion, values []float64) error {
	if c.IsIdentity() {
		return nil
	}
	if !c.Kind.Supported() {
		return fmt.Errorf("%w: %s conversion", errs.ErrUnsupported, c.Kind)
	}
	for i, v := range values {
		values[i] = c.Apply(v)
	}
	return nil
}

// pairs returns the number of (key, value) pairs of a table.
func (c *Conversion) pairs() int {
	return len(c.Params) / 2
}

func (c *Conversion) key(i int) float64   { return c.Params[2*i] }
func (c *Conversion) value(i int) float64 { return c.Params[2*i+1] }

// search returns the index of the first key >= raw, kept within [1, n-1]
// so that keys i-1 and i both exist. Unordered or NaN keys can otherwise
// push it past the table.
func (c *Conversion) search(raw float64) int {
	n := c.pairs()
	i := sort.Search(n, func(i int) bool { return c.key(i) >= raw })
	return min(max(i, 1), n-1)
}

func (c *Conversion) interpolate(raw float64) float64 {
	n := c.pairs()
	if raw <= c.key(0) {
		return c.value(0)
	}
	if raw >= c.key(n-1) {
		return c.value(n - 1)
	}
	i := c.search(raw)
	x0, x1 := c.key(i-1), c.key(i)
	y0, y1 := c.value(i-1), c.value(i)
	if x1 == x0 {
		return y0
	}
	return y0 + (y1-y0)*(raw-x0)/(x1-x0)
}

func (c *Conversion) nearest(raw float64) float64 {
	n := c.pairs()
	if raw <= c.key(0) {
		return c.value(0)
	}
	if raw >= c.key(n-1) {
		return c.value(n - 1)
	}
	i := c.search(raw)
	if raw-c.key(i-1) <= c.key(i)-raw {
		return c.value(i - 1)
	}
	return c.value(i)
}

func (c *Conversion) lookupRange(raw float64) float64 {
	p := c.Params
	n := len(p) / 3
	def := p[len(p)-1]
	lo := func(i int) float64 { return p[3*i] }
	hi := func(i int) float64 { return p[3*i+1] }
	val := func(i int) float64 { return p[3*i+2] }

	if raw < lo(0) {
		return val(0)
	}
	if raw > hi(n-1) || (c.floatInput && raw == hi(n-1)) {
		return val(n - 1)
	}
	for i := range n {
		if raw < lo(i) {
			break
		}
		if raw < hi(i) || (!c.floatInput && raw == hi(i)) {
			return val(i)
		}
	}
	return def
}
