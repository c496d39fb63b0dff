package rpn

import (
	"fmt"
	"math"
	"strconv"
)

// Kind tags a Value with exactly one of the five stack-resident types.
// KindNumber and KindAny never tag a live value: they exist only in word
// signatures, where KindNumber accepts Integer or Double and KindAny
// accepts everything.
type Kind int

const (
	KindDouble Kind = iota
	KindInteger
	KindString
	KindVec3
	KindBoolean
	KindNumber
	KindAny
)

func (k Kind) String() string {
	switch k {
	case KindDouble:
		return "double"
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	case KindVec3:
		return "vec3"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindAny:
		return "any"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Vec3 is a 3-axis coordinate. A component may be NaN, meaning "unset":
// the partial-vector constructor words leave the axes they don't name
// unset, and Add/Sub treat an unset component as absent rather than
// poisoning the result.
type Vec3 struct {
	X, Y, Z float64
}

// UnsetVec3 returns a Vec3 with all three components unset.
func UnsetVec3() Vec3 {
	nan := math.NaN()
	return Vec3{nan, nan, nan}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{
		X: combine(v.X, o.X, false),
		Y: combine(v.Y, o.Y, false),
		Z: combine(v.Z, o.Z, false),
	}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{
		X: combine(v.X, o.X, true),
		Y: combine(v.Y, o.Y, true),
		Z: combine(v.Z, o.Z, true),
	}
}

func combine(a, b float64, sub bool) float64 {
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return math.NaN()
	case math.IsNaN(a):
		if sub {
			return -b
		}
		return b
	case math.IsNaN(b):
		return a
	case sub:
		return a - b
	}
	return a + b
}

// Mag is the vector magnitude; unset components count as 0.
func (v Vec3) Mag() float64 {
	x, y, z := orZero(v.X), orZero(v.Y), orZero(v.Z)
	return math.Sqrt(x*x + y*y + z*z)
}

func orZero(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return f
}

func (v Vec3) String() string {
	return fmt.Sprintf("{x:%s, y:%s, z:%s}", fmtDouble(v.X), fmtDouble(v.Y), fmtDouble(v.Z))
}

// Value is the closed tagged union of everything that can live on the
// stack. The zero Value is the double 0.
type Value struct {
	kind Kind
	f    float64
	i    int64
	b    bool
	s    string
	v    Vec3
}

func Dbl(f float64) Value { return Value{kind: KindDouble, f: f} }
func Int(i int64) Value   { return Value{kind: KindInteger, i: i} }
func Str(s string) Value  { return Value{kind: KindString, s: s} }
func Bool(b bool) Value   { return Value{kind: KindBoolean, b: b} }
func Vec(v Vec3) Value    { return Value{kind: KindVec3, v: v} }

func (v Value) Kind() Kind { return v.kind }

// Raw accessors; each is meaningful only when Kind matches.
func (v Value) Float() float64 { return v.f }
func (v Value) Int() int64     { return v.i }
func (v Value) Bool() bool     { return v.b }
func (v Value) Str() string    { return v.s }
func (v Value) Vec() Vec3      { return v.v }

// AsDouble widens either numeric kind to a double; any other kind
// yields NaN.
func (v Value) AsDouble() float64 {
	switch v.kind {
	case KindDouble:
		return v.f
	case KindInteger:
		return float64(v.i)
	}
	return math.NaN()
}

// AsInteger narrows either numeric kind to an integer, truncating
// doubles; any other kind yields 0.
func (v Value) AsInteger() int64 {
	switch v.kind {
	case KindDouble:
		return int64(v.f)
	case KindInteger:
		return v.i
	}
	return 0
}

// Equal is strict: values of different kinds are never equal, so the
// integer 1 does not equal the double 1.0. Vec3 comparison follows IEEE,
// so unset (NaN) components compare unequal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindDouble:
		return v.f == o.f
	case KindInteger:
		return v.i == o.i
	case KindString:
		return v.s == o.s
	case KindBoolean:
		return v.b == o.b
	case KindVec3:
		return v.v.X == o.v.X && v.v.Y == o.v.Y && v.v.Z == o.v.Z
	}
	return false
}

// String is the bare display rendering, the one CONCAT and ->STR use.
func (v Value) String() string {
	switch v.kind {
	case KindDouble:
		return fmtDouble(v.f)
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindString:
		return v.s
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindVec3:
		return v.v.String()
	}
	return fmt.Sprintf("value(%d)", int(v.kind))
}

// Tagged is the diagnostic rendering used by .S and the dumps:
// "{integer}: 42".
func (v Value) Tagged() string {
	return fmt.Sprintf("{%v}: %s", v.kind, v.String())
}

func fmtDouble(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}
