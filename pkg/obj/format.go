package obj

import (
	"math"
	"strconv"
	"strings"
)

// Epsilon is the tolerance used when comparing directive values.
const Epsilon = 1e-5

// FloatEqual reports whether a and b are equal within Epsilon.
func FloatEqual(a, b float32) bool {
	return math.Abs(float64(a)-float64(b)) <= Epsilon
}

// FormatFloat renders a value the shortest way that reads back to the same float32.
func FormatFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if s == "-0" {
		return "0"
	}
	return s
}

// Ref returns the text written for a dataref or command name.
func Ref(name string) string {
	if name == "" {
		return NoneRef
	}
	return name
}

// Line joins directive fields with single spaces, dropping a trailing empty field.
func Line(fields ...string) string {
	return strings.TrimRight(strings.Join(fields, " "), " ")
}

// Point3 is a position or direction in object space.
type Point3 struct {
	X, Y, Z float32
}

// Equal compares two points within Epsilon.
func (p Point3) Equal(o Point3) bool {
	return FloatEqual(p.X, o.X) && FloatEqual(p.Y, o.Y) && FloatEqual(p.Z, o.Z)
}

func (p Point3) fields() []string {
	return []string{FormatFloat(p.X), FormatFloat(p.Y), FormatFloat(p.Z)}
}

// String renders the point as three space separated values.
func (p Point3) String() string {
	return strings.Join(p.fields(), " ")
}
