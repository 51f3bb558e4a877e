package thermo

import (
	"fmt"
	"strings"
)

// Method selects the empirical formula used for saturation vapor pressure.
type Method string

const (
	MethodBuck       Method = "buck"
	MethodMagnus     Method = "magnus"
	MethodTetens     Method = "tetens"
	MethodAntoine    Method = "antoine"
	MethodGoffGratch Method = "goff-gratch"
)

// DefaultMethod is used wherever no method is specified.
const DefaultMethod = MethodBuck

// Methods lists every supported formula, in a stable order.
func Methods() []Method {
	return []Method{MethodBuck, MethodMagnus, MethodTetens, MethodAntoine, MethodGoffGratch}
}

// Valid reports whether m names a known formula.
func (m Method) Valid() bool {
	switch m {
	case MethodBuck, MethodMagnus, MethodTetens, MethodAntoine, MethodGoffGratch:
		return true
	}
	return false
}

// ParseMethod maps a user-supplied string to a Method.
// The empty string maps to DefaultMethod; unknown names are an error.
func ParseMethod(s string) (Method, error) {
	t := Method(strings.ToLower(strings.TrimSpace(s)))
	if t == "" {
		return DefaultMethod, nil
	}
	if !t.Valid() {
		return "", fmt.Errorf("unknown vapor pressure method %q", s)
	}
	return t, nil
}
