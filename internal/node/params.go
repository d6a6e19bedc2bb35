package node

import "github.com/spf13/cast"

// Params is the parameter map configured on a node. Values arrive as
// decoded JSON, so numeric lookups tolerate float64 as well as int.
type Params map[string]any

// String returns the string at key, or def when absent or empty.
func (p Params) String(key, def string) string {
	v, ok := p[key]
	if !ok {
		return def
	}
	s := cast.ToString(v)
	if s == "" {
		return def
	}
	return s
}

// Int returns the integer at key, or def when absent.
func (p Params) Int(key string, def int) int {
	v, ok := p[key]
	if !ok {
		return def
	}
	return cast.ToInt(v)
}

// Float returns the float at key, or def when absent.
func (p Params) Float(key string, def float64) float64 {
	v, ok := p[key]
	if !ok {
		return def
	}
	return cast.ToFloat64(v)
}
