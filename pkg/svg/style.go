package svg

import "strings"

// PropVerticalAlign is the style property carrying the baseline offset.
const PropVerticalAlign = "vertical-align"

// Declaration is a single "name: value" entry of an inline style.
type Declaration struct {
	Name  string
	Value string
}

// Style is an inline style attribute as an ordered list of declarations.
type Style []Declaration

// ParseStyle splits an inline style attribute into declarations. Order and
// values are kept verbatim; empty declarations are dropped. Semicolons inside
// quoted strings or url(...) are not supported, the converter never emits
// them.
func ParseStyle(s string) Style {
	var st Style
	for _, part := range strings.Split(s, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		st = append(st, Declaration{Name: name, Value: strings.TrimSpace(value)})
	}
	return st
}

// Get returns the value of the named property.
func (st Style) Get(name string) (string, bool) {
	for _, d := range st {
		if strings.EqualFold(d.Name, name) {
			return d.Value, true
		}
	}
	return "", false
}

// Set replaces the value of the named property in place, or appends it.
func (st *Style) Set(name, value string) {
	for i, d := range *st {
		if strings.EqualFold(d.Name, name) {
			(*st)[i].Value = value
			return
		}
	}
	*st = append(*st, Declaration{Name: name, Value: value})
}

// CSSText serializes the style in "name: value;" form, space separated.
func (st Style) CSSText() string {
	parts := make([]string, 0, len(st))
	for _, d := range st {
		parts = append(parts, d.Name+": "+d.Value+";")
	}
	return strings.Join(parts, " ")
}
