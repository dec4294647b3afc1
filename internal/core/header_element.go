package core

import (
	"sort"
	"strings"
)

// HeaderElement is one parsed clause of a bundle manifest header: an
// ordered list of raw values plus attribute (key=value) and directive
// (key:=value) mappings. Built append-only by the manifest parser and
// treated as immutable afterwards.
type HeaderElement struct {
	values     []string
	attributes map[string]string
	directives map[string]string
}

func NewHeaderElement() *HeaderElement {
	return &HeaderElement{
		attributes: map[string]string{},
		directives: map[string]string{},
	}
}

func (e *HeaderElement) AddValue(value string) {
	e.values = append(e.values, value)
}

func (e *HeaderElement) AddAttribute(name string, value string) {
	e.attributes[name] = value
}

func (e *HeaderElement) AddDirective(name string, value string) {
	e.directives[name] = value
}

// Values returns the raw clause values in parse order. Duplicates are
// allowed and order is significant.
func (e *HeaderElement) Values() []string {
	return append([]string(nil), e.values...)
}

func (e *HeaderElement) Attribute(name string) string {
	return e.attributes[name]
}

func (e *HeaderElement) Attributes() map[string]string {
	out := make(map[string]string, len(e.attributes))
	for k, v := range e.attributes {
		out[k] = v
	}
	return out
}

func (e *HeaderElement) Directive(name string) string {
	return e.directives[name]
}

func (e *HeaderElement) Directives() map[string]string {
	out := make(map[string]string, len(e.directives))
	for k, v := range e.directives {
		out[k] = v
	}
	return out
}

// Equal reports structural equality: values as a set, attributes and
// directives key/value equal.
func (e *HeaderElement) Equal(other *HeaderElement) bool {
	if other == nil {
		return false
	}
	if len(e.values) != len(other.values) {
		return false
	}
	for _, value := range e.values {
		if !contains(other.values, value) {
			return false
		}
	}
	if !mapsEqual(e.directives, other.directives) {
		return false
	}
	return mapsEqual(e.attributes, other.attributes)
}

// String renders the canonical clause form: values joined by ";", then
// ";name:=value" per directive, then ";name=value" per attribute.
func (e *HeaderElement) String() string {
	var sb strings.Builder
	for _, value := range e.values {
		if sb.Len() > 0 {
			sb.WriteString(";")
		}
		sb.WriteString(value)
	}
	for _, name := range sortedKeys(e.directives) {
		sb.WriteString(";")
		sb.WriteString(name)
		sb.WriteString(":=")
		sb.WriteString(e.directives[name])
	}
	for _, name := range sortedKeys(e.attributes) {
		sb.WriteString(";")
		sb.WriteString(name)
		sb.WriteString("=")
		sb.WriteString(e.attributes[name])
	}
	return sb.String()
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mapsEqual(a map[string]string, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		other, ok := b[k]
		if !ok || other != v {
			return false
		}
	}
	return true
}
