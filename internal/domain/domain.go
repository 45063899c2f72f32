package domain

import (
	"fmt"
	"strings"
)

// Domain selects the operator semantics used to evaluate an expression.
type Domain int

const (
	Strings Domain = iota
	Algebra
	Sets
	Boolean
)

// Domains lists every domain in declaration order.
var Domains = []Domain{Strings, Algebra, Sets, Boolean}

func (d Domain) String() string {
	switch d {
	case Strings:
		return "Strings"
	case Algebra:
		return "Algebra"
	case Sets:
		return "Sets"
	case Boolean:
		return "Boolean"
	default:
		return fmt.Sprintf("Domain(%d)", int(d))
	}
}

// ElementName is the markup element that opens a scope of this domain.
func (d Domain) ElementName() string {
	return strings.ToLower(d.String())
}

// Valid reports whether d is one of the four known domains.
func (d Domain) Valid() bool {
	return d >= Strings && d <= Boolean
}

// ParseDomain maps a case-insensitive element or display name to a Domain.
func ParseDomain(s string) (Domain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strings":
		return Strings, nil
	case "algebra":
		return Algebra, nil
	case "sets":
		return Sets, nil
	case "boolean":
		return Boolean, nil
	default:
		return 0, fmt.Errorf("unknown domain %q (expected strings|algebra|sets|boolean): %w", s, ErrInvalidConfig)
	}
}

func (d Domain) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", d)
	}
	return []byte(d.ElementName()), nil
}

func (d *Domain) UnmarshalText(b []byte) error {
	v, err := ParseDomain(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ElementMap resolves markup element names to the domain they open.
// Names not present in the map do not open a scope.
type ElementMap map[string]Domain

// DefaultElements returns the four built-in element names.
func DefaultElements() ElementMap {
	m := make(ElementMap, len(Domains))
	for _, d := range Domains {
		m[d.ElementName()] = d
	}
	return m
}

// Lookup returns the domain opened by the element name, if any.
func (m ElementMap) Lookup(name string) (Domain, bool) {
	d, ok := m[name]
	return d, ok
}
