package signals

import (
	"fmt"
	"strings"
)

// Kind selects the signal variant.
type Kind string

const (
	KindComposite Kind = "composite"
	KindScalar    Kind = "scalar"
)

// Signal is the watched value observed in one run.
type Signal struct {
	Kind  Kind
	Month string
	Year  string
	Value string
}

// Composite builds a month/year signal. Year may be empty.
func Composite(month, year string) Signal {
	return Signal{Kind: KindComposite, Month: strings.TrimSpace(month), Year: strings.TrimSpace(year)}
}

// Scalar builds a single-value signal. An empty value means nothing was found.
func Scalar(value string) Signal {
	return Signal{Kind: KindScalar, Value: strings.TrimSpace(value)}
}

// PrimaryKey returns the component used for equality.
func (s Signal) PrimaryKey() string {
	if s.Kind == KindComposite {
		return strings.TrimSpace(s.Month)
	}
	return strings.TrimSpace(s.Value)
}

// Empty reports whether the signal carries no primary key.
func (s Signal) Empty() bool {
	return s.PrimaryKey() == ""
}

// SameKey compares primary keys byte for byte after trimming.
func (s Signal) SameKey(other Signal) bool {
	return s.PrimaryKey() == other.PrimaryKey()
}

// String renders the signal for logs and notification bodies.
func (s Signal) String() string {
	if s.Kind == KindComposite {
		return fmt.Sprintf("month=%s year=%s", s.Month, s.Year)
	}
	if s.Value == "" {
		return "(none)"
	}
	return s.Value
}
