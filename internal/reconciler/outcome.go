package reconciler

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Outcome classifies a single run.
type Outcome string

const (
	OutcomeNoPriorState     Outcome = "NO_PRIOR_STATE"
	OutcomeUnchanged        Outcome = "UNCHANGED"
	OutcomeChanged          Outcome = "CHANGED"
	OutcomeExtractionFailed Outcome = "EXTRACTION_FAILED"
)

var titleCaser = cases.Title(language.English)

// Label renders the outcome for humans, e.g. "No Prior State".
func (o Outcome) Label() string {
	if o == "" {
		return "Aborted"
	}
	return titleCaser.String(strings.ReplaceAll(strings.ToLower(string(o)), "_", " "))
}

// Succeeded reports whether the outcome maps to a zero exit status.
func (o Outcome) Succeeded() bool {
	switch o {
	case OutcomeNoPriorState, OutcomeUnchanged, OutcomeChanged:
		return true
	default:
		return false
	}
}
