package extractor

import (
	"fmt"
	"strings"

	"pagewatch/internal/services"
)

// Error describes why a signal could not be extracted. It matches
// services.ErrExtraction under errors.Is.
type Error struct {
	URL        string
	Field      string
	StatusCode int
	Op         string
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("extract")
	if e.Op != "" {
		b.WriteString(" ")
		b.WriteString(e.Op)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " %s", e.Field)
	}
	if e.URL != "" {
		fmt.Fprintf(&b, " from %s", e.URL)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{services.ErrExtraction}
	}
	return []error{services.ErrExtraction, e.Err}
}
