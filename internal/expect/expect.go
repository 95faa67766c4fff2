// Package expect parses the expected_result column protocol shared with
// the owners of the test data workbook.
//
// The protocol is a string prefix convention: values beginning with
// "Success" mean the action should land on the post-login screen;
// values of the form "Error: <message>" mean the action should surface
// <message> and stay on the originating screen. The format is
// deliberately preserved as-is; changing it is a data-contract decision
// for the workbook owners, not this package.
package expect

import (
	"fmt"
	"strings"
)

// Kind is the closed set of recognized outcomes.
type Kind int

const (
	Success Kind = iota
	Failure
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is a parsed expected_result value.
type Outcome struct {
	Kind    Kind
	Message string // populated for Failure
}

const errorPrefix = "Error:"

// Parse interprets an expected_result cell. Anything that is neither a
// Success value nor an "Error: <message>" value is an
// unrecognized-format error, so typos in the workbook fail loudly
// instead of silently passing.
func Parse(raw string) (Outcome, error) {
	v := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(v, "Success"):
		return Outcome{Kind: Success}, nil
	case strings.HasPrefix(v, errorPrefix):
		msg := strings.TrimSpace(strings.TrimPrefix(v, errorPrefix))
		if msg == "" {
			return Outcome{}, fmt.Errorf("expected_result %q has an empty error message", raw)
		}
		return Outcome{Kind: Failure, Message: msg}, nil
	default:
		return Outcome{}, fmt.Errorf("unrecognized expected_result format: %q (want \"Success...\" or \"Error: <message>\")", raw)
	}
}
