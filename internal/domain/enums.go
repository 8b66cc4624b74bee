package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Term is the position of a semester within a program year.
// Summer is ordered after spring.
type Term int

const (
	TermFall   Term = 1
	TermSpring Term = 2
	TermSummer Term = 3
)

func (t Term) String() string {
	switch t {
	case TermFall:
		return "fall"
	case TermSpring:
		return "spring"
	case TermSummer:
		return "summer"
	default:
		return "term(" + strconv.Itoa(int(t)) + ")"
	}
}

// Label returns the capitalized term name.
func (t Term) Label() string {
	s := t.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

func (t Term) Valid() bool {
	return t == TermFall || t == TermSpring || t == TermSummer
}

// ParseTerm accepts a term name ("fall", "Spring", "summer") or its number.
func ParseTerm(s string) (Term, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fall", "1":
		return TermFall, nil
	case "spring", "2":
		return TermSpring, nil
	case "summer", "3":
		return TermSummer, nil
	}
	return 0, fmt.Errorf("invalid term %q (want fall, spring or summer)", s)
}

// UnmarshalJSON accepts either the term number or its name.
func (t *Term) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*t = Term(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("term must be a number or a name: %w", err)
	}
	parsed, err := ParseTerm(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type AttemptStatus string

const (
	AttemptPlanned        AttemptStatus = "planned"
	AttemptEnrolled       AttemptStatus = "enrolled"
	AttemptCompleted      AttemptStatus = "completed"
	AttemptFailed         AttemptStatus = "failed"
	AttemptRetakeRequired AttemptStatus = "retake_required"
	AttemptDropped        AttemptStatus = "dropped"
)

// ValidAttemptStatuses is the canonical set of accepted attempt status strings.
var ValidAttemptStatuses = map[string]bool{
	"planned": true, "enrolled": true, "completed": true,
	"failed": true, "retake_required": true, "dropped": true,
}

// LogicOp combines prerequisite courses within a group, or groups with
// their siblings.
type LogicOp string

const (
	LogicAll LogicOp = "AND"
	LogicAny LogicOp = "OR"
)

// ParseLogicOp normalizes ALL/AND and ANY/OR spellings. Empty input yields fallback.
func ParseLogicOp(s string, fallback LogicOp) (LogicOp, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return fallback, nil
	case "AND", "ALL":
		return LogicAll, nil
	case "OR", "ANY":
		return LogicAny, nil
	}
	return "", fmt.Errorf("invalid logic operator %q (want AND or OR)", s)
}

// Major groups used by categorization rows.
const (
	MajorGroupAll            = "ALL"
	MajorGroupEngineering    = "ENG"
	MajorGroupNonEngineering = "NON-ENG"
)
