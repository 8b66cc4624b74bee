package domain

import "fmt"

// SemesterSlot is a scheduling coordinate relative to the student's program
// rather than the institution's calendar.
type SemesterSlot struct {
	Year int  `json:"year"`
	Term Term `json:"semester"`
}

func NewSlot(year int, term Term) SemesterSlot {
	return SemesterSlot{Year: year, Term: term}
}

// Key is a monotonically comparable ordering key: year first, then term
// with summer last.
func (s SemesterSlot) Key() int {
	return s.Year*10 + int(s.Term)
}

func (s SemesterSlot) Before(o SemesterSlot) bool { return s.Key() < o.Key() }

func (s SemesterSlot) After(o SemesterSlot) bool { return s.Key() > o.Key() }

// Compare returns -1, 0 or 1.
func (s SemesterSlot) Compare(o SemesterSlot) int {
	switch {
	case s.Key() < o.Key():
		return -1
	case s.Key() > o.Key():
		return 1
	}
	return 0
}

func (s SemesterSlot) IsSummer() bool { return s.Term == TermSummer }

// NextRegular advances fall to spring and spring (or summer) to the next fall.
func (s SemesterSlot) NextRegular() SemesterSlot {
	if s.Term == TermFall {
		return SemesterSlot{Year: s.Year, Term: TermSpring}
	}
	return SemesterSlot{Year: s.Year + 1, Term: TermFall}
}

// Next advances through every term including summer.
func (s SemesterSlot) Next() SemesterSlot {
	if s.Term == TermSummer {
		return SemesterSlot{Year: s.Year + 1, Term: TermFall}
	}
	return SemesterSlot{Year: s.Year, Term: s.Term + 1}
}

// Validate checks the slot lies within program years 1..maxYear.
func (s SemesterSlot) Validate(maxYear int) error {
	if !s.Term.Valid() {
		return fmt.Errorf("invalid semester %d", s.Term)
	}
	if s.Year < 1 || (maxYear > 0 && s.Year > maxYear) {
		return fmt.Errorf("year %d out of range 1..%d", s.Year, maxYear)
	}
	return nil
}

func (s SemesterSlot) String() string {
	return fmt.Sprintf("Year %d %s", s.Year, s.Term.Label())
}
