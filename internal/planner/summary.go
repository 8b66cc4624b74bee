package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

type SemesterSummary struct {
	Slot       domain.SemesterSlot `json:"slot"`
	Credits    float64             `json:"credits"`
	Limit      float64             `json:"limit"`
	Courses    []string            `json:"courses"`
	Overloaded bool                `json:"overloaded"`
}

// Summary describes the outcome of a generation run.
type Summary struct {
	PlacedCount int               `json:"placedCount"`
	Retakes     int               `json:"retakes"`
	Required    int               `json:"required"`
	Electives   int               `json:"electives"`
	Unplaced    []Unplaced        `json:"unplaced"`
	Semesters   []SemesterSummary `json:"semesters"`
	Cycles      []CycleEdge       `json:"cycles,omitempty"`
	Message     string            `json:"message"`
}

func Summarize(res GenerateResult, profile *domain.StudentProfile, policy Policy) Summary {
	s := Summary{
		PlacedCount: len(res.Placements),
		Unplaced:    res.Unplaced,
		Cycles:      res.Cycles,
	}

	bySlot := make(map[int]*SemesterSummary)
	for _, p := range res.Placements {
		switch p.Item.Kind {
		case KindRetake:
			s.Retakes++
		case KindRequired:
			s.Required++
		default:
			s.Electives++
		}
		sem, ok := bySlot[p.Slot.Key()]
		if !ok {
			limit := policy.CreditLimit(profile.MajorCode, p.Slot)
			sem = &SemesterSummary{Slot: p.Slot, Limit: limit, Credits: res.Loads[p.Slot.Key()]}
			sem.Overloaded = sem.Credits > limit
			bySlot[p.Slot.Key()] = sem
		}
		sem.Courses = append(sem.Courses, p.Item.Label())
	}
	for _, sem := range bySlot {
		s.Semesters = append(s.Semesters, *sem)
	}
	sort.Slice(s.Semesters, func(i, j int) bool {
		return s.Semesters[i].Slot.Before(s.Semesters[j].Slot)
	})

	s.Message = summaryMessage(s)
	return s
}

func summaryMessage(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Successfully added %d courses to your plan across %d semesters.", s.PlacedCount, len(s.Semesters))
	if s.Retakes > 0 {
		fmt.Fprintf(&b, " Includes %d %s.", s.Retakes, plural(s.Retakes, "retake", "retakes"))
	}
	if s.Electives > 0 {
		fmt.Fprintf(&b, " Added %d elective %s to fill category requirements.", s.Electives, plural(s.Electives, "placeholder", "placeholders"))
	}
	unplacedRequired := 0
	for _, u := range s.Unplaced {
		if u.Item.Kind != KindElective {
			unplacedRequired++
		}
	}
	if unplacedRequired > 0 {
		fmt.Fprintf(&b, " %d required %s could not be placed.", unplacedRequired, plural(unplacedRequired, "course", "courses"))
	}
	if n := len(s.Unplaced) - unplacedRequired; n > 0 {
		fmt.Fprintf(&b, " %d elective %s could not be placed.", n, plural(n, "placeholder", "placeholders"))
	}
	overloaded := 0
	for _, sem := range s.Semesters {
		if sem.Overloaded {
			overloaded++
		}
	}
	if overloaded > 0 {
		fmt.Fprintf(&b, " %d %s exceed the credit limit.", overloaded, plural(overloaded, "semester", "semesters"))
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
