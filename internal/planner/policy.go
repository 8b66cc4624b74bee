package planner

import (
	"strings"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// Policy carries the institutional limits the engine enforces.
type Policy struct {
	MaxCredits            float64
	MaxCreditsEngineering float64
	MaxCreditsSummer      float64
	RecommendedYears      int
	AbsoluteMaxYears      int
	EngineeringMajors     []string
	MaxPlacementAttempts  int
	ElectiveStartYear     int
	ElectiveSlotCredits   float64
}

// DefaultPolicy returns the standard credit and horizon limits.
func DefaultPolicy() Policy {
	return Policy{
		MaxCredits:            5,
		MaxCreditsEngineering: 6,
		MaxCreditsSummer:      2,
		RecommendedYears:      4,
		AbsoluteMaxYears:      8,
		EngineeringMajors:     []string{"CE", "EE", "ME"},
		MaxPlacementAttempts:  32,
		ElectiveStartYear:     2,
		ElectiveSlotCredits:   1,
	}
}

func (p Policy) IsEngineering(major string) bool {
	for _, m := range p.EngineeringMajors {
		if strings.EqualFold(m, major) {
			return true
		}
	}
	return false
}

// CreditLimit is the per-semester ceiling for a major in the given slot.
func (p Policy) CreditLimit(major string, slot domain.SemesterSlot) float64 {
	if slot.IsSummer() {
		return p.MaxCreditsSummer
	}
	if p.IsEngineering(major) {
		return p.MaxCreditsEngineering
	}
	return p.MaxCredits
}
