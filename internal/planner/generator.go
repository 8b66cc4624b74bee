package planner

import (
	"fmt"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

const (
	ReasonMaxAttempts = "maximum placement attempts reached"
	ReasonNoSemester  = "no suitable semester within %d years"
)

// SlotResolver confirms a slot can be used, typically by resolving its
// institutional semester mapping. A non-nil error leaves the item unplaced.
type SlotResolver func(domain.SemesterSlot) error

type GenerateInput struct {
	Profile *domain.StudentProfile
	Catalog *Catalog
	Policy  Policy
	// States holds the student's attempts after planned ones were cleared.
	States         []AttemptState
	Remaining      []RemainingItem
	Start          domain.SemesterSlot
	BalanceCredits bool
	ResolveSlot    SlotResolver
}

type Placement struct {
	Item RemainingItem       `json:"item"`
	Slot domain.SemesterSlot `json:"slot"`
}

type Unplaced struct {
	Item   RemainingItem `json:"item"`
	Reason string        `json:"reason"`
}

type GenerateResult struct {
	Placements []Placement
	Unplaced   []Unplaced
	Cycles     []CycleEdge
	// Loads is the credit total per slot key after placement, including
	// existing non-planned attempts.
	Loads map[int]float64
}

type generator struct {
	in     GenerateInput
	passed map[string]bool
	timed  map[string]domain.SemesterSlot
	loads  map[int]float64
	result GenerateResult
}

// GeneratePlan places remaining requirements greedily, semester by
// semester. Retakes go first, then required courses in prerequisite order,
// then elective slots.
func GeneratePlan(in GenerateInput) GenerateResult {
	g := &generator{
		in:     in,
		passed: make(map[string]bool),
		timed:  make(map[string]domain.SemesterSlot),
		loads:  make(map[int]float64),
	}
	for _, s := range in.States {
		g.loads[s.Attempt.Slot.Key()] += s.Credits
		if s.Attempt.IsPlaceholder() {
			continue
		}
		if s.Passed {
			g.passed[s.Attempt.CourseCode] = true
		} else if s.InProgress() {
			g.timed[s.Attempt.CourseCode] = s.Attempt.Slot
		}
	}

	var retakes, required, electives []RemainingItem
	for _, item := range in.Remaining {
		switch item.Kind {
		case KindRetake:
			retakes = append(retakes, item)
		case KindRequired:
			required = append(required, item)
		default:
			electives = append(electives, item)
		}
	}
	required = g.orderRequired(required)

	cursor := in.Start
	for _, item := range retakes {
		if slot, ok := g.placeCourse(item, cursor, true); ok {
			cursor = slot.NextRegular()
		}
	}
	for _, item := range required {
		from := cursor
		if rec, ok := item.RecommendedSlot(); ok && !rec.Before(in.Start) && rec.After(from) {
			from = rec
		}
		g.placeCourse(item, from, false)
	}
	for _, item := range electives {
		g.placeElective(item)
	}

	g.result.Loads = g.loads
	return g.result
}

func (g *generator) orderRequired(items []RemainingItem) []RemainingItem {
	codes := make([]string, len(items))
	byCode := make(map[string]RemainingItem, len(items))
	for i, item := range items {
		codes[i] = item.CourseCode
		byCode[item.CourseCode] = item
	}
	deps := DependencyMap(g.in.Catalog, codes, g.in.Profile.MajorCode, g.in.Profile.CohortYear)
	order, cycles := TopoSort(codes, deps)
	g.result.Cycles = cycles

	out := make([]RemainingItem, len(order))
	for i, code := range order {
		out[i] = byCode[code]
	}
	return out
}

func (g *generator) available(target domain.SemesterSlot) map[string]bool {
	out := make(map[string]bool, len(g.passed)+len(g.timed))
	for code := range g.passed {
		out[code] = true
	}
	for code, slot := range g.timed {
		if slot.Before(target) {
			out[code] = true
		}
	}
	return out
}

// placeCourse walks forward from `from` until the course fits. Retakes
// ignore the credit ceiling.
func (g *generator) placeCourse(item RemainingItem, from domain.SemesterSlot, retake bool) (domain.SemesterSlot, bool) {
	course, ok := g.in.Catalog.Course(item.CourseCode)
	if !ok {
		g.unplaced(item, fmt.Sprintf("course %s not in catalog", item.CourseCode))
		return domain.SemesterSlot{}, false
	}
	profile := g.in.Profile
	groups := g.in.Catalog.PrerequisiteGroups(item.CourseCode)

	slot := from
	step := domain.SemesterSlot.NextRegular
	if course.SummerOnly() {
		if !slot.IsSummer() {
			slot = domain.NewSlot(slot.Year, domain.TermSummer)
		}
		step = func(s domain.SemesterSlot) domain.SemesterSlot { return domain.NewSlot(s.Year+1, domain.TermSummer) }
	} else if slot.IsSummer() {
		slot = slot.NextRegular()
	}

	var lastErr error
	for attempt := 0; attempt < g.in.Policy.MaxPlacementAttempts; attempt, slot = attempt+1, step(slot) {
		if slot.Year > g.in.Policy.AbsoluteMaxYears {
			g.unplaced(item, g.noSemesterReason(lastErr))
			return domain.SemesterSlot{}, false
		}
		if !course.OfferedIn(slot.Term) {
			continue
		}
		if !CheckPrerequisites(groups, g.available(slot), profile.MajorCode, profile.CohortYear).IsMet {
			continue
		}
		limit := g.in.Policy.CreditLimit(profile.MajorCode, slot)
		if !retake && g.in.BalanceCredits && g.loads[slot.Key()]+course.Credits > limit {
			continue
		}
		if err := g.resolve(slot); err != nil {
			lastErr = err
			continue
		}
		g.place(item, slot, course.Credits)
		return slot, true
	}
	g.unplaced(item, ReasonMaxAttempts)
	return domain.SemesterSlot{}, false
}

// placeElective uses a looser search: from program year ElectiveStartYear,
// fall then spring, first semester with room.
func (g *generator) placeElective(item RemainingItem) {
	p := g.in.Policy
	startYear := max(g.in.Start.Year, p.ElectiveStartYear)
	var lastErr error
	for year := startYear; year <= p.AbsoluteMaxYears; year++ {
		for _, term := range []domain.Term{domain.TermFall, domain.TermSpring} {
			slot := domain.NewSlot(year, term)
			if slot.Before(g.in.Start) {
				continue
			}
			limit := p.CreditLimit(g.in.Profile.MajorCode, slot)
			if g.in.BalanceCredits && g.loads[slot.Key()]+item.Credits > limit {
				continue
			}
			if err := g.resolve(slot); err != nil {
				lastErr = err
				continue
			}
			g.place(item, slot, item.Credits)
			return
		}
	}
	g.unplaced(item, g.noSemesterReason(lastErr))
}

func (g *generator) resolve(slot domain.SemesterSlot) error {
	if g.in.ResolveSlot == nil {
		return nil
	}
	return g.in.ResolveSlot(slot)
}

func (g *generator) place(item RemainingItem, slot domain.SemesterSlot, credits float64) {
	g.loads[slot.Key()] += credits
	if item.CourseCode != "" {
		g.timed[item.CourseCode] = slot
	}
	g.result.Placements = append(g.result.Placements, Placement{Item: item, Slot: slot})
}

func (g *generator) unplaced(item RemainingItem, reason string) {
	g.result.Unplaced = append(g.result.Unplaced, Unplaced{Item: item, Reason: reason})
}

func (g *generator) noSemesterReason(lastErr error) string {
	reason := fmt.Sprintf(ReasonNoSemester, g.in.Policy.AbsoluteMaxYears)
	if lastErr != nil {
		reason += ": " + lastErr.Error()
	}
	return reason
}

// RetakeSlots reports slot keys holding a placed retake.
func (r GenerateResult) RetakeSlots() map[int]bool {
	out := make(map[int]bool)
	for _, p := range r.Placements {
		if p.Item.Kind == KindRetake {
			out[p.Slot.Key()] = true
		}
	}
	return out
}
