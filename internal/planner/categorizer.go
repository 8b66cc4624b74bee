package planner

import (
	"sort"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

var africanaKeywords = []string{"africa", "ghana", "politics"}

// CategorizedAttempt is an attempt with its assigned requirement category.
type CategorizedAttempt struct {
	AttemptState
	Category  string
	Candidate string
	Parent    string
	Required  bool
}

// BestCategorization picks the categorization row that most specifically
// targets the student: exact major, then ENG/NON-ENG group, then ALL.
func BestCategorization(cat *Catalog, profile *domain.StudentProfile, policy Policy, code string) (domain.Categorization, bool) {
	var (
		best     domain.Categorization
		bestRank = -1
	)
	engineering := policy.IsEngineering(profile.MajorCode)
	for _, row := range cat.Categorizations(code) {
		if !row.AppliesToCohort(profile.CohortYear) || !matchesTrack(row, profile) {
			continue
		}
		rank := row.MatchRank(profile.MajorCode, engineering)
		if rank < 0 {
			continue
		}
		if bestRank < 0 || rank < bestRank || (rank == bestRank && row.CategoryName < best.CategoryName) {
			best, bestRank = row, rank
		}
	}
	return best, bestRank >= 0
}

func matchesTrack(row domain.Categorization, profile *domain.StudentProfile) bool {
	if row.MathTrack != "" && !strings.EqualFold(row.MathTrack, profile.MathTrack) {
		return false
	}
	if row.CapstoneOption != "" && !strings.EqualFold(row.CapstoneOption, profile.CapstoneOption) {
		return false
	}
	return true
}

func isAfricanaTitle(title string) bool {
	t := strings.ToLower(title)
	for _, kw := range africanaKeywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

// quotaTracker counts assigned courses and credits per category against the
// student's requirements.
type quotaTracker struct {
	reqs    map[string]domain.DegreeRequirement
	courses map[string]int
	credits map[string]float64
}

func newQuotaTracker(reqs []domain.DegreeRequirement) *quotaTracker {
	q := &quotaTracker{
		reqs:    make(map[string]domain.DegreeRequirement, len(reqs)),
		courses: make(map[string]int),
		credits: make(map[string]float64),
	}
	for _, r := range reqs {
		q.reqs[r.CategoryName] = r
	}
	return q
}

// hasRoom reports whether category still accepts courses. Categories with
// no requirement always do.
func (q *quotaTracker) hasRoom(category string) bool {
	r, ok := q.reqs[category]
	if !ok {
		return true
	}
	if r.MinCourses > 0 {
		return q.courses[category] < r.MinCourses
	}
	if r.MinCredits > 0 {
		return q.credits[category] < r.MinCredits
	}
	return false
}

// africanaOpen reports whether the Africana quota has room. Without an
// explicit requirement only the first matching course counts.
func (q *quotaTracker) africanaOpen() bool {
	if _, ok := q.reqs[domain.CategoryAfricana]; ok {
		return q.hasRoom(domain.CategoryAfricana)
	}
	return q.courses[domain.CategoryAfricana] == 0
}

func (q *quotaTracker) capped(category string) bool {
	r, ok := q.reqs[category]
	return ok && r.EnforceMax
}

func (q *quotaTracker) add(category string, credits float64) {
	q.courses[category]++
	q.credits[category] += credits
}

// Categorize assigns each attempt exactly one category. Attempts that count
// toward progress are processed earliest first:
//   - required courses keep their catalog category;
//   - Africana-titled courses take the Africana quota while it has room;
//   - other courses take their candidate category while it has room;
//   - non-major elective overflow goes to a capped sub-category (e.g. Free
//     Elective) with room;
//   - anything left stays in its candidate category.
//
// Failed and superseded attempts keep their candidate without consuming quota.
func Categorize(states []AttemptState, cat *Catalog, profile *domain.StudentProfile, policy Policy) []CategorizedAttempt {
	reqs := EffectiveRequirements(cat, profile)
	q := newQuotaTracker(reqs)

	var sinks []string
	for _, r := range reqs {
		c := cat.Category(r.CategoryName)
		if r.EnforceMax && c.IsSub() && r.CategoryName != domain.CategoryAfricana {
			sinks = append(sinks, r.CategoryName)
		}
	}
	sort.Strings(sinks)

	ordered := make([]AttemptState, len(states))
	copy(ordered, states)
	SortStates(ordered)

	out := make([]CategorizedAttempt, 0, len(ordered))
	for _, s := range ordered {
		ca := CategorizedAttempt{AttemptState: s}
		ca.Candidate, ca.Required = candidateCategory(cat, profile, policy, &s.Attempt)
		ca.Category = ca.Candidate

		if s.Counts() && !s.Attempt.IsPlaceholder() && !ca.Required {
			ca.Category = assignElective(q, sinks, ca.Candidate, s.Attempt.Title(s.Course), sinkEligible(cat, ca.Candidate))
		}
		if s.Counts() {
			q.add(ca.Category, s.Credits)
		}
		ca.Parent = cat.Category(ca.Category).Parent
		out = append(out, ca)
	}
	return out
}

func assignElective(q *quotaTracker, sinks []string, candidate, title string, toSink bool) string {
	if isAfricanaTitle(title) && q.africanaOpen() {
		return domain.CategoryAfricana
	}
	if q.hasRoom(candidate) {
		return candidate
	}
	for _, sink := range sinks {
		if toSink && sink != candidate && q.hasRoom(sink) {
			return sink
		}
	}
	if q.capped(candidate) {
		return domain.CategoryNonMajorElective
	}
	return candidate
}

// sinkEligible reports whether overflow from candidate may fill a capped
// sub-category. Only non-major electives qualify.
func sinkEligible(cat *Catalog, candidate string) bool {
	return candidate == domain.CategoryNonMajorElective ||
		cat.Category(candidate).Parent == domain.ParentLiberalArtsCore
}

func candidateCategory(cat *Catalog, profile *domain.StudentProfile, policy Policy, a *domain.Attempt) (string, bool) {
	if a.IsPlaceholder() {
		return domain.CoalesceStr(a.CategoryName, domain.CategoryNonMajorElective), false
	}
	if row, ok := BestCategorization(cat, profile, policy, a.CourseCode); ok {
		return row.CategoryName, row.IsRequired
	}
	return domain.CoalesceStr(a.CategoryName, domain.CategoryNonMajorElective), false
}

// EffectiveRequirements returns the student's requirements with
// profile-dependent adjustments applied: the Applied Project capstone adds
// one Major Electives course.
func EffectiveRequirements(cat *Catalog, profile *domain.StudentProfile) []domain.DegreeRequirement {
	reqs := cat.Requirements(profile.MajorCode, profile.CohortYear)
	out := make([]domain.DegreeRequirement, len(reqs))
	copy(out, reqs)
	if strings.EqualFold(profile.CapstoneOption, domain.CapstoneAppliedProject) {
		for i := range out {
			if out[i].CategoryName == domain.CategoryMajorElectives {
				out[i].MinCourses++
				out[i].MinCredits++
			}
		}
	}
	return out
}
