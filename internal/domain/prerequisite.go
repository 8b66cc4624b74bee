package domain

// PrerequisiteGroup is a named set of courses that must be satisfied before
// CourseCode may be taken.
type PrerequisiteGroup struct {
	ID         string
	Key        string
	CourseCode string
	Name       string
	ExternalOp LogicOp
	InternalOp LogicOp
	// IsConcurrent groups may be taken in the same term and never block placement.
	IsConcurrent bool
	// IsRecommended groups are advisory only.
	IsRecommended    bool
	MajorRestriction string
	CohortStart      *int
	CohortEnd        *int
	SortOrder        int
	Courses          []string
}

// Blocking reports whether the group can fail a prerequisite check.
func (g *PrerequisiteGroup) Blocking() bool {
	return !g.IsConcurrent && !g.IsRecommended
}

// AppliesTo reports whether the group is in force for a student with the
// given major and cohort. An empty major matches every restriction.
func (g *PrerequisiteGroup) AppliesTo(major string, cohort int) bool {
	if g.MajorRestriction != "" && major != "" && g.MajorRestriction != major {
		return false
	}
	return inCohortRange(cohort, g.CohortStart, g.CohortEnd)
}

func inCohortRange(cohort int, from, until *int) bool {
	if cohort == 0 {
		return true
	}
	if from != nil && cohort < *from {
		return false
	}
	if until != nil && cohort > *until {
		return false
	}
	return true
}
