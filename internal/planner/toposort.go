package planner

import "sort"

// CycleEdge is a dependency edge dropped to break a cycle.
type CycleEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// TopoSort orders codes so every code follows the codes it depends on.
// Roots are visited in the given order and dependencies in lexical order,
// so the result is deterministic. Back edges are dropped and reported.
func TopoSort(codes []string, deps map[string][]string) ([]string, []CycleEdge) {
	var (
		order      []string
		cycles     []CycleEdge
		visited    = make(map[string]bool)
		inProgress = make(map[string]bool)
		members    = make(map[string]bool, len(codes))
	)
	for _, c := range codes {
		members[c] = true
	}

	var visit func(code string)
	visit = func(code string) {
		visited[code] = true
		inProgress[code] = true
		next := append([]string(nil), deps[code]...)
		sort.Strings(next)
		for _, dep := range next {
			if !members[dep] {
				continue
			}
			if inProgress[dep] {
				cycles = append(cycles, CycleEdge{From: code, To: dep})
				continue
			}
			if !visited[dep] {
				visit(dep)
			}
		}
		inProgress[code] = false
		order = append(order, code)
	}

	for _, c := range codes {
		if !visited[c] {
			visit(c)
		}
	}
	return order, cycles
}

// DependencyMap maps each code to the prerequisites it needs from within
// the same set. Completed prerequisites are excluded by the caller passing
// only outstanding codes.
func DependencyMap(cat *Catalog, codes []string, major string, cohort int) map[string][]string {
	members := make(map[string]bool, len(codes))
	for _, c := range codes {
		members[c] = true
	}
	deps := make(map[string][]string, len(codes))
	for _, code := range codes {
		seen := make(map[string]bool)
		for _, g := range cat.PrerequisiteGroups(code) {
			if !g.Blocking() || !g.AppliesTo(major, cohort) {
				continue
			}
			for _, pre := range g.Courses {
				if members[pre] && pre != code && !seen[pre] {
					seen[pre] = true
					deps[code] = append(deps[code], pre)
				}
			}
		}
	}
	return deps
}
