package domain

import "strings"

type Course struct {
	Code       string
	Title      string
	Department string
	Credits    float64
	Level      int
	// Offered lists the terms the course normally runs in. Empty means
	// no known pattern, which is treated as offered every term.
	Offered []Term
	Active  bool
}

func (c *Course) OfferedIn(t Term) bool {
	if len(c.Offered) == 0 {
		return true
	}
	for _, o := range c.Offered {
		if o == t {
			return true
		}
	}
	return false
}

func (c *Course) SummerOnly() bool {
	return len(c.Offered) == 1 && c.Offered[0] == TermSummer
}

// OfferingPattern renders Offered as a comma-separated term list.
func (c *Course) OfferingPattern() string {
	parts := make([]string, len(c.Offered))
	for i, t := range c.Offered {
		parts[i] = t.String()
	}
	return strings.Join(parts, ",")
}

// ParseOfferingPattern is the inverse of OfferingPattern.
func ParseOfferingPattern(s string) ([]Term, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []Term
	for _, part := range strings.Split(s, ",") {
		t, err := ParseTerm(part)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Label is "CODE - Title".
func (c *Course) Label() string {
	return c.Code + " - " + c.Title
}
