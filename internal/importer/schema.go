package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CatalogSchema is the top-level structure of a catalog seed file.
type CatalogSchema struct {
	Courses           []CourseImport           `json:"courses" yaml:"courses"`
	Categories        []CategoryImport         `json:"categories" yaml:"categories"`
	Requirements      []RequirementImport      `json:"requirements" yaml:"requirements"`
	Categorizations   []CategorizationImport   `json:"categorizations" yaml:"categorizations"`
	GradeRequirements []GradeRequirementImport `json:"grade_requirements,omitempty" yaml:"grade_requirements,omitempty"`
	Semesters         []SemesterImport         `json:"semesters" yaml:"semesters"`
}

type CourseImport struct {
	Code          string              `json:"code" yaml:"code"`
	Title         string              `json:"title" yaml:"title"`
	Department    string              `json:"department,omitempty" yaml:"department,omitempty"`
	Credits       float64             `json:"credits" yaml:"credits"`
	Level         int                 `json:"level,omitempty" yaml:"level,omitempty"`
	Offered       []string            `json:"offered,omitempty" yaml:"offered,omitempty"`
	Active        *bool               `json:"active,omitempty" yaml:"active,omitempty"`
	Prerequisites []PrerequisiteGroup `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty"`
}

// PrerequisiteGroup lists courses combined by internal_op. Groups on one
// course combine by external_op.
type PrerequisiteGroup struct {
	Key              string   `json:"key,omitempty" yaml:"key,omitempty"`
	Name             string   `json:"name,omitempty" yaml:"name,omitempty"`
	Courses          []string `json:"courses" yaml:"courses"`
	ExternalOp       string   `json:"external_op,omitempty" yaml:"external_op,omitempty"`
	InternalOp       string   `json:"internal_op,omitempty" yaml:"internal_op,omitempty"`
	Concurrent       bool     `json:"concurrent,omitempty" yaml:"concurrent,omitempty"`
	Recommended      bool     `json:"recommended,omitempty" yaml:"recommended,omitempty"`
	MajorRestriction string   `json:"major_restriction,omitempty" yaml:"major_restriction,omitempty"`
	CohortStart      *int     `json:"cohort_start,omitempty" yaml:"cohort_start,omitempty"`
	CohortEnd        *int     `json:"cohort_end,omitempty" yaml:"cohort_end,omitempty"`
}

type CategoryImport struct {
	Name          string `json:"name" yaml:"name"`
	Parent        string `json:"parent,omitempty" yaml:"parent,omitempty"`
	SubcategoryOf string `json:"subcategory_of,omitempty" yaml:"subcategory_of,omitempty"`
	DisplayOrder  int    `json:"display_order,omitempty" yaml:"display_order,omitempty"`
	Color         string `json:"color,omitempty" yaml:"color,omitempty"`
}

type RequirementImport struct {
	Major       string   `json:"major" yaml:"major"`
	Category    string   `json:"category" yaml:"category"`
	MinCredits  float64  `json:"min_credits" yaml:"min_credits"`
	MaxCredits  *float64 `json:"max_credits,omitempty" yaml:"max_credits,omitempty"`
	MinCourses  int      `json:"min_courses" yaml:"min_courses"`
	MaxCourses  *int     `json:"max_courses,omitempty" yaml:"max_courses,omitempty"`
	CohortFrom  *int     `json:"cohort_from,omitempty" yaml:"cohort_from,omitempty"`
	CohortUntil *int     `json:"cohort_until,omitempty" yaml:"cohort_until,omitempty"`
	EnforceMax  bool     `json:"enforce_max,omitempty" yaml:"enforce_max,omitempty"`
	Notes       string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type CategorizationImport struct {
	Course              string `json:"course" yaml:"course"`
	Category            string `json:"category" yaml:"category"`
	MajorGroup          string `json:"major_group,omitempty" yaml:"major_group,omitempty"`
	MathTrack           string `json:"math_track,omitempty" yaml:"math_track,omitempty"`
	CapstoneOption      string `json:"capstone_option,omitempty" yaml:"capstone_option,omitempty"`
	Required            bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Flexible            bool   `json:"flexible,omitempty" yaml:"flexible,omitempty"`
	RecommendedYear     int    `json:"recommended_year,omitempty" yaml:"recommended_year,omitempty"`
	RecommendedSemester string `json:"recommended_semester,omitempty" yaml:"recommended_semester,omitempty"`
	CohortFrom          *int   `json:"cohort_from,omitempty" yaml:"cohort_from,omitempty"`
	CohortUntil         *int   `json:"cohort_until,omitempty" yaml:"cohort_until,omitempty"`
}

type GradeRequirementImport struct {
	Major        string `json:"major" yaml:"major"`
	Course       string `json:"course" yaml:"course"`
	MinimumGrade string `json:"minimum_grade" yaml:"minimum_grade"`
	CohortFrom   *int   `json:"cohort_from,omitempty" yaml:"cohort_from,omitempty"`
	CohortUntil  *int   `json:"cohort_until,omitempty" yaml:"cohort_until,omitempty"`
}

// SemesterImport is an institutional semester, e.g. academic year
// "2024-2025" sequence 1.
type SemesterImport struct {
	ID           string `json:"id,omitempty" yaml:"id,omitempty"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	AcademicYear string `json:"academic_year" yaml:"academic_year"`
	Sequence     int    `json:"sequence" yaml:"sequence"`
	StartDate    string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
}

// StudentSchema is the top-level structure of a student seed file.
type StudentSchema struct {
	Students []StudentImport `json:"students" yaml:"students"`
}

type StudentImport struct {
	ID              string          `json:"id" yaml:"id"`
	Name            string          `json:"name,omitempty" yaml:"name,omitempty"`
	Major           string          `json:"major" yaml:"major"`
	Cohort          int             `json:"cohort" yaml:"cohort"`
	CurrentYear     int             `json:"current_year" yaml:"current_year"`
	CurrentSemester string          `json:"current_semester" yaml:"current_semester"`
	MathTrack       string          `json:"math_track,omitempty" yaml:"math_track,omitempty"`
	CapstoneOption  string          `json:"capstone_option,omitempty" yaml:"capstone_option,omitempty"`
	Attempts        []AttemptImport `json:"attempts,omitempty" yaml:"attempts,omitempty"`
}

// AttemptImport is one transcript or planned entry. Placeholder entries
// set title and credits instead of course.
type AttemptImport struct {
	Course   string  `json:"course,omitempty" yaml:"course,omitempty"`
	Title    string  `json:"title,omitempty" yaml:"title,omitempty"`
	Credits  float64 `json:"credits,omitempty" yaml:"credits,omitempty"`
	Category string  `json:"category,omitempty" yaml:"category,omitempty"`
	Year     int     `json:"year" yaml:"year"`
	Semester string  `json:"semester" yaml:"semester"`
	Status   string  `json:"status,omitempty" yaml:"status,omitempty"`
	Grade    string  `json:"grade,omitempty" yaml:"grade,omitempty"`
	Notes    string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// LoadCatalogSchema reads a catalog seed file. Files ending in .yaml or
// .yml are parsed as YAML, everything else as JSON.
func LoadCatalogSchema(path string) (*CatalogSchema, error) {
	var schema CatalogSchema
	if err := loadFile(path, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

// LoadStudentSchema reads a student seed file.
func LoadStudentSchema(path string) (*StudentSchema, error) {
	var schema StudentSchema
	if err := loadFile(path, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

func loadFile(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return Decode(data, formatOf(path), dst)
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Decode parses seed data in the given format into dst.
func Decode(data []byte, format Format, dst any) error {
	if format == FormatYAML {
		if err := yaml.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("parsing YAML seed: %w", err)
		}
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parsing JSON seed: %w", err)
	}
	return nil
}
