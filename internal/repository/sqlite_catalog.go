package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/domain"
)

// SQLiteCatalogRepo implements CatalogRepo using a SQLite database.
type SQLiteCatalogRepo struct {
	db db.DBTX
}

func NewSQLiteCatalogRepo(conn db.DBTX) *SQLiteCatalogRepo {
	return &SQLiteCatalogRepo{db: conn}
}

const courseColumns = `code, title, department, credits, level, offered, active`

func (r *SQLiteCatalogRepo) Snapshot(ctx context.Context) (*CatalogSnapshot, error) {
	var (
		snap CatalogSnapshot
		err  error
	)
	if snap.Courses, err = r.listCourses(ctx); err != nil {
		return nil, err
	}
	if snap.Groups, err = r.listGroups(ctx); err != nil {
		return nil, err
	}
	if snap.Categories, err = r.listCategories(ctx); err != nil {
		return nil, err
	}
	if snap.Requirements, err = r.listRequirements(ctx); err != nil {
		return nil, err
	}
	if snap.Categorizations, err = r.listCategorizations(ctx); err != nil {
		return nil, err
	}
	if snap.GradeRequirements, err = r.listGradeRequirements(ctx); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *SQLiteCatalogRepo) GetCourse(ctx context.Context, code string) (*domain.Course, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE code = ?`, code)
	c, err := scanCourse(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("course %s: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning course: %w", err)
	}
	return c, nil
}

func (r *SQLiteCatalogRepo) UpsertCourse(ctx context.Context, c *domain.Course) error {
	query := `INSERT INTO courses (` + courseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET title = excluded.title, department = excluded.department,
		credits = excluded.credits, level = excluded.level, offered = excluded.offered, active = excluded.active`
	_, err := r.db.ExecContext(ctx, query,
		c.Code, c.Title, c.Department, c.Credits, c.Level, c.OfferingPattern(), boolToInt(c.Active))
	if err != nil {
		return fmt.Errorf("upserting course %s: %w", c.Code, err)
	}
	return nil
}

func (r *SQLiteCatalogRepo) ReplacePrerequisites(ctx context.Context, courseCode string, groups []domain.PrerequisiteGroup) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM prerequisite_groups WHERE course_code = ?`, courseCode); err != nil {
		return fmt.Errorf("clearing prerequisites for %s: %w", courseCode, err)
	}
	for _, g := range groups {
		_, err := r.db.ExecContext(ctx, `INSERT INTO prerequisite_groups (id, group_key, course_code, name,
			external_op, internal_op, is_concurrent, is_recommended, major_restriction, cohort_start, cohort_end, sort_order)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			g.ID, g.Key, courseCode, g.Name,
			string(g.ExternalOp), string(g.InternalOp),
			boolToInt(g.IsConcurrent), boolToInt(g.IsRecommended), g.MajorRestriction,
			nullableIntToValue(g.CohortStart), nullableIntToValue(g.CohortEnd), g.SortOrder,
		)
		if err != nil {
			return fmt.Errorf("inserting prerequisite group %s: %w", g.Key, err)
		}
		for i, member := range g.Courses {
			_, err := r.db.ExecContext(ctx,
				`INSERT OR IGNORE INTO prerequisite_courses (group_id, course_code, position) VALUES (?, ?, ?)`,
				g.ID, member, i)
			if err != nil {
				return fmt.Errorf("inserting prerequisite course %s: %w", member, err)
			}
		}
	}
	return nil
}

func (r *SQLiteCatalogRepo) UpsertCategory(ctx context.Context, c *domain.Category) error {
	query := `INSERT INTO categories (id, name, parent, subcategory_of, display_order, color)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET parent = excluded.parent, subcategory_of = excluded.subcategory_of,
		display_order = excluded.display_order, color = excluded.color`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Parent, c.SubcategoryOf, c.DisplayOrder, c.Color)
	if err != nil {
		return fmt.Errorf("upserting category %s: %w", c.Name, err)
	}
	return nil
}

func (r *SQLiteCatalogRepo) UpsertRequirement(ctx context.Context, q *domain.DegreeRequirement) error {
	query := `INSERT OR REPLACE INTO degree_requirements (id, major_code, category_name, min_credits, max_credits,
		min_courses, max_courses, cohort_from, cohort_until, enforce_max, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		q.ID, q.MajorCode, q.CategoryName, q.MinCredits, nullableFloatToValue(q.MaxCredits),
		q.MinCourses, nullableIntToValue(q.MaxCourses),
		nullableIntToValue(q.CohortFrom), nullableIntToValue(q.CohortUntil),
		boolToInt(q.EnforceMax), q.Notes,
	)
	if err != nil {
		return fmt.Errorf("upserting requirement %s: %w", q.ID, err)
	}
	return nil
}

func (r *SQLiteCatalogRepo) UpsertCategorization(ctx context.Context, c *domain.Categorization) error {
	query := `INSERT OR REPLACE INTO categorizations (id, course_code, category_name, major_group, math_track,
		capstone_option, is_required, is_flexible, recommended_year, recommended_semester, cohort_from, cohort_until)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.CourseCode, c.CategoryName, c.MajorGroup, c.MathTrack, c.CapstoneOption,
		boolToInt(c.IsRequired), boolToInt(c.IsFlexible), c.RecommendedYear, int(c.RecommendedSemester),
		nullableIntToValue(c.CohortFrom), nullableIntToValue(c.CohortUntil),
	)
	if err != nil {
		return fmt.Errorf("upserting categorization %s: %w", c.ID, err)
	}
	return nil
}

func (r *SQLiteCatalogRepo) UpsertGradeRequirement(ctx context.Context, g *domain.GradeRequirement) error {
	query := `INSERT OR REPLACE INTO grade_requirements (id, major_code, course_code, minimum_grade, cohort_from, cohort_until)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		g.ID, g.MajorCode, g.CourseCode, g.MinimumGrade,
		nullableIntToValue(g.CohortFrom), nullableIntToValue(g.CohortUntil))
	if err != nil {
		return fmt.Errorf("upserting grade requirement %s: %w", g.ID, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCourse(s scanner) (*domain.Course, error) {
	var (
		c       domain.Course
		offered string
		active  int
	)
	if err := s.Scan(&c.Code, &c.Title, &c.Department, &c.Credits, &c.Level, &offered, &active); err != nil {
		return nil, err
	}
	terms, err := domain.ParseOfferingPattern(offered)
	if err != nil {
		return nil, fmt.Errorf("course %s offering pattern: %w", c.Code, err)
	}
	c.Offered = terms
	c.Active = intToBool(active)
	return &c, nil
}

func (r *SQLiteCatalogRepo) listCourses(ctx context.Context) ([]domain.Course, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	defer rows.Close()

	var out []domain.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning course: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courses: %w", err)
	}
	return out, nil
}

func (r *SQLiteCatalogRepo) listGroups(ctx context.Context) ([]domain.PrerequisiteGroup, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, group_key, course_code, name, external_op, internal_op,
		is_concurrent, is_recommended, major_restriction, cohort_start, cohort_end, sort_order
		FROM prerequisite_groups ORDER BY course_code, sort_order, group_key`)
	if err != nil {
		return nil, fmt.Errorf("listing prerequisite groups: %w", err)
	}
	defer rows.Close()

	var (
		out   []domain.PrerequisiteGroup
		index = make(map[string]int)
	)
	for rows.Next() {
		var (
			g                      domain.PrerequisiteGroup
			ext, inner             string
			concurrent, recommends int
			from, until            sql.NullInt64
		)
		if err := rows.Scan(&g.ID, &g.Key, &g.CourseCode, &g.Name, &ext, &inner,
			&concurrent, &recommends, &g.MajorRestriction, &from, &until, &g.SortOrder); err != nil {
			return nil, fmt.Errorf("scanning prerequisite group: %w", err)
		}
		g.ExternalOp, g.InternalOp = domain.LogicOp(ext), domain.LogicOp(inner)
		g.IsConcurrent = intToBool(concurrent)
		g.IsRecommended = intToBool(recommends)
		g.CohortStart, g.CohortEnd = intPtr(from), intPtr(until)
		index[g.ID] = len(out)
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating prerequisite groups: %w", err)
	}

	members, err := r.db.QueryContext(ctx, `SELECT group_id, course_code FROM prerequisite_courses ORDER BY group_id, position`)
	if err != nil {
		return nil, fmt.Errorf("listing prerequisite courses: %w", err)
	}
	defer members.Close()
	for members.Next() {
		var groupID, code string
		if err := members.Scan(&groupID, &code); err != nil {
			return nil, fmt.Errorf("scanning prerequisite course: %w", err)
		}
		if i, ok := index[groupID]; ok {
			out[i].Courses = append(out[i].Courses, code)
		}
	}
	if err := members.Err(); err != nil {
		return nil, fmt.Errorf("iterating prerequisite courses: %w", err)
	}
	return out, nil
}

func (r *SQLiteCatalogRepo) listCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, parent, subcategory_of, display_order, color
		FROM categories ORDER BY display_order, name`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Parent, &c.SubcategoryOf, &c.DisplayOrder, &c.Color); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return out, nil
}

func (r *SQLiteCatalogRepo) listRequirements(ctx context.Context) ([]domain.DegreeRequirement, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, major_code, category_name, min_credits, max_credits,
		min_courses, max_courses, cohort_from, cohort_until, enforce_max, notes
		FROM degree_requirements ORDER BY major_code, category_name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing degree requirements: %w", err)
	}
	defer rows.Close()

	var out []domain.DegreeRequirement
	for rows.Next() {
		var (
			q           domain.DegreeRequirement
			maxCredits  sql.NullFloat64
			maxCourses  sql.NullInt64
			from, until sql.NullInt64
			enforce     int
		)
		if err := rows.Scan(&q.ID, &q.MajorCode, &q.CategoryName, &q.MinCredits, &maxCredits,
			&q.MinCourses, &maxCourses, &from, &until, &enforce, &q.Notes); err != nil {
			return nil, fmt.Errorf("scanning degree requirement: %w", err)
		}
		q.MaxCredits = floatPtr(maxCredits)
		q.MaxCourses = intPtr(maxCourses)
		q.CohortFrom, q.CohortUntil = intPtr(from), intPtr(until)
		q.EnforceMax = intToBool(enforce)
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating degree requirements: %w", err)
	}
	return out, nil
}

func (r *SQLiteCatalogRepo) listCategorizations(ctx context.Context) ([]domain.Categorization, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, course_code, category_name, major_group, math_track,
		capstone_option, is_required, is_flexible, recommended_year, recommended_semester, cohort_from, cohort_until
		FROM categorizations ORDER BY course_code, id`)
	if err != nil {
		return nil, fmt.Errorf("listing categorizations: %w", err)
	}
	defer rows.Close()

	var out []domain.Categorization
	for rows.Next() {
		var (
			c                  domain.Categorization
			isRequired, isFlex int
			semester           int
			from, until        sql.NullInt64
		)
		if err := rows.Scan(&c.ID, &c.CourseCode, &c.CategoryName, &c.MajorGroup, &c.MathTrack,
			&c.CapstoneOption, &isRequired, &isFlex, &c.RecommendedYear, &semester, &from, &until); err != nil {
			return nil, fmt.Errorf("scanning categorization: %w", err)
		}
		c.IsRequired, c.IsFlexible = intToBool(isRequired), intToBool(isFlex)
		c.RecommendedSemester = domain.Term(semester)
		c.CohortFrom, c.CohortUntil = intPtr(from), intPtr(until)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categorizations: %w", err)
	}
	return out, nil
}

func (r *SQLiteCatalogRepo) listGradeRequirements(ctx context.Context) ([]domain.GradeRequirement, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, major_code, course_code, minimum_grade, cohort_from, cohort_until
		FROM grade_requirements ORDER BY major_code, course_code, id`)
	if err != nil {
		return nil, fmt.Errorf("listing grade requirements: %w", err)
	}
	defer rows.Close()

	var out []domain.GradeRequirement
	for rows.Next() {
		var (
			g           domain.GradeRequirement
			from, until sql.NullInt64
		)
		if err := rows.Scan(&g.ID, &g.MajorCode, &g.CourseCode, &g.MinimumGrade, &from, &until); err != nil {
			return nil, fmt.Errorf("scanning grade requirement: %w", err)
		}
		g.CohortFrom, g.CohortUntil = intPtr(from), intPtr(until)
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating grade requirements: %w", err)
	}
	return out, nil
}
