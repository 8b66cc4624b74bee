package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/domain"
)

// SQLiteStudentRepo implements StudentRepo using a SQLite database.
type SQLiteStudentRepo struct {
	db db.DBTX
}

func NewSQLiteStudentRepo(conn db.DBTX) *SQLiteStudentRepo {
	return &SQLiteStudentRepo{db: conn}
}

const studentColumns = `student_id, name, major_code, math_track, capstone_option,
	cohort_year, current_year, current_term, created_at, updated_at`

func (r *SQLiteStudentRepo) Get(ctx context.Context, studentID string) (*domain.StudentProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM student_profiles WHERE student_id = ?`, studentID)
	p, err := scanStudent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("student %s: %w", studentID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning student profile: %w", err)
	}
	return p, nil
}

func (r *SQLiteStudentRepo) List(ctx context.Context) ([]*domain.StudentProfile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+studentColumns+` FROM student_profiles ORDER BY student_id`)
	if err != nil {
		return nil, fmt.Errorf("listing students: %w", err)
	}
	defer rows.Close()

	var out []*domain.StudentProfile
	for rows.Next() {
		p, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning student profile: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating students: %w", err)
	}
	return out, nil
}

func (r *SQLiteStudentRepo) Upsert(ctx context.Context, p *domain.StudentProfile) error {
	stamp(&p.CreatedAt)
	p.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	query := `INSERT INTO student_profiles (` + studentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(student_id) DO UPDATE SET name = excluded.name, major_code = excluded.major_code,
		math_track = excluded.math_track, capstone_option = excluded.capstone_option,
		cohort_year = excluded.cohort_year, current_year = excluded.current_year,
		current_term = excluded.current_term, updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		p.StudentID, p.Name, p.MajorCode, p.MathTrack, p.CapstoneOption,
		p.CohortYear, p.CurrentYear, int(p.CurrentTerm),
		p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting student %s: %w", p.StudentID, err)
	}
	return nil
}

func scanStudent(s scanner) (*domain.StudentProfile, error) {
	var (
		p                domain.StudentProfile
		term             int
		created, updated string
	)
	if err := s.Scan(&p.StudentID, &p.Name, &p.MajorCode, &p.MathTrack, &p.CapstoneOption,
		&p.CohortYear, &p.CurrentYear, &term, &created, &updated); err != nil {
		return nil, err
	}
	p.CurrentTerm = domain.Term(term)
	p.CreatedAt, p.UpdatedAt = parseTime(created), parseTime(updated)
	return &p, nil
}
