package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/domain"
)

// SQLiteAcademicSemesterRepo implements AcademicSemesterRepo.
type SQLiteAcademicSemesterRepo struct {
	db db.DBTX
}

func NewSQLiteAcademicSemesterRepo(conn db.DBTX) *SQLiteAcademicSemesterRepo {
	return &SQLiteAcademicSemesterRepo{db: conn}
}

func (r *SQLiteAcademicSemesterRepo) Upsert(ctx context.Context, s *domain.AcademicSemester) error {
	query := `INSERT INTO academic_semesters (id, name, academic_year, sequence_number, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(academic_year, sequence_number) DO UPDATE SET name = excluded.name,
		start_date = excluded.start_date, end_date = excluded.end_date`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.AcademicYear, s.SequenceNumber,
		timeToNullable(s.StartDate, dateLayout), timeToNullable(s.EndDate, dateLayout))
	if err != nil {
		return fmt.Errorf("upserting academic semester %s: %w", s.Name, err)
	}
	return nil
}

func (r *SQLiteAcademicSemesterRepo) GetByYearAndSequence(ctx context.Context, academicYear string, seq int) (*domain.AcademicSemester, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, academic_year, sequence_number, start_date, end_date
		FROM academic_semesters WHERE academic_year = ? AND sequence_number = ?`, academicYear, seq)
	s, err := scanSemester(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("academic semester %s #%d: %w", academicYear, seq, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning academic semester: %w", err)
	}
	return s, nil
}

func (r *SQLiteAcademicSemesterRepo) List(ctx context.Context) ([]*domain.AcademicSemester, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, academic_year, sequence_number, start_date, end_date
		FROM academic_semesters ORDER BY academic_year, sequence_number`)
	if err != nil {
		return nil, fmt.Errorf("listing academic semesters: %w", err)
	}
	defer rows.Close()

	var out []*domain.AcademicSemester
	for rows.Next() {
		s, err := scanSemester(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning academic semester: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating academic semesters: %w", err)
	}
	return out, nil
}

func scanSemester(s scanner) (*domain.AcademicSemester, error) {
	var (
		sem        domain.AcademicSemester
		start, end sql.NullString
	)
	if err := s.Scan(&sem.ID, &sem.Name, &sem.AcademicYear, &sem.SequenceNumber, &start, &end); err != nil {
		return nil, err
	}
	sem.StartDate = parseNullableTime(start, dateLayout)
	sem.EndDate = parseNullableTime(end, dateLayout)
	return &sem, nil
}
