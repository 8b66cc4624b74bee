package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/domain"
)

// SQLiteAttemptRepo implements AttemptRepo using a SQLite database.
type SQLiteAttemptRepo struct {
	db db.DBTX
}

func NewSQLiteAttemptRepo(conn db.DBTX) *SQLiteAttemptRepo {
	return &SQLiteAttemptRepo{db: conn}
}

const attemptColumns = `id, student_id, course_code, year, term, status, grade, category_name,
	placeholder_title, placeholder_credits, notes, created_at, updated_at`

func (r *SQLiteAttemptRepo) Create(ctx context.Context, a *domain.Attempt) error {
	stamp(&a.CreatedAt, &a.UpdatedAt)
	query := `INSERT INTO attempts (` + attemptColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.StudentID, a.CourseCode, a.Slot.Year, int(a.Slot.Term), string(a.Status), a.Grade,
		a.CategoryName, a.PlaceholderTitle, a.PlaceholderCredits, a.Notes,
		a.CreatedAt.Format(time.RFC3339), a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting attempt: %w", err)
	}
	return nil
}

func (r *SQLiteAttemptRepo) GetByID(ctx context.Context, id string) (*domain.Attempt, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+attemptColumns+` FROM attempts WHERE id = ?`, id)
	a, err := scanAttempt(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("attempt %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning attempt: %w", err)
	}
	return a, nil
}

func (r *SQLiteAttemptRepo) ListByStudent(ctx context.Context, studentID string) ([]domain.Attempt, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+attemptColumns+` FROM attempts
		WHERE student_id = ? ORDER BY year, term, created_at, id`, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing attempts: %w", err)
	}
	defer rows.Close()

	var out []domain.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning attempt: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attempts: %w", err)
	}
	return out, nil
}

func (r *SQLiteAttemptRepo) Update(ctx context.Context, a *domain.Attempt) error {
	a.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	query := `UPDATE attempts SET course_code = ?, year = ?, term = ?, status = ?, grade = ?, category_name = ?,
		placeholder_title = ?, placeholder_credits = ?, notes = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		a.CourseCode, a.Slot.Year, int(a.Slot.Term), string(a.Status), a.Grade, a.CategoryName,
		a.PlaceholderTitle, a.PlaceholderCredits, a.Notes, a.UpdatedAt.Format(time.RFC3339), a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating attempt: %w", err)
	}
	return requireAffected(res, "attempt "+a.ID)
}

func (r *SQLiteAttemptRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attempts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting attempt: %w", err)
	}
	return requireAffected(res, "attempt "+id)
}

func (r *SQLiteAttemptRepo) DeletePlanned(ctx context.Context, studentID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attempts WHERE student_id = ? AND status = ?`,
		studentID, string(domain.AttemptPlanned))
	if err != nil {
		return 0, fmt.Errorf("clearing planned attempts: %w", err)
	}
	return res.RowsAffected()
}

// DeleteByStudent removes every attempt of a student, used when a
// transcript is re-imported.
func (r *SQLiteAttemptRepo) DeleteByStudent(ctx context.Context, studentID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attempts WHERE student_id = ?`, studentID)
	if err != nil {
		return 0, fmt.Errorf("clearing attempts: %w", err)
	}
	return res.RowsAffected()
}

func scanAttempt(s scanner) (*domain.Attempt, error) {
	var (
		a                domain.Attempt
		term             int
		status           string
		created, updated string
	)
	if err := s.Scan(&a.ID, &a.StudentID, &a.CourseCode, &a.Slot.Year, &term, &status, &a.Grade,
		&a.CategoryName, &a.PlaceholderTitle, &a.PlaceholderCredits, &a.Notes, &created, &updated); err != nil {
		return nil, err
	}
	a.Slot.Term = domain.Term(term)
	a.Status = domain.AttemptStatus(status)
	a.CreatedAt, a.UpdatedAt = parseTime(created), parseTime(updated)
	return &a, nil
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
