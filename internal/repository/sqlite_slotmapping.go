package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/domain"
)

// SQLiteSlotMappingRepo implements SlotMappingRepo.
type SQLiteSlotMappingRepo struct {
	db db.DBTX
}

func NewSQLiteSlotMappingRepo(conn db.DBTX) *SQLiteSlotMappingRepo {
	return &SQLiteSlotMappingRepo{db: conn}
}

func (r *SQLiteSlotMappingRepo) Get(ctx context.Context, studentID string, slot domain.SemesterSlot) (*domain.SlotMapping, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, student_id, academic_semester_id, year, term, is_verified, created_at
		FROM slot_mappings WHERE student_id = ? AND year = ? AND term = ?`, studentID, slot.Year, int(slot.Term))
	m, err := scanMapping(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("slot mapping %s %s: %w", studentID, slot, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning slot mapping: %w", err)
	}
	return m, nil
}

func (r *SQLiteSlotMappingRepo) Create(ctx context.Context, m *domain.SlotMapping) error {
	stamp(&m.CreatedAt)
	_, err := r.db.ExecContext(ctx, `INSERT INTO slot_mappings
		(id, student_id, academic_semester_id, year, term, is_verified, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.StudentID, m.AcademicSemesterID, m.Slot.Year, int(m.Slot.Term),
		boolToInt(m.IsVerified), m.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting slot mapping: %w", err)
	}
	return nil
}

func (r *SQLiteSlotMappingRepo) ListByStudent(ctx context.Context, studentID string) ([]*domain.SlotMapping, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, student_id, academic_semester_id, year, term, is_verified, created_at
		FROM slot_mappings WHERE student_id = ? ORDER BY year, term`, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing slot mappings: %w", err)
	}
	defer rows.Close()

	var out []*domain.SlotMapping
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning slot mapping: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slot mappings: %w", err)
	}
	return out, nil
}

func scanMapping(s scanner) (*domain.SlotMapping, error) {
	var (
		m        domain.SlotMapping
		term     int
		verified int
		created  string
	)
	if err := s.Scan(&m.ID, &m.StudentID, &m.AcademicSemesterID, &m.Slot.Year, &term, &verified, &created); err != nil {
		return nil, err
	}
	m.Slot.Term = domain.Term(term)
	m.IsVerified = intToBool(verified)
	m.CreatedAt = parseTime(created)
	return &m, nil
}
