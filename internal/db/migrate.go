package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the
// whole list runs on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillAttemptUpdatedAt(db); err != nil {
		return fmt.Errorf("backfilling attempts.updated_at: %w", err)
	}
	return nil
}

// migrateBackfillAttemptUpdatedAt fills updated_at for attempts written
// before the column existed.
func migrateBackfillAttemptUpdatedAt(db *sql.DB) error {
	_, err := db.Exec(`UPDATE attempts SET updated_at = created_at WHERE updated_at = ''`)
	return err
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		code       TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		department TEXT NOT NULL DEFAULT '',
		credits    REAL NOT NULL DEFAULT 1 CHECK(credits >= 0),
		level      INTEGER NOT NULL DEFAULT 0,
		offered    TEXT NOT NULL DEFAULT '',
		active     INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS prerequisite_groups (
		id                TEXT PRIMARY KEY,
		group_key         TEXT NOT NULL,
		course_code       TEXT NOT NULL REFERENCES courses(code) ON DELETE CASCADE,
		name              TEXT NOT NULL DEFAULT '',
		external_op       TEXT NOT NULL DEFAULT 'AND' CHECK(external_op IN ('AND','OR')),
		internal_op       TEXT NOT NULL DEFAULT 'OR' CHECK(internal_op IN ('AND','OR')),
		is_concurrent     INTEGER NOT NULL DEFAULT 0,
		is_recommended    INTEGER NOT NULL DEFAULT 0,
		major_restriction TEXT NOT NULL DEFAULT '',
		cohort_start      INTEGER,
		cohort_end        INTEGER,
		sort_order        INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_prereq_groups_course ON prerequisite_groups(course_code)`,

	`CREATE TABLE IF NOT EXISTS prerequisite_courses (
		group_id    TEXT NOT NULL REFERENCES prerequisite_groups(id) ON DELETE CASCADE,
		course_code TEXT NOT NULL,
		position    INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (group_id, course_code)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_prereq_courses_code ON prerequisite_courses(course_code)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL UNIQUE,
		parent         TEXT NOT NULL DEFAULT '',
		subcategory_of TEXT NOT NULL DEFAULT '',
		display_order  INTEGER NOT NULL DEFAULT 0,
		color          TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS degree_requirements (
		id            TEXT PRIMARY KEY,
		major_code    TEXT NOT NULL,
		category_name TEXT NOT NULL,
		min_credits   REAL NOT NULL DEFAULT 0,
		max_credits   REAL,
		min_courses   INTEGER NOT NULL DEFAULT 0,
		max_courses   INTEGER,
		cohort_from   INTEGER,
		cohort_until  INTEGER,
		enforce_max   INTEGER NOT NULL DEFAULT 0,
		notes         TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_degree_requirements_major ON degree_requirements(major_code)`,

	`CREATE TABLE IF NOT EXISTS categorizations (
		id                   TEXT PRIMARY KEY,
		course_code          TEXT NOT NULL REFERENCES courses(code) ON DELETE CASCADE,
		category_name        TEXT NOT NULL,
		major_group          TEXT NOT NULL DEFAULT 'ALL',
		math_track           TEXT NOT NULL DEFAULT '',
		capstone_option      TEXT NOT NULL DEFAULT '',
		is_required          INTEGER NOT NULL DEFAULT 0,
		is_flexible          INTEGER NOT NULL DEFAULT 0,
		recommended_year     INTEGER NOT NULL DEFAULT 0,
		recommended_semester INTEGER NOT NULL DEFAULT 0,
		cohort_from          INTEGER,
		cohort_until         INTEGER
	)`,

	`CREATE INDEX IF NOT EXISTS idx_categorizations_course ON categorizations(course_code)`,

	`CREATE TABLE IF NOT EXISTS grade_requirements (
		id            TEXT PRIMARY KEY,
		major_code    TEXT NOT NULL,
		course_code   TEXT NOT NULL,
		minimum_grade TEXT NOT NULL,
		cohort_from   INTEGER,
		cohort_until  INTEGER
	)`,

	`CREATE TABLE IF NOT EXISTS academic_semesters (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		academic_year   TEXT NOT NULL,
		sequence_number INTEGER NOT NULL CHECK(sequence_number IN (1,2,3)),
		start_date      TEXT,
		end_date        TEXT,
		UNIQUE (academic_year, sequence_number)
	)`,

	`CREATE TABLE IF NOT EXISTS student_profiles (
		student_id      TEXT PRIMARY KEY,
		name            TEXT NOT NULL DEFAULT '',
		major_code      TEXT NOT NULL DEFAULT '',
		math_track      TEXT NOT NULL DEFAULT '',
		capstone_option TEXT NOT NULL DEFAULT '',
		cohort_year     INTEGER NOT NULL DEFAULT 0,
		current_year    INTEGER NOT NULL DEFAULT 0,
		current_term    INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS attempts (
		id                  TEXT PRIMARY KEY,
		student_id          TEXT NOT NULL REFERENCES student_profiles(student_id) ON DELETE CASCADE,
		course_code         TEXT NOT NULL DEFAULT '',
		year                INTEGER NOT NULL,
		term                INTEGER NOT NULL CHECK(term IN (1,2,3)),
		status              TEXT NOT NULL DEFAULT 'planned'
		                    CHECK(status IN ('planned','enrolled','completed','failed','retake_required','dropped')),
		grade               TEXT NOT NULL DEFAULT '',
		category_name       TEXT NOT NULL DEFAULT '',
		placeholder_title   TEXT NOT NULL DEFAULT '',
		placeholder_credits REAL NOT NULL DEFAULT 0,
		created_at          TEXT NOT NULL
	)`,

	`ALTER TABLE attempts ADD COLUMN notes TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE attempts ADD COLUMN updated_at TEXT NOT NULL DEFAULT ''`,

	`CREATE INDEX IF NOT EXISTS idx_attempts_student ON attempts(student_id)`,
	`CREATE INDEX IF NOT EXISTS idx_attempts_student_slot ON attempts(student_id, year, term)`,

	`CREATE TABLE IF NOT EXISTS slot_mappings (
		id                   TEXT PRIMARY KEY,
		student_id           TEXT NOT NULL REFERENCES student_profiles(student_id) ON DELETE CASCADE,
		academic_semester_id TEXT NOT NULL REFERENCES academic_semesters(id),
		year                 INTEGER NOT NULL,
		term                 INTEGER NOT NULL,
		is_verified          INTEGER NOT NULL DEFAULT 0,
		created_at           TEXT NOT NULL,
		UNIQUE (student_id, year, term)
	)`,
}
