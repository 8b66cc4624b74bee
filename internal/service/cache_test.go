package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/degreeplan/internal/app"
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/repository"
	"github.com/alexanderramin/degreeplan/internal/testutil"
)

func TestCatalogProvider_ServesCachedSnapshotUntilInvalidated(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	s := h.student(t)

	cat, err := h.catalog.Catalog(ctx)
	require.NoError(t, err)
	_, ok := cat.Course("PHIL101")
	assert.False(t, ok)

	repo := repository.NewSQLiteCatalogRepo(h.db)
	require.NoError(t, repo.UpsertCourse(ctx, testutil.NewTestCourse("PHIL101")))

	_, err = h.planning.AddCourse(ctx, app.AddCourseRequest{StudentID: s.StudentID, CourseCode: "PHIL101", Slot: slotIn(1, domain.TermFall)})
	requireCode(t, err, app.ErrCourseNotFound)

	h.catalog.Invalidate(ctx)
	resp := h.add(t, s.StudentID, "PHIL101", 1, domain.TermFall)
	assert.Equal(t, "PHIL101 Title", resp.Title)
}

func TestCatalogProvider_SnapshotRoundTripsThroughCache(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	first, err := h.catalog.Catalog(ctx)
	require.NoError(t, err)
	assert.Positive(t, h.cache.Len())

	second, err := h.catalog.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.Codes(), second.Codes())
	assert.Len(t, second.PrerequisiteGroups("CS210"), 1)
	course, ok := second.Course("CS301")
	require.True(t, ok)
	assert.Equal(t, []domain.Term{domain.TermSpring}, course.Offered)
}

func TestStudentProfiles_CacheAndInvalidate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	s := h.student(t)

	got, err := h.profiles.Get(ctx, s.StudentID)
	require.NoError(t, err)
	assert.Equal(t, 2028, got.CohortYear)

	s.CohortYear = 2030
	require.NoError(t, h.students.Upsert(ctx, s))
	got, err = h.profiles.Get(ctx, s.StudentID)
	require.NoError(t, err)
	assert.Equal(t, 2028, got.CohortYear, "cached profile is served")

	h.profiles.Invalidate(ctx, s.StudentID)
	got, err = h.profiles.Get(ctx, s.StudentID)
	require.NoError(t, err)
	assert.Equal(t, 2030, got.CohortYear)
}

func TestStudentProfiles_Complete(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.profiles.Complete(ctx, "missing")
	requireCode(t, err, app.ErrStudentNotFound)

	s := h.student(t, testutil.WithCurrentSlot(0, domain.TermFall))
	_, err = h.profiles.Complete(ctx, s.StudentID)
	requireCode(t, err, app.ErrProfileIncomplete)
}
