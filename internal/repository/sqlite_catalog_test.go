package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T, repo *SQLiteCatalogRepo, fx testutil.CatalogFixture) {
	t.Helper()
	ctx := context.Background()
	for i := range fx.Courses {
		require.NoError(t, repo.UpsertCourse(ctx, &fx.Courses[i]))
	}
	byCourse := make(map[string][]domain.PrerequisiteGroup)
	for _, g := range fx.Groups {
		byCourse[g.CourseCode] = append(byCourse[g.CourseCode], g)
	}
	for code, groups := range byCourse {
		require.NoError(t, repo.ReplacePrerequisites(ctx, code, groups))
	}
	for i := range fx.Categories {
		require.NoError(t, repo.UpsertCategory(ctx, &fx.Categories[i]))
	}
	for i := range fx.Requirements {
		require.NoError(t, repo.UpsertRequirement(ctx, &fx.Requirements[i]))
	}
	for i := range fx.Categorizations {
		require.NoError(t, repo.UpsertCategorization(ctx, &fx.Categorizations[i]))
	}
	for i := range fx.GradeRequirements {
		require.NoError(t, repo.UpsertGradeRequirement(ctx, &fx.GradeRequirements[i]))
	}
}

func TestCatalogRepo_SnapshotRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCatalogRepo(db)
	fx := testutil.SampleCatalog()
	seedCatalog(t, repo, fx)

	snap, err := repo.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap.Courses, len(fx.Courses))
	assert.Len(t, snap.Groups, len(fx.Groups))
	assert.Len(t, snap.Categories, len(fx.Categories))
	assert.Len(t, snap.Requirements, len(fx.Requirements))
	assert.Len(t, snap.Categorizations, len(fx.Categorizations))
	assert.Len(t, snap.GradeRequirements, 1)

	var cs210 *domain.PrerequisiteGroup
	for i := range snap.Groups {
		if snap.Groups[i].CourseCode == "CS210" {
			cs210 = &snap.Groups[i]
		}
	}
	require.NotNil(t, cs210)
	assert.Equal(t, []string{"CS102", "MATH101"}, cs210.Courses, "member order is preserved")
	assert.Equal(t, domain.LogicAll, cs210.InternalOp)
	assert.Nil(t, cs210.CohortStart)
}

func TestCatalogRepo_GetCourse(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCatalogRepo(db)
	ctx := context.Background()
	seedCatalog(t, repo, testutil.SampleCatalog())

	c, err := repo.GetCourse(ctx, "CS301")
	require.NoError(t, err)
	assert.Equal(t, "Operating Systems", c.Title)
	assert.Equal(t, []domain.Term{domain.TermSpring}, c.Offered)
	assert.True(t, c.Active)

	_, err = repo.GetCourse(ctx, "NOPE999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogRepo_UpsertCourseUpdatesInPlace(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCatalogRepo(db)
	ctx := context.Background()

	c := &domain.Course{Code: "ART101", Title: "Drawing", Credits: 1, Active: true}
	require.NoError(t, repo.UpsertCourse(ctx, c))
	c.Title, c.Credits, c.Offered = "Drawing I", 0.5, []domain.Term{domain.TermSummer}
	require.NoError(t, repo.UpsertCourse(ctx, c))

	got, err := repo.GetCourse(ctx, "ART101")
	require.NoError(t, err)
	assert.Equal(t, "Drawing I", got.Title)
	assert.Equal(t, 0.5, got.Credits)
	assert.True(t, got.SummerOnly())
}

func TestCatalogRepo_ReplacePrerequisitesSwapsGroups(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCatalogRepo(db)
	ctx := context.Background()
	seedCatalog(t, repo, testutil.SampleCatalog())

	from := 2027
	replacement := []domain.PrerequisiteGroup{{
		ID: "pg-cs301-new", Key: "CS301-A", CourseCode: "CS301", Name: "Systems",
		ExternalOp: domain.LogicAny, InternalOp: domain.LogicAll, IsConcurrent: true,
		MajorRestriction: "CS", CohortStart: &from, Courses: []string{"CS210", "CS201"},
	}}
	require.NoError(t, repo.ReplacePrerequisites(ctx, "CS301", replacement))

	snap, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	var got []domain.PrerequisiteGroup
	for _, g := range snap.Groups {
		if g.CourseCode == "CS301" {
			got = append(got, g)
		}
	}
	require.Len(t, got, 1)
	assert.Equal(t, "CS301-A", got[0].Key)
	assert.True(t, got[0].IsConcurrent)
	assert.Equal(t, domain.LogicAny, got[0].ExternalOp)
	require.NotNil(t, got[0].CohortStart)
	assert.Equal(t, 2027, *got[0].CohortStart)
	assert.Equal(t, []string{"CS210", "CS201"}, got[0].Courses)
}

func TestCatalogRepo_RequirementOptionalBounds(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCatalogRepo(db)
	ctx := context.Background()

	maxCredits, maxCourses, until := 2.0, 2, 2030
	require.NoError(t, repo.UpsertRequirement(ctx, &domain.DegreeRequirement{
		ID: "req-fe", MajorCode: "MIS", CategoryName: domain.CategoryFreeElective,
		MinCredits: 1, MaxCredits: &maxCredits, MinCourses: 1, MaxCourses: &maxCourses,
		CohortUntil: &until, EnforceMax: true, Notes: "capped",
	}))

	snap, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Requirements, 1)
	r := snap.Requirements[0]
	require.NotNil(t, r.MaxCredits)
	assert.Equal(t, 2.0, *r.MaxCredits)
	require.NotNil(t, r.MaxCourses)
	assert.Equal(t, 2, *r.MaxCourses)
	assert.Nil(t, r.CohortFrom)
	assert.True(t, r.EnforceMax)
	assert.Equal(t, "capped", r.Notes)
}
