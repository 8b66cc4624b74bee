package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/degreeplan/internal/app"
	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/planner"
	"github.com/alexanderramin/degreeplan/internal/repository"
)

type planningService struct {
	catalog   CatalogProvider
	profiles  *StudentProfiles
	attempts  repository.AttemptRepo
	semesters repository.AcademicSemesterRepo
	uow       db.UnitOfWork
	policy    planner.Policy
	locks     *studentLocks
	log       zerolog.Logger
	observer  UseCaseObserver
}

func NewPlanningService(
	catalog CatalogProvider,
	profiles *StudentProfiles,
	attempts repository.AttemptRepo,
	semesters repository.AcademicSemesterRepo,
	uow db.UnitOfWork,
	policy planner.Policy,
	log zerolog.Logger,
	observers ...UseCaseObserver,
) PlanningService {
	return &planningService{
		catalog:   catalog,
		profiles:  profiles,
		attempts:  attempts,
		semesters: semesters,
		uow:       uow,
		policy:    policy,
		locks:     newStudentLocks(),
		log:       log,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// planningContext is the reference data a use case needs, fetched before
// any transaction opens.
type planningContext struct {
	profile *domain.StudentProfile
	catalog *planner.Catalog
}

func (s *planningService) prepare(ctx context.Context, studentID string) (*planningContext, error) {
	profile, err := s.profiles.Complete(ctx, studentID)
	if err != nil {
		return nil, err
	}
	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return &planningContext{profile: profile, catalog: cat}, nil
}

// snapshot loads the student's attempts outside a transaction for read-only views.
func (s *planningService) snapshot(ctx context.Context, studentID string) (*planningContext, []domain.Attempt, error) {
	pc, err := s.prepare(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}
	attempts, err := s.attempts.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, nil, storeErr(app.ErrInternal, "loading attempts", err)
	}
	return pc, attempts, nil
}

// mutate runs fn in one transaction while holding the student's lock.
func (s *planningService) mutate(ctx context.Context, studentID string, fn func(ctx context.Context, pc *planningContext, repos txRepos) error) error {
	unlock, err := s.locks.acquire(ctx, studentID)
	if err != nil {
		return app.Wrap(app.ErrInternal, "waiting for another plan change to finish", err)
	}
	defer unlock()

	pc, err := s.prepare(ctx, studentID)
	if err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, pc, newTxRepos(tx))
	})
}

func (s *planningService) placementInput(pc *planningContext, attempts []domain.Attempt, item planner.PlacementItem, target domain.SemesterSlot) planner.PlacementInput {
	return planner.PlacementInput{
		Profile:  pc.profile,
		Catalog:  pc.catalog,
		Policy:   s.policy,
		Attempts: attempts,
		Item:     item,
		Target:   target,
	}
}

func (s *planningService) CheckPrerequisites(ctx context.Context, req app.CheckPrerequisitesRequest) (resp *app.PrerequisiteResponse, err error) {
	done := track(ctx, s.observer, "check-prerequisites", req.StudentID, map[string]any{"course": req.CourseCode})
	defer func() { err = engineErr(err); done(err) }()

	if err := app.Validate(req); err != nil {
		return nil, err
	}
	pc, attempts, err := s.snapshot(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	target := pc.profile.CurrentSlot()
	if req.Slot != nil {
		target = req.Slot.Slot()
	}
	if err := s.checkSlot(target); err != nil {
		return nil, err
	}
	if _, ok := pc.catalog.Course(req.CourseCode); !ok {
		return nil, app.Errorf(app.ErrCourseNotFound, "Course %s not found", req.CourseCode)
	}

	states := planner.EvaluateAttempts(attempts, pc.catalog, pc.profile, s.policy)
	result := planner.CheckPrerequisites(pc.catalog.PrerequisiteGroups(req.CourseCode),
		planner.AvailableBefore(states, target), pc.profile.MajorCode, pc.profile.CohortYear)
	return &app.PrerequisiteResponse{
		CourseCode:         req.CourseCode,
		Slot:               target,
		PrerequisiteResult: result,
		Messages:           result.Messages(),
	}, nil
}

func (s *planningService) ValidatePlacement(ctx context.Context, req app.ValidatePlacementRequest) (resp *app.ValidationResponse, err error) {
	done := track(ctx, s.observer, "validate-placement", req.StudentID, map[string]any{"course": req.CourseCode})
	defer func() { err = engineErr(err); done(err) }()

	if err := app.Validate(req); err != nil {
		return nil, err
	}
	target := req.Slot.Slot()
	if err := s.checkSlot(target); err != nil {
		return nil, err
	}
	pc, attempts, err := s.snapshot(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	item := planner.PlacementItem{CourseCode: req.CourseCode}
	if req.CourseCode == "" && req.Placeholder != nil {
		item = planner.PlacementItem{
			PlaceholderCredits:  req.Placeholder.Credits,
			PlaceholderCategory: domain.CoalesceStr(req.Placeholder.Category, domain.CategoryNonMajorElective),
		}
	}
	in := s.placementInput(pc, attempts, item, target)
	in.MovingAttemptID = req.MovingAttemptID
	result := planner.ValidatePlacement(in)
	if conflicts := planner.DependentConflicts(in); req.MovingAttemptID != "" && len(conflicts) > 0 {
		result.Errors = append(result.Errors, conflicts...)
		result.IsValid = false
	}

	resp = &app.ValidationResponse{PlacementResult: result, Slot: target}
	sem, err := s.semesters.GetByYearAndSequence(ctx, pc.profile.AcademicYearName(target.Year), int(target.Term))
	switch {
	case err == nil:
		resp.ResolvedSemester = resolvedSemester(sem)
	case errors.Is(err, repository.ErrNotFound):
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("No academic semester is scheduled for %s yet", target))
	default:
		return nil, storeErr(app.ErrInternal, "resolving academic semester", err)
	}
	return resp, nil
}

func (s *planningService) AddCourse(ctx context.Context, req app.AddCourseRequest) (resp *app.PlacementResponse, err error) {
	done := track(ctx, s.observer, "add-course", req.StudentID, map[string]any{"course": req.CourseCode})
	defer func() { err = engineErr(err); done(err) }()

	if err := app.Validate(req); err != nil {
		return nil, err
	}
	target := req.Slot.Slot()
	if err := s.checkSlot(target); err != nil {
		return nil, err
	}

	err = s.mutate(ctx, req.StudentID, func(ctx context.Context, pc *planningContext, repos txRepos) error {
		course, ok := pc.catalog.Course(req.CourseCode)
		if !ok {
			return app.Errorf(app.ErrCourseNotFound, "Course %s not found", req.CourseCode)
		}
		attempts, err := repos.attempts.ListByStudent(ctx, req.StudentID)
		if err != nil {
			return storeErr(app.ErrCourseAdd, "loading attempts", err)
		}
		result := planner.ValidatePlacement(s.placementInput(pc, attempts, planner.PlacementItem{CourseCode: course.Code}, target))
		if !result.IsValid {
			return rejection(app.ErrCourseAdd, result.Errors)
		}
		sem, err := resolveSlot(ctx, repos, pc.profile, target)
		if err != nil {
			return err
		}
		a := newPlannedAttempt(req.StudentID, target)
		a.CourseCode = course.Code
		if result.VoluntaryRetake {
			a.Notes = "voluntary retake"
		}
		if err := repos.attempts.Create(ctx, a); err != nil {
			return storeErr(app.ErrCourseAdd, "saving course", err)
		}
		resp = &app.PlacementResponse{
			AttemptID:  a.ID,
			CourseCode: course.Code,
			Title:      course.Title,
			Slot:       target,
			Semester:   resolvedSemester(sem),
			Warnings:   nonNil(result.Warnings),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *planningService) AddPlaceholder(ctx context.Context, req app.AddPlaceholderRequest) (resp *app.PlacementResponse, err error) {
	done := track(ctx, s.observer, "add-placeholder", req.StudentID, map[string]any{"title": req.Placeholder.Title})
	defer func() { err = engineErr(err); done(err) }()

	if err := app.Validate(req); err != nil {
		return nil, err
	}
	target := req.Slot.Slot()
	if err := s.checkSlot(target); err != nil {
		return nil, err
	}
	category := domain.CoalesceStr(req.Placeholder.Category, domain.CategoryNonMajorElective)

	err = s.mutate(ctx, req.StudentID, func(ctx context.Context, pc *planningContext, repos txRepos) error {
		attempts, err := repos.attempts.ListByStudent(ctx, req.StudentID)
		if err != nil {
			return storeErr(app.ErrPlaceholderAdd, "loading attempts", err)
		}
		item := planner.PlacementItem{PlaceholderCredits: req.Placeholder.Credits, PlaceholderCategory: category}
		result := planner.ValidatePlacement(s.placementInput(pc, attempts, item, target))
		if !result.IsValid {
			return rejection(app.ErrPlaceholderAdd, result.Errors)
		}
		sem, err := resolveSlot(ctx, repos, pc.profile, target)
		if err != nil {
			return err
		}
		a := newPlannedAttempt(req.StudentID, target)
		a.PlaceholderTitle = req.Placeholder.Title
		a.PlaceholderCredits = req.Placeholder.Credits
		a.CategoryName = category
		if err := repos.attempts.Create(ctx, a); err != nil {
			return storeErr(app.ErrPlaceholderAdd, "saving placeholder", err)
		}
		resp = &app.PlacementResponse{
			AttemptID: a.ID,
			Title:     a.PlaceholderTitle,
			Slot:      target,
			Semester:  resolvedSemester(sem),
			Warnings:  nonNil(result.Warnings),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// plannedAttempt loads an attempt owned by the student, treating another
// student's attempt as missing.
func plannedAttempt(ctx context.Context, repos txRepos, studentID, attemptID string) (*domain.Attempt, error) {
	a, err := repos.attempts.GetByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, app.NewError(app.ErrCourseNotFound, "Course not found or not a planned course")
		}
		return nil, storeErr(app.ErrInternal, "loading attempt", err)
	}
	if a.StudentID != studentID {
		return nil, app.NewError(app.ErrCourseNotFound, "Course not found or not a planned course")
	}
	return a, nil
}

func (s *planningService) MoveCourse(ctx context.Context, req app.MoveCourseRequest) (resp *app.PlacementResponse, err error) {
	done := track(ctx, s.observer, "move-course", req.StudentID, map[string]any{"attempt": req.AttemptID})
	defer func() { err = engineErr(err); done(err) }()

	if err := app.Validate(req); err != nil {
		return nil, err
	}
	target := req.Slot.Slot()
	if err := s.checkSlot(target); err != nil {
		return nil, err
	}

	err = s.mutate(ctx, req.StudentID, func(ctx context.Context, pc *planningContext, repos txRepos) error {
		a, err := plannedAttempt(ctx, repos, req.StudentID, req.AttemptID)
		if err != nil {
			return err
		}
		if !a.IsPlanned() {
			return app.Errorf(app.ErrInvalidCourse, "Only planned courses can be moved; %s is %s",
				domain.CoalesceStr(a.CourseCode, a.PlaceholderTitle), a.Status)
		}
		code := app.ErrCourseMove
		item := planner.PlacementItem{CourseCode: a.CourseCode}
		if a.IsPlaceholder() {
			code = app.ErrPlaceholderMove
			item = planner.PlacementItem{PlaceholderCredits: a.PlaceholderCredits, PlaceholderCategory: a.CategoryName}
		}

		attempts, err := repos.attempts.ListByStudent(ctx, req.StudentID)
		if err != nil {
			return storeErr(code, "loading attempts", err)
		}
		in := s.placementInput(pc, attempts, item, target)
		in.MovingAttemptID = a.ID
		result := planner.ValidatePlacement(in)
		if !result.IsValid {
			return rejection(code, result.Errors)
		}
		if conflicts := planner.DependentConflicts(in); len(conflicts) > 0 {
			return rejection(app.ErrPrerequisiteMove, conflicts)
		}

		sem, err := resolveSlot(ctx, repos, pc.profile, target)
		if err != nil {
			return err
		}
		a.Slot = target
		if err := repos.attempts.Update(ctx, a); err != nil {
			return storeErr(code, "moving course", err)
		}
		course, _ := pc.catalog.Course(a.CourseCode)
		resp = &app.PlacementResponse{
			AttemptID:  a.ID,
			CourseCode: a.CourseCode,
			Title:      a.Title(course),
			Slot:       target,
			Semester:   resolvedSemester(sem),
			Warnings:   nonNil(result.Warnings),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *planningService) RemoveCourse(ctx context.Context, req app.RemoveCourseRequest) (resp *app.RemoveCourseResponse, err error) {
	done := track(ctx, s.observer, "remove-course", req.StudentID, map[string]any{"attempt": req.AttemptID})
	defer func() { err = engineErr(err); done(err) }()

	if err := app.Validate(req); err != nil {
		return nil, err
	}

	err = s.mutate(ctx, req.StudentID, func(ctx context.Context, pc *planningContext, repos txRepos) error {
		a, err := plannedAttempt(ctx, repos, req.StudentID, req.AttemptID)
		if err != nil {
			return err
		}
		if !a.IsPlanned() {
			return app.NewError(app.ErrCourseNotFound, "Course not found or not a planned course")
		}
		attempts, err := repos.attempts.ListByStudent(ctx, req.StudentID)
		if err != nil {
			return storeErr(app.ErrCourseRemove, "loading attempts", err)
		}
		before := planner.Analyze(attempts, pc.catalog, pc.profile, s.policy)
		if err := repos.attempts.Delete(ctx, a.ID); err != nil {
			return storeErr(app.ErrCourseRemove, "removing course", err)
		}
		after := planner.Analyze(withoutAttempt(attempts, a.ID), pc.catalog, pc.profile, s.policy)

		course, _ := pc.catalog.Course(a.CourseCode)
		resp = &app.RemoveCourseResponse{
			AttemptID:  a.ID,
			CourseCode: a.CourseCode,
			Title:      a.Title(course),
			Warnings:   removalWarnings(a, course, before, after),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func withoutAttempt(attempts []domain.Attempt, id string) []domain.Attempt {
	out := make([]domain.Attempt, 0, len(attempts))
	for _, a := range attempts {
		if a.ID != id {
			out = append(out, a)
		}
	}
	return out
}

// removalWarnings explains what the removed attempt leaves outstanding.
func removalWarnings(a *domain.Attempt, course *domain.Course, before, after planner.Analysis) []string {
	warnings := []string{}
	if course != nil {
		if item, ok := after.RemainingFor(course.Code); ok {
			switch item.Kind {
			case planner.KindRetake:
				return append(warnings, fmt.Sprintf(
					"You must retake %s because it is a required course for your degree. Schedule it in a future semester to meet graduation requirements.",
					course.Label()))
			case planner.KindRequired:
				return append(warnings, fmt.Sprintf(
					"%s is a required course for your degree. You will need to schedule it in a future semester to meet graduation requirements.",
					course.Label()))
			}
		}
	}

	category, ok := before.CategoryOf(a.ID)
	if !ok {
		return warnings
	}
	pr, ok := after.ProgressFor(category)
	if !ok || pr.Met {
		return warnings
	}
	var shortfall string
	switch {
	case pr.CreditsRemaining > 0:
		shortfall = fmt.Sprintf("%g more credits", pr.CreditsRemaining)
	case pr.CoursesRemaining > 0:
		shortfall = fmt.Sprintf("%d more courses", pr.CoursesRemaining)
		if pr.CoursesRemaining == 1 {
			shortfall = "1 more course"
		}
	default:
		return warnings
	}
	return append(warnings, fmt.Sprintf(
		"%q counted toward %s and you still need %s in %s. Add another course to meet this requirement.",
		a.Title(course), category, shortfall, category))
}

func (s *planningService) GenerateAutomaticPlan(ctx context.Context, req app.GeneratePlanRequest) (resp *app.GeneratePlanResponse, err error) {
	fields := map[string]any{"balance": req.Balance()}
	done := track(ctx, s.observer, "generate-plan", req.StudentID, fields)
	defer func() { err = engineErr(err); done(err) }()

	if err := app.Validate(req); err != nil {
		return nil, err
	}
	if req.Start != nil {
		if err := s.checkSlot(req.Start.Slot()); err != nil {
			return nil, err
		}
	}

	err = s.mutate(ctx, req.StudentID, func(ctx context.Context, pc *planningContext, repos txRepos) error {
		start := pc.profile.CurrentSlot()
		if req.Start != nil {
			start = req.Start.Slot()
		}
		cleared, err := repos.attempts.DeletePlanned(ctx, req.StudentID)
		if err != nil {
			return storeErr(app.ErrPlanGeneration, "clearing planned courses", err)
		}
		attempts, err := repos.attempts.ListByStudent(ctx, req.StudentID)
		if err != nil {
			return storeErr(app.ErrPlanGeneration, "loading attempts", err)
		}
		analysis := planner.Analyze(attempts, pc.catalog, pc.profile, s.policy)

		result := planner.GeneratePlan(planner.GenerateInput{
			Profile:        pc.profile,
			Catalog:        pc.catalog,
			Policy:         s.policy,
			States:         analysis.States,
			Remaining:      analysis.Remaining,
			Start:          start,
			BalanceCredits: req.Balance(),
			ResolveSlot: func(slot domain.SemesterSlot) error {
				_, err := resolveSlot(ctx, repos, pc.profile, slot)
				return err
			},
		})
		for _, edge := range result.Cycles {
			s.log.Warn().Str("student_id", req.StudentID).Str("course", edge.From).Str("prerequisite", edge.To).
				Msg("prerequisite cycle ignored during plan generation")
		}

		for _, p := range result.Placements {
			if err := repos.attempts.Create(ctx, attemptFromItem(req.StudentID, p)); err != nil {
				return storeErr(app.ErrPlanGeneration, fmt.Sprintf("saving %s", p.Item.Label()), err)
			}
		}

		attempts, err = repos.attempts.ListByStudent(ctx, req.StudentID)
		if err != nil {
			return storeErr(app.ErrPlanGeneration, "reloading attempts", err)
		}
		final := planner.Analyze(attempts, pc.catalog, pc.profile, s.policy)
		resp = &app.GeneratePlanResponse{
			Plan:    final.Plan(pc.profile, pc.catalog, s.policy),
			Summary: planner.Summarize(result, pc.profile, s.policy),
		}
		fields["cleared"] = cleared
		fields["placed"] = len(result.Placements)
		fields["unplaced"] = len(result.Unplaced)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *planningService) GetPlan(ctx context.Context, req app.StudentRequest) (plan *domain.Plan, err error) {
	done := track(ctx, s.observer, "get-plan", req.StudentID, nil)
	defer func() { err = engineErr(err); done(err) }()

	if err := app.Validate(req); err != nil {
		return nil, err
	}
	pc, attempts, err := s.snapshot(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	p := planner.Analyze(attempts, pc.catalog, pc.profile, s.policy).Plan(pc.profile, pc.catalog, s.policy)
	return &p, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
