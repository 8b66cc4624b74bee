package service

import (
	"context"

	"github.com/alexanderramin/degreeplan/internal/app"
	"github.com/alexanderramin/degreeplan/internal/planner"
)

func (s *planningService) GetRequirements(ctx context.Context, req app.StudentRequest) (resp *app.RequirementsResponse, err error) {
	done := track(ctx, s.observer, "get-requirements", req.StudentID, nil)
	defer func() { err = engineErr(err); done(err) }()

	if err := app.Validate(req); err != nil {
		return nil, err
	}
	pc, attempts, err := s.snapshot(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	items := planner.Analyze(attempts, pc.catalog, pc.profile, s.policy).Remaining
	if items == nil {
		items = []planner.RemainingItem{}
	}
	return &app.RequirementsResponse{
		StudentID: req.StudentID,
		Items:     items,
		Counts:    app.CountRequirements(items),
	}, nil
}

func (s *planningService) GetAvailableCourses(ctx context.Context, req app.AvailableCoursesRequest) (resp *app.AvailableCoursesResponse, err error) {
	done := track(ctx, s.observer, "get-available-courses", req.StudentID, nil)
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
	a := planner.Analyze(attempts, pc.catalog, pc.profile, s.policy)
	courses := planner.AvailableCourses(pc.catalog, pc.profile, s.policy, a.States, a.Remaining, target)
	if courses == nil {
		courses = []planner.AvailableCourse{}
	}
	return &app.AvailableCoursesResponse{Slot: target, Courses: courses}, nil
}

func (s *planningService) GetElectiveCategories(ctx context.Context, req app.StudentRequest) (resp *app.ElectiveCategoriesResponse, err error) {
	done := track(ctx, s.observer, "get-elective-categories", req.StudentID, nil)
	defer func() { err = engineErr(err); done(err) }()

	if err := app.Validate(req); err != nil {
		return nil, err
	}
	pc, attempts, err := s.snapshot(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	a := planner.Analyze(attempts, pc.catalog, pc.profile, s.policy)
	return &app.ElectiveCategoriesResponse{Categories: planner.ElectiveCategories(a.Progress)}, nil
}
