package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/degreeplan/internal/app"
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/repository"
)

type profileService struct {
	students repository.StudentRepo
	profiles *StudentProfiles
	observer UseCaseObserver
}

func NewProfileService(students repository.StudentRepo, profiles *StudentProfiles, observers ...UseCaseObserver) ProfileService {
	return &profileService{students: students, profiles: profiles, observer: useCaseObserverOrNoop(observers)}
}

// SetProfile creates or updates a student profile and drops its cached copy.
func (s *profileService) SetProfile(ctx context.Context, req app.SetProfileRequest) (profile *domain.StudentProfile, err error) {
	done := track(ctx, s.observer, "set-profile", req.StudentID, map[string]any{"major": req.MajorCode})
	defer func() { err = engineErr(err); done(err) }()

	if err := app.Validate(req); err != nil {
		return nil, err
	}
	profile = &domain.StudentProfile{
		StudentID:      req.StudentID,
		Name:           req.Name,
		MajorCode:      req.MajorCode,
		MathTrack:      req.MathTrack,
		CapstoneOption: req.CapstoneOption,
		CohortYear:     req.CohortYear,
		CurrentYear:    req.CurrentYear,
		CurrentTerm:    req.CurrentSemester,
	}
	existing, err := s.students.Get(ctx, req.StudentID)
	switch {
	case err == nil:
		profile.CreatedAt = existing.CreatedAt
	case !errors.Is(err, repository.ErrNotFound):
		return nil, storeErr(app.ErrInternal, "loading student profile", err)
	}
	if err := s.students.Upsert(ctx, profile); err != nil {
		return nil, storeErr(app.ErrInternal, "saving student profile", err)
	}
	s.profiles.Invalidate(ctx, req.StudentID)
	return profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, req app.StudentRequest) (*domain.StudentProfile, error) {
	if err := app.Validate(req); err != nil {
		return nil, err
	}
	return s.profiles.Get(ctx, req.StudentID)
}
