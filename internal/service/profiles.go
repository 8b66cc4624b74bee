package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/degreeplan/internal/app"
	"github.com/alexanderramin/degreeplan/internal/cache"
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/repository"
)

// StudentProfiles reads profiles through the profile cache.
type StudentProfiles struct {
	students repository.StudentRepo
	loader   *cache.Loader
	ttl      time.Duration
}

func NewStudentProfiles(students repository.StudentRepo, loader *cache.Loader, ttl time.Duration) *StudentProfiles {
	return &StudentProfiles{students: students, loader: loader, ttl: ttl}
}

// Get returns the stored profile, complete or not.
func (p *StudentProfiles) Get(ctx context.Context, studentID string) (*domain.StudentProfile, error) {
	profile, err := cache.Fetch(ctx, p.loader, cache.Key.StudentProfileKey(studentID), p.ttl,
		func(ctx context.Context) (*domain.StudentProfile, error) {
			return p.students.Get(ctx, studentID)
		})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, app.Errorf(app.ErrStudentNotFound, "Student not found: %s", studentID)
		}
		return nil, app.Wrap(app.ErrInternal, "loading student profile", err)
	}
	return profile, nil
}

// Complete returns the profile only when it carries everything planning needs.
func (p *StudentProfiles) Complete(ctx context.Context, studentID string) (*domain.StudentProfile, error) {
	profile, err := p.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !profile.Complete() {
		return nil, app.NewError(app.ErrProfileIncomplete, "Student profile incomplete or missing")
	}
	return profile, nil
}

func (p *StudentProfiles) Invalidate(ctx context.Context, studentID string) {
	p.loader.Invalidate(ctx, cache.Key.StudentProfileKey(studentID))
}
