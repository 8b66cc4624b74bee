package service

import (
	"context"
	"time"

	"github.com/alexanderramin/degreeplan/internal/app"
	"github.com/alexanderramin/degreeplan/internal/cache"
	"github.com/alexanderramin/degreeplan/internal/planner"
	"github.com/alexanderramin/degreeplan/internal/repository"
)

// CatalogProvider serves the reference catalog. Snapshots are cached
// catalog-wide and never hold student data.
type CatalogProvider interface {
	Catalog(ctx context.Context) (*planner.Catalog, error)
	Invalidate(ctx context.Context)
}

type catalogProvider struct {
	repo   repository.CatalogRepo
	loader *cache.Loader
	ttl    time.Duration
}

func NewCatalogProvider(repo repository.CatalogRepo, loader *cache.Loader, ttl time.Duration) CatalogProvider {
	return &catalogProvider{repo: repo, loader: loader, ttl: ttl}
}

func (p *catalogProvider) Catalog(ctx context.Context) (*planner.Catalog, error) {
	snap, err := cache.Fetch(ctx, p.loader, cache.Key.CatalogSnapshotKey(), p.ttl,
		func(ctx context.Context) (*repository.CatalogSnapshot, error) {
			return p.repo.Snapshot(ctx)
		})
	if err != nil {
		return nil, app.Wrap(app.ErrInternal, "loading course catalog", err)
	}
	return planner.NewCatalog(planner.CatalogData{
		Courses:           snap.Courses,
		Groups:            snap.Groups,
		Categories:        snap.Categories,
		Requirements:      snap.Requirements,
		Categorizations:   snap.Categorizations,
		GradeRequirements: snap.GradeRequirements,
	}), nil
}

func (p *catalogProvider) Invalidate(ctx context.Context) {
	p.loader.InvalidatePrefix(ctx, cache.CatalogPrefix)
}
