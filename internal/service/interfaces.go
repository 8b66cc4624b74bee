package service

import (
	"context"

	"github.com/alexanderramin/degreeplan/internal/app"
	"github.com/alexanderramin/degreeplan/internal/importer"
)

type PlanningService interface {
	app.PlanningUseCase
	app.RequirementsUseCase
}

type ProfileService interface {
	app.ProfileUseCase
}

type ImportService interface {
	app.ImportUseCase
	ImportCatalogSchema(ctx context.Context, schema *importer.CatalogSchema) (*app.ImportResult, error)
	ImportStudentSchema(ctx context.Context, schema *importer.StudentSchema) (*app.ImportResult, error)
}

// Engine is the full use-case surface handed to the CLI and HTTP layers.
type Engine struct {
	PlanningService
	ProfileService
}

var _ app.Engine = Engine{}
