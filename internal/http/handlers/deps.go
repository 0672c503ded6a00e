package handlers

import (
	"github.com/jmoiron/sqlx"

	"fangji/internal/metrics"
	"fangji/internal/repos"
	"fangji/internal/services"
)

type Deps struct {
	DB      *sqlx.DB
	Repo    *repos.PrescriptionRepo
	Metrics *metrics.Metrics

	PrescriptionHandler *PrescriptionHandler
	SearchHandler       *SearchHandler
	CategoryHandler     *CategoryHandler
	PageHandler         *PageHandler
	HealthHandler       *HealthHandler
}

func NewDeps(db *sqlx.DB, m *metrics.Metrics) *Deps {
	rxRepo := repos.NewPrescriptionRepo(db)
	catRepo := repos.NewCategoryRepo(db)

	rxSvc := services.NewPrescriptionService(rxRepo)
	catalogSvc := services.NewCatalogService(catRepo)

	return &Deps{
		DB:      db,
		Repo:    rxRepo,
		Metrics: m,

		PrescriptionHandler: &PrescriptionHandler{Rx: rxSvc, Metrics: m},
		SearchHandler:       &SearchHandler{Rx: rxSvc, Metrics: m},
		CategoryHandler:     &CategoryHandler{Catalog: catalogSvc},
		PageHandler:         &PageHandler{},
		HealthHandler:       &HealthHandler{DB: db},
	}
}
