package handler

import (
	"github.com/gofiber/fiber/v2"

	"caseapi/internal/service"
	"caseapi/internal/storage"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// files may be nil, in which case /storage is not mounted.
func RegisterRoutes(app *fiber.App, db Pinger, svc service.CaseService, files *storage.LocalStore) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Get("/cases", ListCases(svc))
	api.Post("/cases", CreateCase(svc))
	api.Get("/cases/:id", GetCase(svc))
	api.Post("/cases/:id/documents", UploadDocument(svc))
	api.Put("/cases/:id/status", UpdateStatus(svc))
	api.Get("/cases/:id/template", CaseTemplate(svc))
	api.Get("/cases/:id/summary", CaseSummary(svc))
	api.Get("/template/blank", BlankTemplate(svc))
	api.Get("/stats", Stats(svc))

	if files != nil {
		app.Get("/storage/*", ServeStorage(files))
	}
}
