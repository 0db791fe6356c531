package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"submitapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; everything goes through the
// injected service.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.SubmissionService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/submissions", CreateSubmission(svc))
	app.Get("/submissions", ListSubmissions(svc))
	app.Get("/submissions/:id", GetSubmission(svc))
	app.Delete("/submissions/:id", DeleteSubmission(svc))
}
