package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"studyhub/internal/service"
)

// Services bundles the use cases exposed over HTTP.
type Services struct {
	Uploads service.UploadService
	Exams   service.ExamService
	Chat    service.ChatService
	Account service.AccountService
	// Location resolves calendar dates for study activity. Defaults to UTC.
	Location *time.Location
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services) {
	loc := svc.Location
	if loc == nil {
		loc = time.UTC
	}

	registerDocs(app)

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", Liveness())

	uploads := app.Group("/uploads")
	uploads.Get("/", ListUploads(svc.Uploads))
	uploads.Post("/", UploadFile(svc.Uploads))
	uploads.Get("/statistics", UploadStatistics(svc.Uploads))
	uploads.Get("/:id", GetUpload(svc.Uploads))
	uploads.Delete("/:id", DeleteUpload(svc.Uploads))
	uploads.Post("/:id/process", ProcessUpload(svc.Uploads))
	uploads.Get("/:id/content", UploadContent(svc.Uploads))
	uploads.Get("/:id/download", DownloadUpload(svc.Uploads))

	exams := app.Group("/exams")
	exams.Get("/", ListExams(svc.Exams))
	exams.Post("/", CreateExam(svc.Exams))
	exams.Get("/statistics", ExamStatistics(svc.Exams))
	exams.Get("/:id", GetExam(svc.Exams))
	exams.Patch("/:id", UpdateExam(svc.Exams))
	exams.Delete("/:id", DeleteExam(svc.Exams))
	exams.Get("/:id/solutions", ListSolutions(svc.Exams))
	exams.Post("/:id/solutions", AddSolution(svc.Exams))

	chat := app.Group("/chat")
	chat.Post("/messages", SendMessage(svc.Chat))
	chat.Get("/sessions", ListSessions(svc.Chat))
	chat.Get("/sessions/:id/messages", SessionMessages(svc.Chat))
	chat.Delete("/sessions/:id", DeleteSession(svc.Chat))

	users := app.Group("/users/:userID")
	users.Get("/settings", GetSettings(svc.Account))
	users.Patch("/settings", UpdateSettings(svc.Account))
	users.Get("/streak", GetStreak(svc.Account))
	users.Post("/streak/activity", RecordActivity(svc.Account, loc))
}
