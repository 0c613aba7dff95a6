package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/prolyhq/payroll-backend-go/internal/config"
)

func NewRouter(
	cfg *config.Config,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	complianceHandler ComplianceHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "proly-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/employees", func(r chi.Router) {
			r.Post("/", employeeHandler.Create)
			r.Get("/", employeeHandler.ListActive)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", employeeHandler.GetByID)
				r.Put("/salary", employeeHandler.UpdateSalary)
				r.Get("/salary-history", employeeHandler.SalaryHistory)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/clock-in", attendanceHandler.ClockIn)
			r.Post("/clock-out", attendanceHandler.ClockOut)
			r.Post("/status", attendanceHandler.MarkStatus)
			r.Get("/employees/{employeeID}", attendanceHandler.ListForEmployee)
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Route("/periods", func(r chi.Router) {
				r.Post("/", payrollHandler.CreatePeriod)
				r.Get("/", payrollHandler.ListPeriods)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", payrollHandler.GetPeriod)
					r.Post("/compute", payrollHandler.ComputePeriod)
					r.Post("/compute/{employeeID}", payrollHandler.ComputeForEmployee)
					r.Get("/entries", payrollHandler.ListEntries)
					r.Post("/submit", payrollHandler.SubmitPeriod)
					r.Post("/approve", payrollHandler.ApprovePeriod)
					r.Post("/reject", payrollHandler.RejectPeriod)
					r.Post("/reopen", payrollHandler.ReopenPeriod)
				})
			})
			r.Route("/entries/{entryID}", func(r chi.Router) {
				r.Get("/", payrollHandler.GetEntry)
				r.Post("/review", payrollHandler.ReviewEntry)
				r.Get("/history", payrollHandler.EntryHistory)
			})
		})

		r.Route("/compliance", func(r chi.Router) {
			r.Post("/rate-tables", complianceHandler.Upload)
			r.Get("/rate-tables/{type}", complianceHandler.History)
			r.Get("/preview", complianceHandler.Preview)
		})
	})

	return r
}
