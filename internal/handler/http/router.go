package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/attendly/attendance-backend-go/internal/handler/http/middleware"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	Env      string
	Location *time.Location
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	summaryHandler SummaryHandler,
	correctionHandler CorrectionHandler,
	leaveHandler LeaveHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(WithLocation(cfg.Location))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/status", attendanceHandler.Status)
				r.Get("/me", attendanceHandler.GetMyAttendance)
			})

			r.Route("/summaries", func(r chi.Router) {
				r.Get("/daily", summaryHandler.GetDailySummary)
				r.Get("/monthly", summaryHandler.GetMonthlySummary)
			})

			r.Route("/corrections", func(r chi.Router) {
				r.Post("/", correctionHandler.Create)
				r.Get("/me", correctionHandler.GetMyCorrections)

				// Approver only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ApproverOnly)
					r.Get("/pending", correctionHandler.GetPendingCorrections)
					r.Post("/{id}/approve", correctionHandler.Approve)
					r.Post("/{id}/reject", correctionHandler.Reject)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Create)
				r.Put("/{id}", leaveHandler.Update)
				r.Get("/me", leaveHandler.GetMyLeaves)
				r.Get("/remaining", leaveHandler.GetRemainingDays)

				// Approver only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ApproverOnly)
					r.Get("/pending", leaveHandler.GetPendingLeaves)
					r.Post("/{id}/approve", leaveHandler.Approve)
					r.Post("/{id}/reject", leaveHandler.Reject)
				})
			})
		})
	})
	return r
}
