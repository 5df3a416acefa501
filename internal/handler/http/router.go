package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/Dev4EM/emp-sub000/internal/handler/http/middleware"
	"github.com/Dev4EM/emp-sub000/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Employee     EmployeeHandler
	Department   DepartmentHandler
	Schedule     ScheduleHandler
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	Master       MasterHandler
	Notification NotificationHandler
	Report       ReportHandler
}

func NewRouter(jwtService jwt.Service, allowedOrigins []string, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "emp-sub000"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// The stream authenticates with its own short-lived token, so
		// it sits outside the JWT-verified group.
		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Post("/auth/change-password", h.Auth.ChangePassword)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", h.Employee.GetMe)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Get("/{id}", h.Employee.Get)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", h.Department.List)
				r.Get("/{id}", h.Department.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Department.Create)
					r.Put("/{id}", h.Department.Update)
					r.Delete("/{id}", h.Department.Delete)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", h.Schedule.ListShifts)
				r.Get("/{id}", h.Schedule.GetShift)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Schedule.CreateShift)
					r.Put("/{id}", h.Schedule.UpdateShift)
					r.Delete("/{id}", h.Schedule.DeleteShift)
				})
			})

			r.Route("/week-off-overrides", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/", h.Schedule.CreateOverride)
				r.Delete("/{id}", h.Schedule.DeleteOverride)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/my", h.Attendance.GetMyPunches)
				r.Get("/my/day-status", h.Attendance.MyDayStatus)
				r.Get("/my/summary", h.Attendance.MySummary)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Attendance.List)
					r.Get("/{employeeID}/day-status", h.Attendance.DayStatus)
					r.Get("/{employeeID}/summary", h.Attendance.Summary)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", h.Leave.Apply)
				r.Get("/my", h.Leave.GetMyLeaves)
				r.Delete("/{id}", h.Leave.Cancel)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Leave.List)
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
				})
			})

			// Admin only master data
			r.Route("/master", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/programs", func(r chi.Router) {
					r.Get("/", h.Master.ListPrograms)
					r.Post("/", h.Master.CreateProgram)
					r.Get("/{id}", h.Master.GetProgram)
					r.Put("/{id}", h.Master.UpdateProgram)
					r.Delete("/{id}", h.Master.DeleteProgram)
				})

				r.Route("/batches", func(r chi.Router) {
					r.Get("/", h.Master.ListBatches)
					r.Post("/", h.Master.CreateBatch)
					r.Get("/{id}", h.Master.GetBatch)
					r.Put("/{id}", h.Master.UpdateBatch)
					r.Delete("/{id}", h.Master.DeleteBatch)
				})

				r.Route("/sessions", func(r chi.Router) {
					r.Get("/", h.Master.ListSessions)
					r.Post("/", h.Master.CreateSession)
					r.Get("/{id}", h.Master.GetSession)
					r.Put("/{id}", h.Master.UpdateSession)
					r.Delete("/{id}", h.Master.DeleteSession)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/mark-read", h.Notification.MarkAsRead)
				r.Post("/mark-all-read", h.Notification.MarkAllAsRead)
				r.Delete("/{id}", h.Notification.Delete)
				r.Get("/sse-token", h.Notification.GetSSEToken)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/broadcast", h.Notification.Broadcast)
				})
			})

			// Admin only reports
			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/monthly", h.Report.Monthly)
				r.Get("/monthly/export", h.Report.Export)
			})
		})
	})
	return r
}
