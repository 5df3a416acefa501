package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Dev4EM/emp-sub000/internal/config"
	"github.com/Dev4EM/emp-sub000/internal/domain/attendance"
	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
	appHTTP "github.com/Dev4EM/emp-sub000/internal/handler/http"
	"github.com/Dev4EM/emp-sub000/internal/pkg/cron"
	"github.com/Dev4EM/emp-sub000/internal/pkg/database"
	"github.com/Dev4EM/emp-sub000/internal/pkg/jwt"
	"github.com/Dev4EM/emp-sub000/internal/pkg/sse"
	"github.com/Dev4EM/emp-sub000/internal/repository/postgresql"
	attendanceService "github.com/Dev4EM/emp-sub000/internal/service/attendance"
	authService "github.com/Dev4EM/emp-sub000/internal/service/auth"
	departmentService "github.com/Dev4EM/emp-sub000/internal/service/department"
	employeeService "github.com/Dev4EM/emp-sub000/internal/service/employee"
	leaveService "github.com/Dev4EM/emp-sub000/internal/service/leave"
	"github.com/Dev4EM/emp-sub000/internal/service/master"
	notificationService "github.com/Dev4EM/emp-sub000/internal/service/notification"
	"github.com/Dev4EM/emp-sub000/internal/service/reminder"
	reportService "github.com/Dev4EM/emp-sub000/internal/service/report"
	scheduleService "github.com/Dev4EM/emp-sub000/internal/service/schedule"
)

// notificationRetention is how long read notifications survive before
// the purge job removes them.
const notificationRetention = 30 * 24 * time.Hour

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	location, err := time.LoadLocation(cfg.Attendance.Timezone)
	if err != nil {
		logger.Error("invalid company timezone", "timezone", cfg.Attendance.Timezone, "error", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Repositories
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	overrideRepo := postgresql.NewWeekOffOverrideRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	programRepo := postgresql.NewProgramRepository(db)
	batchRepo := postgresql.NewBatchRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	calendar, err := buildCalendar(shiftRepo, cfg.Attendance.DefaultShiftLabel, logger)
	if err != nil {
		logger.Error("failed to build shift calendar", "error", err)
		os.Exit(1)
	}

	thresholds := attendance.Thresholds{
		LateMark:   cfg.Attendance.LateMarkMinutes,
		HalfDayMin: cfg.Attendance.HalfDayMinMinutes,
		HalfDayMax: cfg.Attendance.HalfDayMaxMinutes,
	}

	// Services
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, redisClient)
	hub := sse.NewHub()
	notifier := notificationService.NewNotificationService(
		notificationRepo, employeeRepo, hub, logger, notificationService.DefaultConfig())
	defer notifier.Stop()

	authSvc := authService.NewAuthService(userRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, userRepo, departmentRepo)
	departmentSvc := departmentService.NewDepartmentService(departmentRepo)
	scheduleSvc := scheduleService.NewScheduleService(shiftRepo, overrideRepo, employeeRepo, calendar)
	attendanceSvc := attendanceService.NewAttendanceService(
		punchRepo, employeeRepo, departmentRepo, overrideRepo, leaveRepo, calendar, thresholds, location)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo, userRepo, notifier, location, logger)
	masterSvc := master.NewMasterService(programRepo, batchRepo, sessionRepo)
	reportSvc := reportService.NewReportService(
		employeeRepo, departmentRepo, punchRepo, overrideRepo, leaveRepo, calendar, thresholds, location)
	reminderSvc := reminder.NewReminderService(
		punchRepo, employeeRepo, notifier, location, notificationRetention, logger)

	// Scheduled jobs
	scheduler := cron.NewScheduler()
	scheduler.AddJob("forgot-checkout-reminder", time.Hour, reminderSvc.NotifyForgotCheckouts)
	scheduler.AddJob("notification-purge", 24*time.Hour, reminderSvc.PurgeNotifications)
	scheduler.Start()
	defer scheduler.Stop()

	// HTTP layer
	router := appHTTP.NewRouter(jwtService, []string{cfg.App.FrontendURL}, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(jwtService, authSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Department:   appHTTP.NewDepartmentHandler(departmentSvc),
		Schedule:     appHTTP.NewScheduleHandler(scheduleSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Master:       appHTTP.NewMasterHandler(masterSvc),
		Notification: appHTTP.NewNotificationHandler(notifier, jwtService),
		Report:       appHTTP.NewReportHandler(reportSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}

// buildCalendar loads the shift table and seeds the default shift on an
// empty database so classification always has a window to fall back to.
func buildCalendar(shiftRepo schedule.ShiftRepository, defaultLabel string, logger *slog.Logger) (*schedule.Calendar, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shifts, err := shiftRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	hasDefault := false
	for _, s := range shifts {
		if s.Label == defaultLabel {
			hasDefault = true
			break
		}
	}
	if !hasDefault {
		seeded, err := shiftRepo.Create(ctx, schedule.Shift{
			Label: defaultLabel,
			Start: schedule.TimeOfDay{Hour: 9, Minute: 0},
			End:   schedule.TimeOfDay{Hour: 18, Minute: 0},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to seed default shift: %w", err)
		}
		logger.Info("seeded default shift", "label", seeded.Label)
		shifts = append(shifts, seeded)
	}

	return schedule.NewCalendar(shifts, defaultLabel)
}
