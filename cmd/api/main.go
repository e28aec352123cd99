package main

import (
	"fmt"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/config"
	appHTTP "github.com/attendly/attendance-backend-go/internal/handler/http"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
	"github.com/attendly/attendance-backend-go/internal/pkg/cron"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/attendly/attendance-backend-go/internal/service/attendance"
	correctionService "github.com/attendly/attendance-backend-go/internal/service/correction"
	leaveService "github.com/attendly/attendance-backend-go/internal/service/leave"
	summaryService "github.com/attendly/attendance-backend-go/internal/service/summary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)
	correctionRepo := postgresql.NewCorrectionRepository(db)
	leaveRepo := postgresql.NewLeaveRequestRepository(db)
	userRepo := postgresql.NewUserRepository(db)
	workLocationRepo := postgresql.NewWorkLocationRepository(db)
	holidayCalendar := postgresql.NewHolidayCalendar(db)

	appClock := clock.NewSystem(cfg.Location())
	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	punchGuard := attendanceService.NewPunchGuard(cfg.Attendance.PunchCooldown)
	summarySvc := summaryService.NewSummaryService(attendanceRepo, summaryRepo, holidayCalendar)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		userRepo,
		workLocationRepo,
		punchGuard,
		summarySvc,
		appClock,
	)
	correctionSvc := correctionService.NewCorrectionService(correctionRepo, attendanceRepo, appClock)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, userRepo, postgresql.NewTxManager(db), appClock)

	scheduler := cron.NewScheduler()
	summaryJobs := cron.NewSummaryJobs(attendanceRepo, summarySvc, appClock)
	summaryJobs.Register(scheduler, cfg.Cron.ReconcileInterval)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, jwtService)
	summaryHandler := appHTTP.NewSummaryHandler(summarySvc, jwtService)
	correctionHandler := appHTTP.NewCorrectionHandler(correctionSvc, jwtService)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc, jwtService)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{Env: cfg.App.Env, Location: cfg.Location()},
		jwtService,
		attendanceHandler,
		summaryHandler,
		correctionHandler,
		leaveHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
