package main

import (
	"fmt"
	"net/http"

	"github.com/kantor-hq/hr-backoffice-go/internal/config"
	appHTTP "github.com/kantor-hq/hr-backoffice-go/internal/handler/http"
	"github.com/kantor-hq/hr-backoffice-go/internal/pkg/database"
	"github.com/kantor-hq/hr-backoffice-go/internal/pkg/jwt"
	"github.com/kantor-hq/hr-backoffice-go/internal/repository/postgresql"
	attendanceService "github.com/kantor-hq/hr-backoffice-go/internal/service/attendance"
	correctionService "github.com/kantor-hq/hr-backoffice-go/internal/service/correction"
	employeeService "github.com/kantor-hq/hr-backoffice-go/internal/service/employee"
	holidayService "github.com/kantor-hq/hr-backoffice-go/internal/service/holiday"
	leaveService "github.com/kantor-hq/hr-backoffice-go/internal/service/leave"
	notificationService "github.com/kantor-hq/hr-backoffice-go/internal/service/notification"
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

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	correctionRepo := postgresql.NewCorrectionRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	notificationSvc := notificationService.NewService(notificationRepo, employeeRepo)
	employeeSvc := employeeService.NewService(employeeRepo)
	attendanceSvc := attendanceService.NewService(attendanceRepo)
	correctionSvc := correctionService.NewService(db, correctionRepo, attendanceRepo, notificationSvc)
	leaveSvc := leaveService.NewService(db, leaveTypeRepo, leaveBalanceRepo, leaveRequestRepo, notificationSvc)
	holidaySvc := holidayService.NewService(holidayRepo)

	router := appHTTP.NewRouter(jwtService, cfg.App.Env, appHTTP.Handlers{
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Correction:   appHTTP.NewCorrectionHandler(correctionSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc),
		Holiday:      appHTTP.NewHolidayHandler(holidaySvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
