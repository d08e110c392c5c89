package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/quicktech/studentportal/internal/app/controllers"
	"github.com/quicktech/studentportal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	resultController *controllers.ResultController,
	semesterController *controllers.SemesterController,
	enrollmentController *controllers.EnrollmentController,
	lectureController *controllers.LectureController,
	announcementController *controllers.AnnouncementController,
	cardController *controllers.CardController,
	dashboardController *controllers.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// --- Authenticated portal routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		students := authenticated.Group("/students")
		{
			students.GET("/me", studentController.GetProfile)
			students.PUT("/me", studentController.UpdateProfile)
			students.POST("/me/avatar", studentController.UploadAvatar)
		}

		results := authenticated.Group("/results")
		{
			results.GET("", resultController.ListResults)
			results.PUT("/:id", resultController.UpdateResult)
		}

		authenticated.GET("/semesters", semesterController.ListSemesters)
		authenticated.GET("/courses", semesterController.ListCourses)

		enrollments := authenticated.Group("/enrollments")
		{
			enrollments.GET("", enrollmentController.ListEnrollments)
			enrollments.POST("", enrollmentController.Enroll)
		}

		authenticated.GET("/lectures", lectureController.ListLectures)
		announcements := authenticated.Group("/announcements")
		{
			announcements.GET("", announcementController.ListAnnouncements)
			announcements.POST("", announcementController.CreateAnnouncement)
		}
		authenticated.GET("/dashboard", dashboardController.GetDashboard)

		idcard := authenticated.Group("/idcard")
		{
			idcard.GET("/pdf", cardController.ExportPDF)
			idcard.GET("/print", cardController.PrintHTML)
		}
	}
}
