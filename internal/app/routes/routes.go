package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/lecturehub/internal/app/controllers"
	"github.com/yigit/lecturehub/internal/middleware"
)

// Controllers groups the handlers mounted under /api
type Controllers struct {
	Auth    *controllers.AuthController
	Course  *controllers.CourseController
	Lecture *controllers.LectureController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// --- Public Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.GET("/auth/profile", ctrl.Auth.Profile)
	authenticated.GET("/auth/instructors", ctrl.Auth.ListInstructors)

	// Admin-only mutations
	managers := authenticated.Group("")
	managers.Use(authMiddleware.ScheduleManagerRequired())

	courses := authenticated.Group("/courses")
	{
		courses.GET("", ctrl.Course.GetAllCourses)
		courses.GET("/:id", ctrl.Course.GetCourseByID)
	}
	managedCourses := managers.Group("/courses")
	{
		managedCourses.POST("", ctrl.Course.CreateCourse)
		managedCourses.PUT("/:id", ctrl.Course.UpdateCourse)
		managedCourses.DELETE("/:id", ctrl.Course.DeleteCourse)
	}

	lectures := authenticated.Group("/lectures")
	{
		lectures.GET("", ctrl.Lecture.GetAllLectures)
		lectures.GET("/course/:courseId", ctrl.Lecture.GetLecturesByCourse)
		lectures.GET("/instructor/my-lectures", ctrl.Lecture.GetMyLectures)
		lectures.GET("/:id", ctrl.Lecture.GetLectureByID)
	}
	managedLectures := managers.Group("/lectures")
	{
		managedLectures.POST("", ctrl.Lecture.CreateLecture)
		managedLectures.GET("/availability/check", ctrl.Lecture.CheckAvailability)
		managedLectures.PUT("/:id", ctrl.Lecture.UpdateLecture)
		managedLectures.DELETE("/:id", ctrl.Lecture.DeleteLecture)
	}
}
