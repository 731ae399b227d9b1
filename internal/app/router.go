package app

import (
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c, cfg)

	// 需要登录的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerInstructorRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/departments", c.department.ListDepartments)
		public.GET("/departments/:id", c.department.GetDepartment)

		public.GET("/achievements/:id", c.progress.GetAchievementCatalog)

		// 目录类接口对游客开放，带token时额外支持 mine 过滤
		public.GET("/courses", middleware.TryAuthMiddleware(cfg), c.course.ListCourses)
		public.GET("/courses/:id", c.course.GetCourse)
		public.GET("/courses/:id/lessons", c.lesson.ListLessons)

		public.GET("/workshops", middleware.TryAuthMiddleware(cfg), c.workshop.ListWorkshops)
		public.GET("/workshops/:id", c.workshop.GetWorkshop)
		public.GET("/workshops/:id/comments", c.comment.ListComments)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.Me)
	rg.PUT("/users/profile", c.user.UpdateProfile)
	rg.PUT("/users/password", c.user.ChangePassword)

	// 学习进度
	rg.GET("/progress", c.progress.GetMyProgress)
	rg.GET("/progress/:courseId", c.progress.GetCourseProgress)
	rg.POST("/progress/:courseId/watch", c.progress.RecordWatchTime)
	rg.PUT("/progress/:courseId/lessons/:lessonId", c.progress.SetLessonCompletion)

	// 选课/报名
	rg.POST("/courses/:id/enroll", middleware.RoleMiddleware(model.Student), c.course.Enroll)
	rg.POST("/workshops/:id/enroll", middleware.RoleMiddleware(model.Student), c.workshop.Enroll)

	// 通知
	rg.GET("/notifications", c.notify.GetNotifications)
	rg.GET("/notifications/unread", c.notify.UnreadCount)
	rg.PUT("/notifications/:id/read", c.notify.MarkRead)
	rg.PUT("/notifications/read-all", c.notify.MarkAllRead)

	// 证书与讨论区
	rg.GET("/certificates/mine", c.certificate.GetMyCertificates)
	rg.POST("/workshops/:id/comments", c.comment.PostComment)
	rg.DELETE("/comments/:id", c.comment.DeleteComment)

	// 讲师申请
	rg.POST("/instructor-applications", middleware.RoleMiddleware(model.Student), c.application.Apply)
}

func (a *App) registerInstructorRoutes(rg *gin.RouterGroup, c *controllers) {
	instructor := rg.Group("/")
	instructor.Use(middleware.RoleMiddleware(model.Instructor, model.DepartmentAdmin))
	{
		instructor.POST("/courses", c.course.CreateCourse)
		instructor.PUT("/courses/:id", c.course.UpdateCourse)
		instructor.DELETE("/courses/:id", c.course.DeleteCourse)

		instructor.POST("/courses/:id/lessons", c.lesson.CreateLesson)
		instructor.PUT("/courses/:id/lessons/reorder", c.lesson.ReorderLessons)
		instructor.PUT("/lessons/:id", c.lesson.UpdateLesson)
		instructor.DELETE("/lessons/:id", c.lesson.DeleteLesson)
		instructor.POST("/lessons/:id/video", c.lesson.UploadVideo)

		instructor.POST("/workshops", c.workshop.CreateWorkshop)
		instructor.PUT("/workshops/:id", c.workshop.UpdateWorkshop)
		instructor.DELETE("/workshops/:id", c.workshop.DeleteWorkshop)
		instructor.PUT("/workshops/:id/sessions/:sessionId/live", c.workshop.SetSessionLive)

		instructor.POST("/workshops/:id/certificates", c.certificate.IssueCertificates)
		instructor.GET("/workshops/:id/certificates", c.certificate.GetWorkshopCertificates)

		instructor.GET("/departments/:id/stats", c.department.GetDepartmentStats)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(
		middleware.AuthMiddleware(cfg),
		middleware.ActivityMiddleware(repos.user),
		middleware.RoleMiddleware(model.DepartmentAdmin),
	)
	{
		admin.GET("/users", c.user.GetUsers)
		admin.GET("/users/:id", c.user.GetUser)
		admin.PUT("/users/:id/disabled", c.user.SetDisabled)
		admin.PUT("/users/:id/password-reset", c.user.ResetPassword)

		admin.GET("/certificates", c.certificate.ListCertificates)

		admin.GET("/instructor-applications", c.application.ListApplications)
		admin.PUT("/instructor-applications/:id", c.application.Review)

		// 以下仅超级管理员
		super := admin.Group("/")
		super.Use(middleware.RoleMiddleware(model.SuperAdmin))
		{
			super.POST("/users", c.user.CreateUser)
			super.PUT("/users/:id/role", c.user.SetRole)
			super.DELETE("/users/:id", c.user.DeleteUser)

			super.POST("/departments", c.department.CreateDepartment)
			super.PUT("/departments/:id", c.department.UpdateDepartment)
			super.DELETE("/departments/:id", c.department.DeleteDepartment)
		}
	}
}
