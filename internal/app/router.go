package app

import (
	"exam_prep_backend/docs"
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/middleware"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 开发环境路由
	if !cfg.Server.IsRelease() {
		a.registerDevRoutes(router, c)
	}

	// 3. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerAuthRoutes(authGroup, c)
		a.registerCatalogRoutes(authGroup, c)
		a.registerExamRoutes(authGroup, c)
		a.registerEnrollmentRoutes(authGroup, c)
		a.registerUploadRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		public.POST("/auth/signup", c.auth.Signup)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/categories", c.category.List)
		public.GET("/categories/:id", c.category.Get)

		public.GET("/courses", c.course.List)
		public.GET("/courses/:id", c.course.Get)
		public.GET("/courses/category/:categoryId", c.course.ListByCategory)
	}
}

func (a *App) registerDevRoutes(router *gin.Engine, c *controllers) {
	router.GET("/hello", c.health.Hello)
	router.GET("/api/dev/token", c.health.DevToken)
}

func (a *App) registerAuthRoutes(r *gin.RouterGroup, c *controllers) {
	auth := r.Group("/auth")
	{
		auth.GET("/me", c.auth.Me)
		auth.PUT("/phone", c.auth.UpdatePhone)
		auth.PUT("/password", c.auth.UpdatePassword)
		auth.GET("/all", middleware.RoleMiddleware(model.RoleAdmin), c.auth.ListUsers)
	}
}

func (a *App) registerCatalogRoutes(r *gin.RouterGroup, c *controllers) {
	categories := r.Group("/categories")
	{
		categories.POST("", c.category.Create)
		categories.PUT("/:id", c.category.Update)
		categories.DELETE("/:id", c.category.Delete)
	}

	questions := r.Group("/questions")
	{
		questions.GET("", c.question.List)
		questions.GET("/random", c.question.Random)
		questions.GET("/random/category/:categoryId", c.question.RandomByCategory)
		questions.GET("/category/:categoryId", c.question.ListByCategory)
		questions.GET("/creator/me", c.question.ListMine)
		questions.GET("/:id", c.question.Get)
		questions.POST("", c.question.Create)
		questions.POST("/import", middleware.RoleMiddleware(model.RoleAdmin), c.question.Import)
		questions.PUT("/:id", c.question.Update)
		questions.DELETE("/:id", c.question.Delete)
	}

	courses := r.Group("/courses")
	{
		courses.GET("/instructor/me", c.course.ListMine)
		courses.POST("", c.course.Create)
		courses.PUT("/:id", c.course.Update)
		courses.DELETE("/:id", c.course.Delete)
	}
}

func (a *App) registerExamRoutes(r *gin.RouterGroup, c *controllers) {
	exams := r.Group("/exams")
	{
		exams.GET("", c.exam.List)
		exams.GET("/category/:categoryId", c.exam.ListByCategory)
		exams.GET("/course/:courseId", c.exam.ListByCourse)
		exams.GET("/creator/me", c.exam.ListMine)
		exams.GET("/:id", c.exam.Get)
		exams.POST("", c.exam.Create)
		exams.POST("/random", c.exam.CreateRandom)
		exams.PUT("/:id", c.exam.Update)
		exams.PUT("/:id/publish", c.exam.Publish)
		exams.PUT("/:id/regenerate", c.exam.Regenerate)
		exams.PUT("/:id/regenerate-questions", c.exam.Regenerate)
		exams.DELETE("/:id", c.exam.Delete)
		exams.POST("/:id/questions", c.exam.AddQuestion)
		exams.DELETE("/:id/questions", c.exam.RemoveQuestion)
		exams.POST("/:id/start", c.examAttempt.StartByPath)
	}

	attempts := r.Group("/exam-attempts")
	{
		attempts.POST("/start", c.examAttempt.Start)
		attempts.POST("/submit-answer", c.examAttempt.SubmitAnswer)
		attempts.PUT("/:id/complete", c.examAttempt.Complete)
		attempts.GET("", c.examAttempt.List)
		attempts.GET("/user/me", c.examAttempt.List)
		attempts.GET("/completed", c.examAttempt.ListCompleted)
		attempts.GET("/passed", c.examAttempt.ListPassed)
		attempts.GET("/exam/:examId", c.examAttempt.ListForExam)
		attempts.GET("/:id", c.examAttempt.Get)
	}
}

func (a *App) registerEnrollmentRoutes(r *gin.RouterGroup, c *controllers) {
	enrollments := r.Group("/enrollments")
	{
		enrollments.GET("", middleware.RoleMiddleware(model.RoleAdmin), c.enrollment.ListAll)
		enrollments.POST("", c.enrollment.Enroll)
		enrollments.GET("/user", c.enrollment.ListMine)
		enrollments.GET("/completed", c.enrollment.ListCompleted)
		enrollments.GET("/check/:courseId", c.enrollment.Check)
		enrollments.GET("/:id", c.enrollment.Get)
		enrollments.PUT("/:id/progress", c.enrollment.UpdateProgress)
		enrollments.POST("/:id/lessons/:lessonId/complete", c.enrollment.CompleteLesson)
		enrollments.PUT("/:id/recalculate-progress", c.enrollment.RecalculateProgress)
	}
}

func (a *App) registerUploadRoutes(r *gin.RouterGroup, c *controllers) {
	upload := r.Group("/upload")
	{
		upload.POST("/video", c.upload.UploadVideo)
		upload.POST("/document", c.upload.UploadDocument)
		upload.POST("/question-image", c.upload.UploadQuestionImage)
	}
}
