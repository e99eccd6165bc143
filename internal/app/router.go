package app

import (
	"eduboost_backend/docs"
	"eduboost_backend/internal/config"
	"eduboost_backend/internal/middleware"
	"eduboost_backend/internal/model"
	"eduboost_backend/internal/service"
	"eduboost_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos service.Repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.Users))
	{
		// 学生/通用 授权接口
		a.registerStudentRoutes(authGroup, c)

		// 教师相关接口
		a.registerEducatorRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.status.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	profile := rg.Group("/profile")
	{
		profile.GET("", c.user.GetProfile)
		profile.PUT("", c.user.UpdateProfile)
		profile.POST("/avatar", c.user.UploadAvatar)
	}

	// 课程目录
	rg.GET("/programs", c.catalog.ListPrograms)
	rg.GET("/programs/:id", c.catalog.GetProgram)
	rg.GET("/programs/:id/batches", c.catalog.ListBatches)
	rg.GET("/modules", c.catalog.ListModules)
	rg.GET("/modules/:id", c.catalog.GetModule)
	rg.GET("/modules/:id/assessments", c.assessment.ListByModule)
	rg.GET("/modules/:id/completion", c.progress.ModuleCompletion)

	// 学习情况
	rg.GET("/enrollments", c.enrollment.ListEnrollments)
	rg.GET("/enrolled-modules", c.enrollment.EnrolledModules)
	rg.GET("/progress", c.progress.ListProgress)
	rg.GET("/repeat-modules", c.progress.RepeatModules)
	rg.GET("/grades", c.progress.Grades)
	rg.GET("/assignments/active", c.assessment.ActiveForStudent)

	goals := rg.Group("/goals")
	{
		goals.GET("", c.goal.ListGoals)
		goals.POST("", c.goal.CreateGoal)
		goals.PATCH("/:id/toggle", c.goal.ToggleGoal)
		goals.DELETE("/:id", c.goal.DeleteGoal)
	}

	rg.POST("/health-check", c.healthPlan.Submit)
	rg.GET("/health-check", c.healthPlan.Current)
}

func (a *App) registerEducatorRoutes(rg *gin.RouterGroup, c *controllers) {
	educator := rg.Group("")
	educator.Use(middleware.RoleMiddleware(model.Educator))
	{
		educator.GET("/educator/programs", c.catalog.ListMyPrograms)
		educator.GET("/educator/assessments", c.assessment.ListMine)

		educator.POST("/programs", c.catalog.CreateProgram)
		educator.PUT("/programs/:id", c.catalog.UpdateProgram)
		educator.DELETE("/programs/:id", c.catalog.DeleteProgram)

		educator.POST("/batches", c.catalog.CreateBatch)
		educator.PUT("/batches/:id", c.catalog.UpdateBatch)
		educator.DELETE("/batches/:id", c.catalog.DeleteBatch)

		educator.POST("/modules", c.catalog.CreateModule)
		educator.PUT("/modules/:id", c.catalog.UpdateModule)
		educator.DELETE("/modules/:id", c.catalog.DeleteModule)

		// 考核
		educator.POST("/modules/:id/assessments", c.assessment.Create)
		educator.GET("/assessments/:id", c.assessment.Get)
		educator.PUT("/assessments/:id", c.assessment.Update)
		educator.DELETE("/assessments/:id", c.assessment.Delete)

		// 作业模板
		templates := educator.Group("/modules/:id/templates")
		{
			templates.GET("", c.assessment.ListTemplates)
			templates.POST("", c.assessment.CreateTemplate)
			templates.GET("/:templateId", c.assessment.GetTemplate)
			templates.PUT("/:templateId", c.assessment.UpdateTemplate)
			templates.DELETE("/:templateId", c.assessment.DeleteTemplate)
			templates.POST("/:templateId/reference", c.assessment.UploadReference)
			templates.POST("/:templateId/activate", c.assessment.Activate)
			templates.POST("/:templateId/deactivate", c.assessment.Deactivate)
		}

		// 成绩录入
		educator.POST("/progress", c.progress.RecordProgress)
		educator.PUT("/module-marks", c.progress.UpsertMarks)

		// 选课管理
		educator.POST("/enrollments", c.enrollment.Enroll)
		educator.DELETE("/enrollments/:programId", c.enrollment.Withdraw)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos service.Repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.Users), middleware.RoleMiddleware(model.Admin))
	{
		admin.PATCH("/educators/:id/approve", c.user.ApproveEducator)
	}
}
