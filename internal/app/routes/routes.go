package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ozank/lectern/internal/app/controllers"
	"github.com/ozank/lectern/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	courseController *controllers.CourseController,
	materialController *controllers.MaterialController,
	publicationController *controllers.PublicationController,
	talkController *controllers.TalkController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Public reads ---
	api.GET("/profile", profileController.GetProfile)

	courses := api.Group("/courses")
	{
		courses.GET("", courseController.GetAllCourses)
		courses.GET("/:id", courseController.GetCourseByID)
		courses.GET("/:id/materials", materialController.GetCourseMaterials)
	}

	api.GET("/materials/:id/download", materialController.DownloadMaterial)

	publications := api.Group("/publications")
	{
		publications.GET("", publicationController.GetAllPublications)
		publications.GET("/:id", publicationController.GetPublicationByID)
		publications.GET("/:id/download", publicationController.DownloadPdf)
	}

	events := api.Group("/events")
	{
		events.GET("", talkController.GetAllTalks)
		events.GET("/:id", talkController.GetTalkByID)
	}

	// --- Auth ---
	api.POST("/register", authController.Register)
	api.POST("/login", authController.Login)
	api.POST("/logout", authController.Logout)

	authenticated := api.Group("")
	authenticated.Use(authMiddleware.SessionAuth())
	{
		authenticated.GET("/user", authController.GetCurrentUser)
	}

	// --- Admin-gated writes ---
	admin := api.Group("")
	admin.Use(authMiddleware.SessionAuth(), authMiddleware.RequireAdmin())
	{
		admin.PUT("/admin/credentials", authController.UpdateCredentials)

		admin.PUT("/profile", profileController.UpdateProfile)
		admin.PUT("/profile/upload-photo", profileController.UploadPhoto)

		admin.POST("/courses", courseController.CreateCourse)
		admin.PUT("/courses/:id", courseController.UpdateCourse)
		admin.DELETE("/courses/:id", courseController.DeleteCourse)

		admin.POST("/courses/:id/materials/upload", materialController.CreateMaterial)
		admin.DELETE("/materials/:id", materialController.DeleteMaterial)

		admin.POST("/publications", publicationController.CreatePublication)
		admin.PUT("/publications/:id", publicationController.UpdatePublication)
		admin.PUT("/publications/:id/pdf", publicationController.UploadPdf)
		admin.DELETE("/publications/:id", publicationController.DeletePublication)

		admin.POST("/events", talkController.CreateTalk)
		admin.PUT("/events/:id", talkController.UpdateTalk)
		admin.PUT("/events/:id/flyer", talkController.UploadFlyer)
		admin.DELETE("/events/:id", talkController.DeleteTalk)
	}
}
