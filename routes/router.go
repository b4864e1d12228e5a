package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/shaymimran45/CTF-WAR-2/controllers"
	"github.com/shaymimran45/CTF-WAR-2/middlewares"
	"github.com/shaymimran45/CTF-WAR-2/models"
	"github.com/shaymimran45/CTF-WAR-2/utils"
)

type Controllers struct {
	Auth           *controllers.AuthController
	Challenge      *controllers.ChallengeController
	AdminChallenge *controllers.AdminChallengeController
	Competition    *controllers.CompetitionController
	File           *controllers.FileController
	Leaderboard    *controllers.LeaderboardController
	Team           *controllers.TeamController
}

func Setup(ctls Controllers, jwtManager *utils.JWTManager) *gin.Engine {
	r := gin.Default()

	auth := middlewares.JWTAuth(jwtManager)
	admin := middlewares.RequireRole(models.RoleAdmin)

	api := r.Group("/api/v1")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", ctls.Auth.Register)
			authRoutes.POST("/login", ctls.Auth.Login)
			authRoutes.GET("/profile", auth, ctls.Auth.Profile)
		}

		challengeRoutes := api.Group("/challenges")
		challengeRoutes.Use(auth)
		{
			challengeRoutes.GET("", ctls.Challenge.List)
			challengeRoutes.GET("/categories", ctls.Challenge.Categories)
			challengeRoutes.GET("/:id", ctls.Challenge.Detail)
			challengeRoutes.POST("/:id/submit", ctls.Challenge.Submit)
		}

		adminRoutes := api.Group("/admin")
		adminRoutes.Use(auth, admin)
		{
			adminRoutes.POST("/challenges", ctls.AdminChallenge.Create)
			adminRoutes.GET("/challenges", ctls.AdminChallenge.ListAll)
			adminRoutes.PATCH("/challenges/:id", ctls.AdminChallenge.Update)
			adminRoutes.DELETE("/challenges/:id", ctls.AdminChallenge.Delete)
			adminRoutes.POST("/challenges/:id/toggle-visibility", ctls.AdminChallenge.ToggleVisibility)
			adminRoutes.POST("/challenges/visibility", ctls.AdminChallenge.SetAllVisibility)
			adminRoutes.POST("/challenges/:id/hints", ctls.AdminChallenge.AddHint)
			adminRoutes.PATCH("/hints/:hintId", ctls.AdminChallenge.UpdateHint)
			adminRoutes.DELETE("/hints/:hintId", ctls.AdminChallenge.DeleteHint)
			adminRoutes.POST("/challenges/:id/files", ctls.File.Upload)
			adminRoutes.DELETE("/files/:fileId", ctls.File.Delete)
			adminRoutes.POST("/competitions", ctls.Competition.Create)
		}

		api.GET("/files/:id", auth, ctls.File.Download)

		api.GET("/leaderboard", ctls.Leaderboard.Get)
		api.GET("/statistics", ctls.Leaderboard.Statistics)

		teamRoutes := api.Group("/teams")
		teamRoutes.Use(auth)
		{
			teamRoutes.POST("", ctls.Team.Create)
			teamRoutes.POST("/join", ctls.Team.Join)
			teamRoutes.POST("/leave", ctls.Team.Leave)
			teamRoutes.POST("/kick", ctls.Team.Kick)
			teamRoutes.GET("/me", ctls.Team.Me)
		}
	}

	return r
}
