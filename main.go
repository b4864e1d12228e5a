package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/shaymimran45/CTF-WAR-2/config"
	"github.com/shaymimran45/CTF-WAR-2/controllers"
	"github.com/shaymimran45/CTF-WAR-2/database"
	"github.com/shaymimran45/CTF-WAR-2/repository"
	"github.com/shaymimran45/CTF-WAR-2/routes"
	"github.com/shaymimran45/CTF-WAR-2/services"
	"github.com/shaymimran45/CTF-WAR-2/utils"
)

func main() {
	// .env 不存在时忽略，直接读环境变量
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	rdb, err := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	users := repository.NewUserRepository(db)
	teams := repository.NewTeamRepository(db)
	members := repository.NewTeamMemberRepository(db)
	challenges := repository.NewChallengeRepository(db)
	files := repository.NewChallengeFileRepository(db)
	hints := repository.NewHintRepository(db)
	submissions := repository.NewSubmissionRepository(db)
	solves := repository.NewSolveRepository(db)
	competitions := repository.NewCompetitionRepository(db)

	matcher := services.NewFlagMatcher(cfg.FlagPrefixes)
	submissionSvc := services.NewSubmissionService(db, challenges, submissions, solves, matcher)
	leaderboardSvc := services.NewLeaderboardService(solves)
	teamSvc := services.NewTeamService(db, teams, members, users)

	jwtManager := utils.NewJWTManager(cfg.JWTSecret, time.Duration(cfg.JWTExpireHours)*time.Hour)

	flagPrefix := "CTF"
	if len(cfg.FlagPrefixes) > 0 {
		flagPrefix = cfg.FlagPrefixes[0]
	}

	r := routes.Setup(routes.Controllers{
		Auth:           controllers.NewAuthController(users, jwtManager),
		Challenge:      controllers.NewChallengeController(challenges, solves, submissionSvc, rdb),
		AdminChallenge: controllers.NewAdminChallengeController(challenges, hints, competitions, flagPrefix),
		Competition:    controllers.NewCompetitionController(competitions),
		File:           controllers.NewFileController(files, challenges, cfg.UploadDir),
		Leaderboard:    controllers.NewLeaderboardController(leaderboardSvc, challenges, solves, users, rdb),
		Team:           controllers.NewTeamController(teamSvc),
	}, jwtManager)

	log.Printf("Starting server on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
