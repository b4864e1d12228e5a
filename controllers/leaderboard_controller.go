package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/shaymimran45/CTF-WAR-2/repository"
	"github.com/shaymimran45/CTF-WAR-2/services"
	"github.com/shaymimran45/CTF-WAR-2/utils"
)

// 排行榜结果缓存 15 秒，准实时即可；正确提交会立刻清缓存
const leaderboardCacheTTL = 15 * time.Second

type LeaderboardController struct {
	leaderboard *services.LeaderboardService
	challenges  repository.ChallengeRepository
	solves      repository.SolveRepository
	users       repository.UserRepository
	rdb         *redis.Client
}

func NewLeaderboardController(
	leaderboard *services.LeaderboardService,
	challenges repository.ChallengeRepository,
	solves repository.SolveRepository,
	users repository.UserRepository,
	rdb *redis.Client,
) *LeaderboardController {
	return &LeaderboardController{
		leaderboard: leaderboard,
		challenges:  challenges,
		solves:      solves,
		users:       users,
		rdb:         rdb,
	}
}

// Get 排行榜查询，type=individual|team，默认 individual
func (ctl *LeaderboardController) Get(c *gin.Context) {
	scope := services.ScopeIndividual
	if c.DefaultQuery("type", "individual") == "team" {
		scope = services.ScopeTeam
	}

	cacheKey := "leaderboard:" + string(scope)
	if ctl.rdb != nil {
		if cached, err := ctl.rdb.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			return
		}
	}

	rows, err := ctl.leaderboard.Rank(scope)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	nameKey := "username"
	if scope == services.ScopeTeam {
		nameKey = "name"
	}
	entries := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, gin.H{
			"id":        row.EntityID,
			nameKey:     row.Name,
			"score":     row.Score,
			"solves":    row.SolveCount,
			"lastSolve": row.LastSolveAt,
		})
	}
	body := gin.H{"leaderboard": entries}

	if ctl.rdb != nil {
		if data, err := json.Marshal(body); err == nil {
			ctl.rdb.Set(c.Request.Context(), cacheKey, data, leaderboardCacheTTL)
		}
	}

	c.JSON(http.StatusOK, body)
}

// Statistics 平台概览：题目/解题/用户计数、分类与难度分布、最近十条解题
func (ctl *LeaderboardController) Statistics(c *gin.Context) {
	totalChallenges, err := ctl.challenges.CountVisible()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	totalSolves, err := ctl.solves.Count()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	totalUsers, err := ctl.users.Count()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	categories, err := ctl.challenges.CountVisibleByColumn("category")
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	difficulties, err := ctl.challenges.CountVisibleByColumn("difficulty")
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	recent, err := ctl.solves.Recent(10)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalChallenges": totalChallenges,
		"totalSolves":     totalSolves,
		"totalUsers":      totalUsers,
		"categories":      categories,
		"difficulties":    difficulties,
		"recentSolves":    recent,
	})
}
