package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/shaymimran45/CTF-WAR-2/middlewares"
	"github.com/shaymimran45/CTF-WAR-2/repository"
	"github.com/shaymimran45/CTF-WAR-2/services"
	"github.com/shaymimran45/CTF-WAR-2/utils"
)

type ChallengeController struct {
	challenges  repository.ChallengeRepository
	solves      repository.SolveRepository
	submissions *services.SubmissionService
	rdb         *redis.Client
}

func NewChallengeController(
	challenges repository.ChallengeRepository,
	solves repository.SolveRepository,
	submissions *services.SubmissionService,
	rdb *redis.Client,
) *ChallengeController {
	return &ChallengeController{
		challenges:  challenges,
		solves:      solves,
		submissions: submissions,
		rdb:         rdb,
	}
}

type challengeItem struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Points     int    `json:"points"`
	Solves     int64  `json:"solves"`
	Solved     bool   `json:"solved"`
}

// List 玩家题目列表，只含可见题，附带当前用户的已解标记
func (ctl *ChallengeController) List(c *gin.Context) {
	filter := repository.ChallengeFilter{
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
	}
	challenges, err := ctl.challenges.ListVisible(filter)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	solvedIDs, err := ctl.solves.SolvedChallengeIDs(middlewares.CurrentUserID(c))
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	solved := make(map[uint]bool, len(solvedIDs))
	for _, id := range solvedIDs {
		solved[id] = true
	}

	items := make([]challengeItem, 0, len(challenges))
	for _, ch := range challenges {
		count, err := ctl.solves.CountByChallenge(ch.ID)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		items = append(items, challengeItem{
			ID:         ch.ID,
			Title:      ch.Title,
			Category:   ch.Category,
			Difficulty: string(ch.Difficulty),
			Points:     ch.Points,
			Solves:     count,
			Solved:     solved[ch.ID],
		})
	}

	c.JSON(http.StatusOK, gin.H{"challenges": items})
}

func (ctl *ChallengeController) Categories(c *gin.Context) {
	categories, err := ctl.challenges.Categories()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Detail 玩家题目详情，附件与提示一并返回，flag 字段在模型上已屏蔽
func (ctl *ChallengeController) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid challenge id")
		return
	}

	challenge, err := ctl.challenges.FindVisibleByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Challenge not found")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	solvedByUser, err := ctl.solves.Exists(middlewares.CurrentUserID(c), challenge.ID)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	count, err := ctl.solves.CountByChallenge(challenge.ID)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"challenge": challenge,
		"solved":    solvedByUser,
		"solves":    count,
	})
}

type submitFlagReq struct {
	Flag string `json:"flag"`
}

// Submit 提交 flag。判对后清掉排行榜缓存，下一次读取会重算
func (ctl *ChallengeController) Submit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid challenge id")
		return
	}

	var req submitFlagReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Flag == "" {
		utils.Error(c, http.StatusBadRequest, "Flag is required")
		return
	}

	result, err := ctl.submissions.Submit(middlewares.CurrentUserID(c), uint(id), req.Flag)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChallengeNotFound):
			utils.Error(c, http.StatusNotFound, "Challenge not found")
		case errors.Is(err, services.ErrAlreadySolved):
			utils.Error(c, http.StatusBadRequest, "Challenge already solved")
		case errors.Is(err, services.ErrAttemptsExceeded):
			utils.Error(c, http.StatusTooManyRequests, "Max attempts reached")
		default:
			utils.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	if result.Correct {
		ctl.invalidateLeaderboard(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"correct": true,
			"points":  result.Points,
			"message": "Congratulations! Challenge solved!",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"correct": false,
		"points":  0,
		"message": "Incorrect flag, try again!",
	})
}

func (ctl *ChallengeController) invalidateLeaderboard(ctx context.Context) {
	if ctl.rdb == nil {
		return
	}
	keys, err := ctl.rdb.Keys(ctx, "leaderboard:*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := ctl.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("failed to clear leaderboard cache: %v", err)
	}
}
