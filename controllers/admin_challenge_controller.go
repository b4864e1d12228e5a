package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shaymimran45/CTF-WAR-2/models"
	"github.com/shaymimran45/CTF-WAR-2/repository"
	"github.com/shaymimran45/CTF-WAR-2/utils"
)

type AdminChallengeController struct {
	challenges   repository.ChallengeRepository
	hints        repository.HintRepository
	competitions repository.CompetitionRepository
	flagPrefix   string
}

func NewAdminChallengeController(
	challenges repository.ChallengeRepository,
	hints repository.HintRepository,
	competitions repository.CompetitionRepository,
	flagPrefix string,
) *AdminChallengeController {
	return &AdminChallengeController{
		challenges:   challenges,
		hints:        hints,
		competitions: competitions,
		flagPrefix:   flagPrefix,
	}
}

type createChallengeReq struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description" binding:"required"`
	Category      string `json:"category" binding:"required"`
	Difficulty    string `json:"difficulty"`
	Points        int    `json:"points" binding:"required,gt=0"`
	Flag          string `json:"flag"`
	CompetitionID uint   `json:"competitionId"`
	IsVisible     *bool  `json:"isVisible"`
	MaxAttempts   int    `json:"maxAttempts"`
}

// Create 建题。flag 留空时自动生成一个；未指定比赛时挂到最近一场，
// 一场都没有则先建默认比赛
func (ctl *AdminChallengeController) Create(c *gin.Context) {
	var req createChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.MaxAttempts < 0 {
		utils.Error(c, http.StatusBadRequest, "maxAttempts must be >= 0")
		return
	}

	difficulty := models.ChallengeDifficulty(strings.ToLower(strings.TrimSpace(req.Difficulty)))
	switch difficulty {
	case "":
		difficulty = models.DifficultyMedium
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	default:
		utils.Error(c, http.StatusBadRequest, "Invalid difficulty")
		return
	}

	competitionID := req.CompetitionID
	if competitionID == 0 {
		comp, err := ctl.competitions.Latest()
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.Error(c, http.StatusInternalServerError, "Internal server error")
				return
			}
			created := models.Competition{
				Name:            "Default Competition",
				Description:     "Auto-created competition",
				StartTime:       time.Now(),
				EndTime:         time.Now().Add(7 * 24 * time.Hour),
				CompetitionType: models.CompetitionIndividual,
				IsPublic:        true,
			}
			if err := ctl.competitions.Create(&created); err != nil {
				utils.Error(c, http.StatusInternalServerError, "Internal server error")
				return
			}
			competitionID = created.ID
		} else {
			competitionID = comp.ID
		}
	}

	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}

	flag := strings.TrimSpace(req.Flag)
	if flag == "" {
		flag = utils.GenerateFlag(ctl.flagPrefix)
	}

	challenge := models.Challenge{
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		Category:      strings.TrimSpace(req.Category),
		Difficulty:    difficulty,
		Points:        req.Points,
		Flag:          flag,
		CompetitionID: competitionID,
		IsVisible:     visible,
		MaxAttempts:   req.MaxAttempts,
	}
	if err := ctl.challenges.Create(&challenge); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"challenge": challenge})
}

// ListAll 管理员列表，可见/隐藏都返回
func (ctl *AdminChallengeController) ListAll(c *gin.Context) {
	challenges, err := ctl.challenges.ListAll()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	type adminItem struct {
		models.Challenge
		Flag string `json:"flag"`
	}
	items := make([]adminItem, 0, len(challenges))
	for _, ch := range challenges {
		items = append(items, adminItem{Challenge: ch, Flag: ch.Flag})
	}
	c.JSON(http.StatusOK, gin.H{"challenges": items})
}

type updateChallengeReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Difficulty  *string `json:"difficulty"`
	Points      *int    `json:"points"`
	Flag        *string `json:"flag"`
	IsVisible   *bool   `json:"isVisible"`
	MaxAttempts *int    `json:"maxAttempts"`
}

// Update 部分更新，nil 字段保持不变
func (ctl *AdminChallengeController) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid challenge id")
		return
	}

	var req updateChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	challenge, err := ctl.challenges.FindByID(uint(id))
	if err != nil {
		utils.Error(c, http.StatusNotFound, "Challenge not found")
		return
	}

	if req.Title != nil {
		challenge.Title = *req.Title
	}
	if req.Description != nil {
		challenge.Description = *req.Description
	}
	if req.Category != nil {
		challenge.Category = *req.Category
	}
	if req.Difficulty != nil {
		challenge.Difficulty = models.ChallengeDifficulty(*req.Difficulty)
	}
	if req.Points != nil {
		if *req.Points <= 0 {
			utils.Error(c, http.StatusBadRequest, "points must be > 0")
			return
		}
		challenge.Points = *req.Points
	}
	if req.Flag != nil {
		challenge.Flag = strings.TrimSpace(*req.Flag)
	}
	if req.IsVisible != nil {
		challenge.IsVisible = *req.IsVisible
	}
	if req.MaxAttempts != nil {
		if *req.MaxAttempts < 0 {
			utils.Error(c, http.StatusBadRequest, "maxAttempts must be >= 0")
			return
		}
		challenge.MaxAttempts = *req.MaxAttempts
	}

	if err := ctl.challenges.Save(challenge); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"challenge": challenge})
}

func (ctl *AdminChallengeController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid challenge id")
		return
	}
	if _, err := ctl.challenges.FindByID(uint(id)); err != nil {
		utils.Error(c, http.StatusNotFound, "Challenge not found")
		return
	}
	if err := ctl.challenges.Delete(uint(id)); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (ctl *AdminChallengeController) ToggleVisibility(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid challenge id")
		return
	}
	challenge, err := ctl.challenges.FindByID(uint(id))
	if err != nil {
		utils.Error(c, http.StatusNotFound, "Challenge not found")
		return
	}
	challenge.IsVisible = !challenge.IsVisible
	if err := ctl.challenges.Save(challenge); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": challenge.ID, "isVisible": challenge.IsVisible})
}

type setVisibilityReq struct {
	IsVisible *bool `json:"isVisible" binding:"required"`
}

func (ctl *AdminChallengeController) SetAllVisibility(c *gin.Context) {
	var req setVisibilityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "isVisible is required")
		return
	}
	affected, err := ctl.challenges.SetAllVisibility(*req.IsVisible)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": affected, "isVisible": *req.IsVisible})
}

type hintReq struct {
	Content string `json:"content" binding:"required"`
	Penalty int    `json:"penalty"`
}

func (ctl *AdminChallengeController) AddHint(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid challenge id")
		return
	}
	if _, err := ctl.challenges.FindByID(uint(id)); err != nil {
		utils.Error(c, http.StatusNotFound, "Challenge not found")
		return
	}

	var req hintReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Content is required")
		return
	}

	hint := models.Hint{ChallengeID: uint(id), Content: req.Content, Penalty: req.Penalty}
	if err := ctl.hints.Create(&hint); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"hint": hint})
}

func (ctl *AdminChallengeController) UpdateHint(c *gin.Context) {
	hintID, err := strconv.Atoi(c.Param("hintId"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid hint id")
		return
	}

	hint, err := ctl.hints.FindByID(uint(hintID))
	if err != nil {
		utils.Error(c, http.StatusNotFound, "Hint not found")
		return
	}

	var req hintReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Content is required")
		return
	}
	hint.Content = req.Content
	hint.Penalty = req.Penalty
	if err := ctl.hints.Save(hint); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"hint": hint})
}

func (ctl *AdminChallengeController) DeleteHint(c *gin.Context) {
	hintID, err := strconv.Atoi(c.Param("hintId"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid hint id")
		return
	}
	if _, err := ctl.hints.FindByID(uint(hintID)); err != nil {
		utils.Error(c, http.StatusNotFound, "Hint not found")
		return
	}
	if err := ctl.hints.Delete(uint(hintID)); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
