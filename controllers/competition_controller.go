package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shaymimran45/CTF-WAR-2/models"
	"github.com/shaymimran45/CTF-WAR-2/repository"
	"github.com/shaymimran45/CTF-WAR-2/utils"
)

type CompetitionController struct {
	competitions repository.CompetitionRepository
}

func NewCompetitionController(competitions repository.CompetitionRepository) *CompetitionController {
	return &CompetitionController{competitions: competitions}
}

type createCompetitionReq struct {
	Name            string    `json:"name" binding:"required"`
	Description     string    `json:"description"`
	StartTime       time.Time `json:"startTime" binding:"required"`
	EndTime         time.Time `json:"endTime" binding:"required"`
	CompetitionType string    `json:"competitionType"`
	IsPublic        *bool     `json:"isPublic"`
}

func (ctl *CompetitionController) Create(c *gin.Context) {
	var req createCompetitionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Name, startTime and endTime are required")
		return
	}
	if !req.EndTime.After(req.StartTime) {
		utils.Error(c, http.StatusBadRequest, "endTime must be after startTime")
		return
	}

	compType := models.CompetitionType(req.CompetitionType)
	switch compType {
	case "":
		compType = models.CompetitionIndividual
	case models.CompetitionIndividual, models.CompetitionTeam:
	default:
		utils.Error(c, http.StatusBadRequest, "Invalid competitionType")
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	competition := models.Competition{
		Name:            req.Name,
		Description:     req.Description,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		CompetitionType: compType,
		IsPublic:        isPublic,
	}
	if err := ctl.competitions.Create(&competition); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"competition": competition})
}
