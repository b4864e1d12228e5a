package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shaymimran45/CTF-WAR-2/middlewares"
	"github.com/shaymimran45/CTF-WAR-2/services"
	"github.com/shaymimran45/CTF-WAR-2/utils"
)

type TeamController struct {
	teams *services.TeamService
}

func NewTeamController(teams *services.TeamService) *TeamController {
	return &TeamController{teams: teams}
}

type createTeamReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	MaxMembers  int    `json:"maxMembers"`
}

func (ctl *TeamController) Create(c *gin.Context) {
	var req createTeamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Name required")
		return
	}

	team, err := ctl.teams.Create(middlewares.CurrentUserID(c), req.Name, req.Description, req.MaxMembers)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyInTeam):
			utils.Error(c, http.StatusConflict, err.Error())
		case errors.Is(err, services.ErrTeamNameTaken):
			utils.Error(c, http.StatusConflict, err.Error())
		default:
			utils.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"team": team})
}

type joinTeamReq struct {
	InviteCode string `json:"inviteCode" binding:"required"`
}

func (ctl *TeamController) Join(c *gin.Context) {
	var req joinTeamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invite code required")
		return
	}

	team, err := ctl.teams.Join(middlewares.CurrentUserID(c), req.InviteCode)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTeamNotFound):
			utils.Error(c, http.StatusNotFound, "Team not found")
		case errors.Is(err, services.ErrTeamFull):
			utils.Error(c, http.StatusBadRequest, "Team is full")
		case errors.Is(err, services.ErrAlreadyInTeam):
			utils.Error(c, http.StatusConflict, err.Error())
		default:
			utils.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"joined": true, "teamId": team.ID})
}

func (ctl *TeamController) Leave(c *gin.Context) {
	if err := ctl.teams.Leave(middlewares.CurrentUserID(c)); err != nil {
		switch {
		case errors.Is(err, services.ErrNotInTeam):
			utils.Error(c, http.StatusBadRequest, "Not in a team")
		default:
			utils.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"left": true})
}

type kickMemberReq struct {
	MemberID uint `json:"memberId" binding:"required"`
}

func (ctl *TeamController) Kick(c *gin.Context) {
	var req kickMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Member ID required")
		return
	}

	if err := ctl.teams.Kick(middlewares.CurrentUserID(c), req.MemberID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotInTeam):
			utils.Error(c, http.StatusBadRequest, "You are not in a team")
		case errors.Is(err, services.ErrNotLeader):
			utils.Error(c, http.StatusForbidden, "Only the team leader can kick members")
		case errors.Is(err, services.ErrCannotKickLeader):
			utils.Error(c, http.StatusBadRequest, "Leader cannot be kicked")
		case errors.Is(err, services.ErrMemberNotFound):
			utils.Error(c, http.StatusNotFound, "Member not in your team")
		default:
			utils.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"kicked": true})
}

// teamMemberView 成员只露 id/用户名/加入时间，邮箱等字段不出队伍接口
type teamMemberView struct {
	UserID   uint      `json:"userId"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joinedAt"`
}

func (ctl *TeamController) Me(c *gin.Context) {
	team, err := ctl.teams.MyTeam(middlewares.CurrentUserID(c))
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	// 未入队返回 team: null，不算错误
	if team == nil {
		c.JSON(http.StatusOK, gin.H{"team": nil})
		return
	}

	members := make([]teamMemberView, 0, len(team.Members))
	for _, m := range team.Members {
		members = append(members, teamMemberView{
			UserID:   m.UserID,
			Username: m.User.Username,
			JoinedAt: m.JoinedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"team": gin.H{
		"id":          team.ID,
		"name":        team.Name,
		"description": team.Description,
		"leaderId":    team.LeaderID,
		"inviteCode":  team.InviteCode,
		"maxMembers":  team.MaxMembers,
		"members":     members,
		"createdAt":   team.CreatedAt,
	}})
}
