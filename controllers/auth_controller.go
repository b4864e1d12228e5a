package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shaymimran45/CTF-WAR-2/middlewares"
	"github.com/shaymimran45/CTF-WAR-2/models"
	"github.com/shaymimran45/CTF-WAR-2/repository"
	"github.com/shaymimran45/CTF-WAR-2/utils"
)

type AuthController struct {
	users      repository.UserRepository
	jwtManager *utils.JWTManager
}

func NewAuthController(users repository.UserRepository, jwtManager *utils.JWTManager) *AuthController {
	return &AuthController{users: users, jwtManager: jwtManager}
}

type registerReq struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
}

func (ctl *AuthController) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Email, username, and password are required")
		return
	}

	// 邮箱与用户名统一小写后入库，唯一性按小写比较
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))

	if _, err := ctl.users.FindByEmailOrUsername(email, username); err == nil {
		utils.Error(c, http.StatusConflict, "User with this email or username already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: req.Password,
		Role:         models.RoleUser,
	}
	if err := ctl.users.Create(&user); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := ctl.jwtManager.Generate(&user)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
		"token":   token,
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ctl *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := ctl.users.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		// 查无此人和密码错误返回同一提示
		utils.Error(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !user.CheckPassword(req.Password) {
		utils.Error(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := ctl.jwtManager.Generate(user)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

func (ctl *AuthController) Profile(c *gin.Context) {
	user, err := ctl.users.FindByID(middlewares.CurrentUserID(c))
	if err != nil {
		utils.Error(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
