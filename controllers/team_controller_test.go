package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaymimran45/CTF-WAR-2/middlewares"
	"github.com/shaymimran45/CTF-WAR-2/models"
	"github.com/shaymimran45/CTF-WAR-2/repository"
	"github.com/shaymimran45/CTF-WAR-2/services"
)

func TestTeamMeMemberPayload(t *testing.T) {
	db := newTestDB(t)
	teamSvc := services.NewTeamService(
		db,
		repository.NewTeamRepository(db),
		repository.NewTeamMemberRepository(db),
		repository.NewUserRepository(db),
	)
	ctl := NewTeamController(teamSvc)

	alice := models.User{Email: "alice@example.com", Username: "alice", PasswordHash: "password123", Role: models.RoleUser}
	require.NoError(t, db.Create(&alice).Error)
	bob := models.User{Email: "bob@example.com", Username: "bob", PasswordHash: "password123", Role: models.RoleUser}
	require.NoError(t, db.Create(&bob).Error)

	team, err := teamSvc.Create(alice.ID, "Team Rocket", "", 0)
	require.NoError(t, err)
	_, err = teamSvc.Join(bob.ID, team.InviteCode)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/teams/me", nil)
	c.Set(middlewares.ContextUserID, alice.ID)
	ctl.Me(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	// 成员只暴露 userId/username/joinedAt，邮箱等用户字段不进队伍接口
	assert.Contains(t, body, `"username":"alice"`)
	assert.Contains(t, body, `"username":"bob"`)
	assert.Contains(t, body, `"joinedAt"`)
	assert.NotContains(t, body, "@example.com")
	assert.NotContains(t, body, `"role"`)
}
