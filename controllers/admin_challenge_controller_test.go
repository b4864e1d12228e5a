package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaymimran45/CTF-WAR-2/models"
	"github.com/shaymimran45/CTF-WAR-2/repository"
)

func postJSON(t *testing.T, handler gin.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func TestAdminChallengeCreateGeneratesFlag(t *testing.T) {
	db := newTestDB(t)
	ctl := NewAdminChallengeController(
		repository.NewChallengeRepository(db),
		repository.NewHintRepository(db),
		repository.NewCompetitionRepository(db),
		"CTF",
	)

	// flag 留空时自动生成
	w := postJSON(t, ctl.Create, "/api/v1/admin/challenges",
		`{"title":"welcome","description":"d","category":"misc","points":100}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var challenge models.Challenge
	require.NoError(t, db.First(&challenge).Error)
	assert.Regexp(t, `^CTF\{[0-9a-f]{32}\}$`, challenge.Flag)
}

func TestAdminChallengeCreateKeepsExplicitFlag(t *testing.T) {
	db := newTestDB(t)
	ctl := NewAdminChallengeController(
		repository.NewChallengeRepository(db),
		repository.NewHintRepository(db),
		repository.NewCompetitionRepository(db),
		"CTF",
	)

	w := postJSON(t, ctl.Create, "/api/v1/admin/challenges",
		`{"title":"welcome","description":"d","category":"misc","points":100,"flag":"CTF{handmade}"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var challenge models.Challenge
	require.NoError(t, db.First(&challenge).Error)
	assert.Equal(t, "CTF{handmade}", challenge.Flag)
}
