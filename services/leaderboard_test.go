package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shaymimran45/CTF-WAR-2/models"
	"github.com/shaymimran45/CTF-WAR-2/repository"
)

func createSolve(t *testing.T, db *gorm.DB, userID, challengeID uint, points int, solvedAt time.Time) {
	t.Helper()
	solve := models.Solve{
		UserID:        userID,
		ChallengeID:   challengeID,
		SubmissionID:  1,
		PointsAwarded: points,
		SolvedAt:      solvedAt,
	}
	require.NoError(t, db.Create(&solve).Error)
}

func TestLeaderboardIndividual(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaderboardService(repository.NewSolveRepository(db))

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createTestUser(t, db, "carol")

	ch1 := createTestChallenge(t, db, "CTF{one}", 100, 0, true)
	ch2 := createTestChallenge(t, db, "CTF{two}", 200, 0, true)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	createSolve(t, db, alice.ID, ch1.ID, 100, base)
	createSolve(t, db, alice.ID, ch2.ID, 200, base.Add(time.Hour))
	createSolve(t, db, bob.ID, ch1.ID, 100, base.Add(2*time.Hour))

	rows, err := svc.Rank(ScopeIndividual)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "alice", rows[0].Name)
	assert.Equal(t, 300, rows[0].Score)
	assert.Equal(t, int64(2), rows[0].SolveCount)
	// 聚合出来的时间要能还原成真正的时刻，不是光能比大小
	require.NotNil(t, rows[0].LastSolveAt)
	assert.True(t, rows[0].LastSolveAt.Equal(base.Add(time.Hour)))

	assert.Equal(t, "bob", rows[1].Name)
	assert.Equal(t, 100, rows[1].Score)
	require.NotNil(t, rows[1].LastSolveAt)
	assert.True(t, rows[1].LastSolveAt.Equal(base.Add(2*time.Hour)))

	// 零解题的用户也出现在榜上，排在最后
	assert.Equal(t, "carol", rows[2].Name)
	assert.Equal(t, 0, rows[2].Score)
	assert.Nil(t, rows[2].LastSolveAt)
}

func TestLeaderboardTieBreakByLastSolve(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaderboardService(repository.NewSolveRepository(db))

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	ch1 := createTestChallenge(t, db, "CTF{one}", 100, 0, true)
	ch2 := createTestChallenge(t, db, "CTF{two}", 100, 0, true)

	// 同分 200，bob 更早达到该分数
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	createSolve(t, db, bob.ID, ch1.ID, 100, base)
	createSolve(t, db, bob.ID, ch2.ID, 100, base.Add(time.Hour))
	createSolve(t, db, alice.ID, ch1.ID, 100, base.Add(2*time.Hour))
	createSolve(t, db, alice.ID, ch2.ID, 100, base.Add(3*time.Hour))

	rows, err := svc.Rank(ScopeIndividual)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "bob", rows[0].Name)
	assert.Equal(t, "alice", rows[1].Name)
}

func TestLeaderboardTeam(t *testing.T) {
	db := newTestDB(t)
	solves := repository.NewSolveRepository(db)
	svc := NewLeaderboardService(solves)
	teamSvc := newTeamService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	rocket, err := teamSvc.Create(alice.ID, "rocket", "", 0)
	require.NoError(t, err)
	_, err = teamSvc.Join(bob.ID, rocket.InviteCode)
	require.NoError(t, err)
	_, err = teamSvc.Create(carol.ID, "plasma", "", 0)
	require.NoError(t, err)

	ch1 := createTestChallenge(t, db, "CTF{one}", 100, 0, true)
	ch2 := createTestChallenge(t, db, "CTF{two}", 200, 0, true)

	// 队伍得分 = 现任队员个人 Solve 之和
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	createSolve(t, db, alice.ID, ch1.ID, 100, base)
	createSolve(t, db, bob.ID, ch2.ID, 200, base.Add(time.Hour))
	createSolve(t, db, carol.ID, ch1.ID, 100, base.Add(2*time.Hour))

	rows, err := svc.Rank(ScopeTeam)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "rocket", rows[0].Name)
	assert.Equal(t, 300, rows[0].Score)
	assert.Equal(t, int64(2), rows[0].SolveCount)

	assert.Equal(t, "plasma", rows[1].Name)
	assert.Equal(t, 100, rows[1].Score)
}
