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

func newTeamService(db *gorm.DB) *TeamService {
	return NewTeamService(
		db,
		repository.NewTeamRepository(db),
		repository.NewTeamMemberRepository(db),
		repository.NewUserRepository(db),
	)
}

func TestTeamCreate(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	leader := createTestUser(t, db, "alice")

	team, err := svc.Create(leader.ID, "Team Rocket", "we blast off", 0)
	require.NoError(t, err)
	assert.Equal(t, leader.ID, team.LeaderID)
	assert.Equal(t, defaultMaxMembers, team.MaxMembers)
	assert.NotEmpty(t, team.InviteCode)

	// 建队者同时成为唯一成员，users.team_id 同步更新
	var memberCount int64
	db.Model(&models.TeamMember{}).Where("team_id = ?", team.ID).Count(&memberCount)
	assert.Equal(t, int64(1), memberCount)

	var fresh models.User
	require.NoError(t, db.First(&fresh, leader.ID).Error)
	require.NotNil(t, fresh.TeamID)
	assert.Equal(t, team.ID, *fresh.TeamID)
}

func TestTeamCreateAlreadyInTeam(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	leader := createTestUser(t, db, "alice")

	_, err := svc.Create(leader.ID, "first", "", 0)
	require.NoError(t, err)

	_, err = svc.Create(leader.ID, "second", "", 0)
	assert.ErrorIs(t, err, ErrAlreadyInTeam)
}

func TestTeamCreateNameTaken(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := svc.Create(alice.ID, "Team Rocket", "", 0)
	require.NoError(t, err)

	_, err = svc.Create(bob.ID, "Team Rocket", "", 0)
	assert.ErrorIs(t, err, ErrTeamNameTaken)
}

func TestTeamJoin(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	team, err := svc.Create(alice.ID, "Team Rocket", "", 0)
	require.NoError(t, err)

	joined, err := svc.Join(bob.ID, team.InviteCode)
	require.NoError(t, err)
	assert.Equal(t, team.ID, joined.ID)

	var fresh models.User
	require.NoError(t, db.First(&fresh, bob.ID).Error)
	require.NotNil(t, fresh.TeamID)
	assert.Equal(t, team.ID, *fresh.TeamID)
}

func TestTeamJoinIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	team, err := svc.Create(alice.ID, "Team Rocket", "", 0)
	require.NoError(t, err)

	_, err = svc.Join(bob.ID, team.InviteCode)
	require.NoError(t, err)

	// 重复加入同队是幂等成功，不会多出成员行
	_, err = svc.Join(bob.ID, team.InviteCode)
	require.NoError(t, err)

	var memberCount int64
	db.Model(&models.TeamMember{}).Where("team_id = ?", team.ID).Count(&memberCount)
	assert.Equal(t, int64(2), memberCount)
}

func TestTeamJoinFull(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	team, err := svc.Create(alice.ID, "duo", "", 2)
	require.NoError(t, err)

	_, err = svc.Join(bob.ID, team.InviteCode)
	require.NoError(t, err)

	_, err = svc.Join(carol.ID, team.InviteCode)
	assert.ErrorIs(t, err, ErrTeamFull)
}

func TestTeamJoinFullAfterConcurrentFill(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	team, err := svc.Create(alice.ID, "duo", "", 2)
	require.NoError(t, err)

	// 另一请求抢先占掉最后一个名额，容量判定在事务里必须看到这条记录
	filler := models.TeamMember{TeamID: team.ID, UserID: bob.ID, JoinedAt: time.Now()}
	require.NoError(t, db.Create(&filler).Error)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", bob.ID).Update("team_id", team.ID).Error)

	_, err = svc.Join(carol.ID, team.InviteCode)
	assert.ErrorIs(t, err, ErrTeamFull)

	var memberCount int64
	db.Model(&models.TeamMember{}).Where("team_id = ?", team.ID).Count(&memberCount)
	assert.Equal(t, int64(2), memberCount)
}

func TestTeamJoinWhileInAnotherTeam(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := svc.Create(alice.ID, "one", "", 0)
	require.NoError(t, err)
	other, err := svc.Create(bob.ID, "two", "", 0)
	require.NoError(t, err)

	_, err = svc.Join(alice.ID, other.InviteCode)
	assert.ErrorIs(t, err, ErrAlreadyInTeam)
}

func TestTeamJoinBadInviteCode(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	bob := createTestUser(t, db, "bob")

	_, err := svc.Join(bob.ID, "NOSUCHCODE")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestTeamLeaveMember(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	team, err := svc.Create(alice.ID, "Team Rocket", "", 0)
	require.NoError(t, err)
	_, err = svc.Join(bob.ID, team.InviteCode)
	require.NoError(t, err)

	require.NoError(t, svc.Leave(bob.ID))

	var fresh models.Team
	require.NoError(t, db.First(&fresh, team.ID).Error)
	assert.Equal(t, alice.ID, fresh.LeaderID)

	var user models.User
	require.NoError(t, db.First(&user, bob.ID).Error)
	assert.Nil(t, user.TeamID)
}

func TestTeamLeaveLeaderSuccession(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	team, err := svc.Create(alice.ID, "Team Rocket", "", 0)
	require.NoError(t, err)
	_, err = svc.Join(bob.ID, team.InviteCode)
	require.NoError(t, err)
	_, err = svc.Join(carol.ID, team.InviteCode)
	require.NoError(t, err)

	// 队长离开，最早加入的剩余成员继任
	require.NoError(t, svc.Leave(alice.ID))

	var fresh models.Team
	require.NoError(t, db.First(&fresh, team.ID).Error)
	assert.Equal(t, bob.ID, fresh.LeaderID)
}

func TestTeamLeaveLastMemberDeletesTeam(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	alice := createTestUser(t, db, "alice")

	team, err := svc.Create(alice.ID, "solo", "", 0)
	require.NoError(t, err)

	require.NoError(t, svc.Leave(alice.ID))

	var teamCount int64
	db.Model(&models.Team{}).Where("id = ?", team.ID).Count(&teamCount)
	assert.Equal(t, int64(0), teamCount)
}

func TestTeamLeaveNotInTeam(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	alice := createTestUser(t, db, "alice")

	assert.ErrorIs(t, svc.Leave(alice.ID), ErrNotInTeam)
}

func TestTeamKick(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	team, err := svc.Create(alice.ID, "Team Rocket", "", 0)
	require.NoError(t, err)
	_, err = svc.Join(bob.ID, team.InviteCode)
	require.NoError(t, err)

	require.NoError(t, svc.Kick(alice.ID, bob.ID))

	var memberCount int64
	db.Model(&models.TeamMember{}).Where("team_id = ?", team.ID).Count(&memberCount)
	assert.Equal(t, int64(1), memberCount)

	var user models.User
	require.NoError(t, db.First(&user, bob.ID).Error)
	assert.Nil(t, user.TeamID)
}

func TestTeamKickRules(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	outsider := createTestUser(t, db, "carol")

	team, err := svc.Create(alice.ID, "Team Rocket", "", 0)
	require.NoError(t, err)
	_, err = svc.Join(bob.ID, team.InviteCode)
	require.NoError(t, err)

	// 非队长不能踢人
	assert.ErrorIs(t, svc.Kick(bob.ID, alice.ID), ErrNotLeader)
	// 队长不能踢自己
	assert.ErrorIs(t, svc.Kick(alice.ID, alice.ID), ErrCannotKickLeader)
	// 目标必须是本队成员
	assert.ErrorIs(t, svc.Kick(alice.ID, outsider.ID), ErrMemberNotFound)
	// 不在任何队伍里的人无从发起
	assert.ErrorIs(t, svc.Kick(outsider.ID, bob.ID), ErrNotInTeam)
}

func TestMyTeam(t *testing.T) {
	db := newTestDB(t)
	svc := newTeamService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	team, err := svc.Create(alice.ID, "Team Rocket", "", 0)
	require.NoError(t, err)
	_, err = svc.Join(bob.ID, team.InviteCode)
	require.NoError(t, err)

	mine, err := svc.MyTeam(alice.ID)
	require.NoError(t, err)
	require.NotNil(t, mine)
	assert.Equal(t, team.ID, mine.ID)
	assert.Len(t, mine.Members, 2)

	// 未入队返回 (nil, nil)
	loner := createTestUser(t, db, "dave")
	mine, err = svc.MyTeam(loner.ID)
	require.NoError(t, err)
	assert.Nil(t, mine)
}
