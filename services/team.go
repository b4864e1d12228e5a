package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/shaymimran45/CTF-WAR-2/models"
	"github.com/shaymimran45/CTF-WAR-2/repository"
	"github.com/shaymimran45/CTF-WAR-2/utils"
)

const (
	defaultMaxMembers = 4
	inviteCodeLength  = 12
)

// TeamService 队伍成员状态机。所有迁移都维持两条不变量：
// users.team_id 与 team_members 行始终一致；迁移完成后不存在零成员队伍。
type TeamService struct {
	db      *gorm.DB
	teams   repository.TeamRepository
	members repository.TeamMemberRepository
	users   repository.UserRepository
}

func NewTeamService(
	db *gorm.DB,
	teams repository.TeamRepository,
	members repository.TeamMemberRepository,
	users repository.UserRepository,
) *TeamService {
	return &TeamService{db: db, teams: teams, members: members, users: users}
}

// Create 建队。已在队伍中的用户不允许再建队；建队者自动成为队长兼唯一成员
func (s *TeamService) Create(leaderID uint, name, description string, maxMembers int) (*models.Team, error) {
	if _, err := s.members.FindByUser(leaderID); err == nil {
		return nil, ErrAlreadyInTeam
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.teams.FindByName(name); err == nil {
		return nil, ErrTeamNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if maxMembers <= 0 {
		maxMembers = defaultMaxMembers
	}

	team := models.Team{
		Name:        name,
		Description: description,
		LeaderID:    leaderID,
		InviteCode:  utils.GenerateInviteCode(inviteCodeLength),
		MaxMembers:  maxMembers,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		teams := s.teams.WithTx(tx)
		members := s.members.WithTx(tx)
		users := s.users.WithTx(tx)

		if err := teams.Create(&team); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrTeamNameTaken
			}
			return err
		}
		member := models.TeamMember{TeamID: team.ID, UserID: leaderID, JoinedAt: time.Now()}
		if err := members.Create(&member); err != nil {
			return err
		}
		return users.SetTeam(leaderID, &team.ID)
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// Join 凭邀请码入队。重复加入同一队伍是幂等的成功；已在别的队伍则拒绝
func (s *TeamService) Join(userID uint, inviteCode string) (*models.Team, error) {
	team, err := s.teams.FindByInviteCode(inviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	if existing, err := s.members.FindByUser(userID); err == nil {
		if existing.TeamID == team.ID {
			return team, nil
		}
		return nil, ErrAlreadyInTeam
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		teams := s.teams.WithTx(tx)
		members := s.members.WithTx(tx)
		users := s.users.WithTx(tx)

		// 先锁队伍行再数人数，并发加入在这里排队，满员判定不会被穿越
		locked, err := teams.FindByIDForUpdate(team.ID)
		if err != nil {
			return err
		}
		count, err := members.CountByTeam(team.ID)
		if err != nil {
			return err
		}
		if count >= int64(locked.MaxMembers) {
			return ErrTeamFull
		}

		member := models.TeamMember{TeamID: team.ID, UserID: userID, JoinedAt: time.Now()}
		if err := members.Create(&member); err != nil {
			// 并发重复入队撞唯一索引，视作幂等成功
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}
		}
		return users.SetTeam(userID, &team.ID)
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// Leave 退队。队长离开时：还有人则按加入时间最早者继任队长，没人则解散队伍
func (s *TeamService) Leave(userID uint) error {
	member, err := s.members.FindByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotInTeam
		}
		return err
	}

	team, err := s.teams.FindByID(member.TeamID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		teams := s.teams.WithTx(tx)
		members := s.members.WithTx(tx)
		users := s.users.WithTx(tx)

		if err := members.Delete(team.ID, userID); err != nil {
			return err
		}
		if err := users.SetTeam(userID, nil); err != nil {
			return err
		}

		remaining, err := members.ListByTeam(team.ID)
		if err != nil {
			return err
		}
		if len(remaining) == 0 {
			return teams.Delete(team.ID)
		}
		if team.LeaderID == userID {
			return teams.UpdateLeader(team.ID, remaining[0].UserID)
		}
		return nil
	})
}

// Kick 队长移除队员。队长本人不可被移除，继任逻辑不会触发
func (s *TeamService) Kick(requesterID, memberID uint) error {
	requester, err := s.members.FindByUser(requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotInTeam
		}
		return err
	}

	team, err := s.teams.FindByID(requester.TeamID)
	if err != nil {
		return err
	}
	if team.LeaderID != requesterID {
		return ErrNotLeader
	}
	if memberID == team.LeaderID {
		return ErrCannotKickLeader
	}

	if _, err := s.members.Find(team.ID, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		members := s.members.WithTx(tx)
		users := s.users.WithTx(tx)

		if err := members.Delete(team.ID, memberID); err != nil {
			return err
		}
		return users.SetTeam(memberID, nil)
	})
}

// MyTeam 返回当前用户所在队伍及成员列表，未入队时返回 (nil, nil)
func (s *TeamService) MyTeam(userID uint) (*models.Team, error) {
	member, err := s.members.FindByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	team, err := s.teams.FindByID(member.TeamID)
	if err != nil {
		return nil, err
	}
	team.Members, err = s.members.ListByTeam(team.ID)
	if err != nil {
		return nil, err
	}
	return team, nil
}
