package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/shaymimran45/CTF-WAR-2/models"
	"github.com/shaymimran45/CTF-WAR-2/repository"
)

// SubmitResult 一次判题结果
type SubmitResult struct {
	Correct bool
	Points  int
}

// SubmissionService 负责提交判定与 Solve 记账。
// (user, challenge) 至多一条 Solve 由 solves 表的唯一索引兜底，
// 并发下第二个写入者会拿到重复键错误并被归为 ErrAlreadySolved。
type SubmissionService struct {
	db          *gorm.DB
	challenges  repository.ChallengeRepository
	submissions repository.SubmissionRepository
	solves      repository.SolveRepository
	matcher     *FlagMatcher
}

func NewSubmissionService(
	db *gorm.DB,
	challenges repository.ChallengeRepository,
	submissions repository.SubmissionRepository,
	solves repository.SolveRepository,
	matcher *FlagMatcher,
) *SubmissionService {
	return &SubmissionService{
		db:          db,
		challenges:  challenges,
		submissions: submissions,
		solves:      solves,
		matcher:     matcher,
	}
}

// Submit 按固定顺序执行判题流程：
// 可见性 -> 已解判定 -> 错误次数上限 -> 判题 -> 落提交记录 -> 落 Solve。
// 全程在一个事务里，提交记录无论对错都会保留。
func (s *SubmissionService) Submit(userID, challengeID uint, rawFlag string) (*SubmitResult, error) {
	rawFlag = strings.TrimSpace(rawFlag)

	var result SubmitResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		challenges := s.challenges.WithTx(tx)
		submissions := s.submissions.WithTx(tx)
		solves := s.solves.WithTx(tx)

		challenge, err := challenges.FindVisibleByID(challengeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChallengeNotFound
			}
			return err
		}

		solved, err := solves.Exists(userID, challengeID)
		if err != nil {
			return err
		}
		if solved {
			return ErrAlreadySolved
		}

		if challenge.MaxAttempts > 0 {
			incorrect, err := submissions.CountIncorrect(userID, challengeID)
			if err != nil {
				return err
			}
			if incorrect >= int64(challenge.MaxAttempts) {
				return ErrAttemptsExceeded
			}
		}

		correct := s.matcher.Matches(rawFlag, challenge.Flag)

		points := 0
		if correct {
			points = challenge.Points
		}
		submission := models.Submission{
			UserID:        userID,
			ChallengeID:   challengeID,
			SubmittedFlag: rawFlag,
			IsCorrect:     correct,
			PointsAwarded: points,
		}
		if err := submissions.Create(&submission); err != nil {
			return err
		}

		if correct {
			solve := models.Solve{
				UserID:        userID,
				ChallengeID:   challengeID,
				SubmissionID:  submission.ID,
				PointsAwarded: challenge.Points,
			}
			if err := solves.Create(&solve); err != nil {
				// 并发下另一请求抢先写入了 Solve
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrAlreadySolved
				}
				return err
			}
		}

		result = SubmitResult{Correct: correct, Points: points}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
